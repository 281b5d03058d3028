package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// PurchaseRequest represents the purchase request body
type PurchaseRequest struct {
	BundleID      uint   `json:"bundle_id" binding:"required"`
	ReceiverPhone string `json:"receiver_phone" binding:"required"`
}

// PurchaseBundle orchestrates a bundle purchase: order snapshot, wallet
// debit, reseller fulfillment. A reseller rejection marks the order failed
// and refunds the debit in full; the refund is attempted even when the
// status update errors.
func PurchaseBundle(c *gin.Context) {
	utils.LogInfo("PurchaseBundle called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid purchase request from user %d: %v", user.ID, err)
		utils.BadRequest(c, "Bundle ID and receiver phone are required", err.Error())
		return
	}

	req.ReceiverPhone = strings.TrimSpace(req.ReceiverPhone)
	if valid, msg := utils.ValidateGhanaPhone(req.ReceiverPhone); !valid {
		utils.LogError("Invalid receiver phone from user %d: %s", user.ID, req.ReceiverPhone)
		utils.BadRequest(c, msg, nil)
		return
	}

	var bundle models.Bundle
	if err := config.DB.Where("id = ? AND is_active = ?", req.BundleID, true).First(&bundle).Error; err != nil {
		utils.LogError("Bundle %d not found or inactive: %v", req.BundleID, err)
		utils.BadRequest(c, "Bundle not found or inactive", nil)
		return
	}

	// Resolve the reseller's network name up front so an unsupported
	// network never touches the wallet.
	datamartNetwork, supported := utils.DatamartNetworkMap[strings.ToLower(bundle.Network)]
	if !supported {
		utils.LogError("Unsupported network on bundle %d: %s", bundle.ID, bundle.Network)
		utils.BadRequest(c, fmt.Sprintf("Unsupported network: %s", bundle.Network), nil)
		return
	}

	// Friendly pre-check; the ledger debit below is the authoritative,
	// race-free one.
	var fresh models.User
	if err := config.DB.First(&fresh, user.ID).Error; err != nil {
		utils.LogError("Failed to load user %d: %v", user.ID, err)
		utils.BadRequest(c, "User profile not found", nil)
		return
	}
	if fresh.WalletBalance < bundle.Price {
		utils.LogInfo("Insufficient balance for user %d: have %.2f, need %.2f", user.ID, fresh.WalletBalance, bundle.Price)
		utils.BadRequest(c, "Insufficient wallet balance", nil)
		return
	}

	order := models.Order{
		UserID:        user.ID,
		BundleID:      bundle.ID,
		ReceiverPhone: req.ReceiverPhone,
		Amount:        bundle.Price,
		Status:        models.OrderStatusPending,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Failed to create order for user %d: %v", user.ID, err)
		utils.BadRequest(c, "Failed to create order", nil)
		return
	}
	utils.LogInfo("Created order %d for user %d: %s %s to %s", order.ID, user.ID, bundle.Capacity, bundle.Network, req.ReceiverPhone)

	debitDescription := fmt.Sprintf("Purchase: %s %s data bundle", bundle.Capacity, bundle.Network)
	debitReference := fmt.Sprintf("ORDER_%d", order.ID)
	if err := utils.UpdateWalletBalance(user.ID, bundle.Price, models.TransactionTypeDebit, debitDescription, debitReference); err != nil {
		// No money moved; remove the order so nothing is left pending.
		if derr := config.DB.Unscoped().Delete(&order).Error; derr != nil {
			utils.LogError("Failed to remove order %d after debit failure: %v", order.ID, derr)
		}
		if errors.Is(err, utils.ErrInsufficientBalance) {
			utils.LogInfo("Debit rejected for user %d: insufficient balance", user.ID)
			utils.BadRequest(c, "Insufficient wallet balance", nil)
			return
		}
		utils.LogError("Wallet debit failed for order %d: %v", order.ID, err)
		utils.BadRequest(c, "Failed to process payment", nil)
		return
	}

	capacity := utils.ExtractCapacityValue(bundle.Capacity)
	utils.LogInfo("Purchasing via DataMart: network=%s capacity=%s phone=%s amount=%s",
		datamartNetwork, capacity, req.ReceiverPhone, utils.FormatCedis(bundle.Price))

	client := utils.NewDatamartClient()
	purchase, err := client.PurchaseBundle(req.ReceiverPhone, datamartNetwork, capacity)
	if err != nil {
		utils.LogError("DataMart purchase failed for order %d: %v", order.ID, err)
		failOrder(&order, user.ID, bundle)

		message := "Data bundle purchase failed"
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		utils.BadRequest(c, message, nil)
		return
	}

	transactionID := purchase.TransactionReference
	if transactionID == "" {
		transactionID = purchase.PurchaseID
	}
	if err := config.DB.Model(&order).Updates(map[string]interface{}{
		"status":         models.OrderStatusCompleted,
		"transaction_id": transactionID,
	}).Error; err != nil {
		utils.LogError("Failed to mark order %d completed: %v", order.ID, err)
	}
	order.Status = models.OrderStatusCompleted
	order.TransactionID = transactionID
	order.Bundle = bundle

	if utils.EmailConfigured() {
		go func(email, name string, o models.Order) {
			if err := utils.SendPurchaseReceipt(email, name, &o); err != nil {
				utils.LogError("Receipt email for order %d failed: %v", o.ID, err)
			}
		}(user.Email, user.FullName, order)
	}

	utils.LogInfo("Order %d completed, upstream reference %s", order.ID, transactionID)
	c.JSON(200, gin.H{
		"success":               true,
		"message":               "Data bundle purchased successfully",
		"order_id":              order.ID,
		"transaction_reference": purchase.TransactionReference,
		"purchase_id":           purchase.PurchaseID,
	})
}

// failOrder marks the order failed and credits the debit back. The refund
// must run even when the status update errors, so that error is only logged.
func failOrder(order *models.Order, userID uint, bundle models.Bundle) {
	failureMarker := fmt.Sprintf("%s%d", utils.FailedMarkerPrefix, time.Now().UnixMilli())
	if err := config.DB.Model(order).Updates(map[string]interface{}{
		"status":         models.OrderStatusFailed,
		"transaction_id": failureMarker,
	}).Error; err != nil {
		utils.LogError("Failed to mark order %d failed: %v", order.ID, err)
	}

	refundDescription := fmt.Sprintf("Refund: Failed purchase - %s %s data bundle", bundle.Capacity, bundle.Network)
	refundReference := fmt.Sprintf("%s%d", utils.RefundReferencePrefix, order.ID)
	if err := utils.UpdateWalletBalance(userID, bundle.Price, models.TransactionTypeCredit, refundDescription, refundReference); err != nil {
		utils.LogError("Refund for order %d did not apply: %v", order.ID, err)
	}
}
