package controllers

import (
	"errors"
	"strings"

	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// VerifyTopupRequest represents the verify request body
type VerifyTopupRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// VerifyWalletTopup confirms a Paystack transaction by reference and credits
// the wallet exactly once. The reference doubles as the ledger idempotency
// key, so re-verifying (double-click, retry after a network blip) can never
// credit twice.
func VerifyWalletTopup(c *gin.Context) {
	utils.LogInfo("VerifyWalletTopup called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req VerifyTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request from user %d: %v", user.ID, err)
		utils.BadRequest(c, "Payment reference is required", err.Error())
		return
	}
	req.Reference = strings.TrimSpace(req.Reference)

	client := utils.NewPaystackClient()
	txn, err := client.VerifyTransaction(req.Reference)
	if err != nil {
		utils.LogError("Paystack verify failed for reference %s: %v", req.Reference, err)
		message := "Payment verification failed"
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		utils.BadRequest(c, message, nil)
		return
	}

	if txn.Status != "success" {
		utils.LogError("Payment %s not successful, gateway status: %s", req.Reference, txn.Status)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	// Convert from pesewas back to cedis
	amount := float64(txn.Amount) / 100

	err = utils.UpdateWalletBalance(user.ID, amount, models.TransactionTypeCredit,
		"Paystack wallet top-up - "+req.Reference, req.Reference)
	if errors.Is(err, utils.ErrDuplicateReference) {
		utils.LogInfo("Reference %s already credited for user %d", req.Reference, user.ID)
		c.JSON(200, gin.H{
			"success":          true,
			"message":          "Payment already verified",
			"amount":           amount,
			"already_credited": true,
		})
		return
	}
	if err != nil {
		utils.LogError("Failed to credit wallet for reference %s: %v", req.Reference, err)
		utils.BadRequest(c, "Failed to update wallet balance", nil)
		return
	}

	utils.LogInfo("Credited %s to user %d for reference %s", utils.FormatCedis(amount), user.ID, req.Reference)
	c.JSON(200, gin.H{
		"success": true,
		"message": "Payment verified and wallet updated",
		"amount":  amount,
	})
}
