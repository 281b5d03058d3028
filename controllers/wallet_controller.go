package controllers

import (
	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// GetWallet returns the current wallet balance
func GetWallet(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var fresh models.User
	if err := config.DB.First(&fresh, user.ID).Error; err != nil {
		utils.LogError("Failed to load wallet for user %d: %v", user.ID, err)
		utils.NotFound(c, "User profile not found")
		return
	}

	utils.Success(c, "Wallet retrieved", gin.H{
		"balance": fresh.WalletBalance,
	})
}

// ListWalletTransactions returns the user's wallet activity, newest first
func ListWalletTransactions(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.WalletTransaction{}).
		Where("user_id = ?", user.ID).
		Count(&total).Error; err != nil {
		utils.LogError("Failed to count transactions for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}
	pagination.SetTotal(total)

	var transactions []models.WalletTransaction
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to list transactions for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved", gin.H{"transactions": transactions}, pagination)
}
