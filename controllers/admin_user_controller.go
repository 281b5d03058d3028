package controllers

import (
	"strconv"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// ListUsers returns all user accounts
func ListUsers(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count users: %v", err)
		utils.InternalServerError(c, "Failed to load users", nil)
		return
	}
	pagination.SetTotal(total)

	var users []models.User
	if err := config.DB.Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&users).Error; err != nil {
		utils.LogError("Failed to list users: %v", err)
		utils.InternalServerError(c, "Failed to load users", nil)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, user := range users {
		list = append(list, gin.H{
			"id":             user.ID,
			"full_name":      user.FullName,
			"email":          user.Email,
			"phone_number":   user.PhoneNumber,
			"wallet_balance": user.WalletBalance,
			"is_admin":       user.IsAdmin,
			"is_blocked":     user.IsBlocked,
			"created_at":     user.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved", gin.H{"users": list}, pagination)
}

// ToggleUserBlock flips a user's blocked flag. Blocked users fail the auth
// middleware on their next request.
func ToggleUserBlock(c *gin.Context) {
	admin, ok := getCurrentUser(c)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	if uint(userID) == admin.ID {
		utils.BadRequest(c, "You cannot block your own account", nil)
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("is_blocked", !user.IsBlocked).Error; err != nil {
		utils.LogError("Failed to toggle block on user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	utils.LogInfo("User %d blocked=%t by admin %d", user.ID, !user.IsBlocked, admin.ID)
	utils.Success(c, "User updated successfully", gin.H{"is_blocked": !user.IsBlocked})
}
