package controllers

import (
	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var fresh models.User
	if err := config.DB.First(&fresh, user.ID).Error; err != nil {
		utils.LogError("Failed to load profile for user %d: %v", user.ID, err)
		utils.NotFound(c, "User profile not found")
		return
	}

	utils.Success(c, "Profile retrieved", gin.H{
		"id":             fresh.ID,
		"full_name":      fresh.FullName,
		"email":          fresh.Email,
		"phone_number":   fresh.PhoneNumber,
		"wallet_balance": fresh.WalletBalance,
		"is_admin":       fresh.IsAdmin,
		"created_at":     fresh.CreatedAt,
	})
}

// UpdateProfileRequest represents the profile update body. Only name and
// phone are self-service; the wallet balance moves through the ledger alone.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfile updates the user's contact details
func UpdateProfile(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = utils.SanitizeString(req.FullName)
	}
	if req.PhoneNumber != "" {
		phone := utils.SanitizeString(req.PhoneNumber)
		if valid, msg := utils.ValidateGhanaPhone(phone); !valid {
			utils.BadRequest(c, msg, nil)
			return
		}
		updates["phone_number"] = phone
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}

	utils.LogInfo("Profile updated for user %d", user.ID)
	utils.Success(c, "Profile updated successfully", nil)
}
