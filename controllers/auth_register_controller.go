package controllers

import (
	"errors"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// RegisterUser creates a new account and returns a signed token
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - invalid request format: %v", err)
		utils.BadRequest(c, "Full name, email, phone number and password are required", err.Error())
		return
	}

	req.FullName = utils.SanitizeString(req.FullName)
	req.Email = utils.SanitizeString(req.Email)
	req.PhoneNumber = utils.SanitizeString(req.PhoneNumber)

	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidateGhanaPhone(req.PhoneNumber); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration failed - email already in use: %s", req.Email)
		utils.Conflict(c, "An account with this email already exists", nil)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Registration failed - lookup error: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - hashing error: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    hashedPassword,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Registration failed - create error: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Registration failed - token error: %v", err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	utils.LogInfo("User registered: %s", user.Email)
	utils.Success(c, "Account created successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"full_name":      user.FullName,
			"email":          user.Email,
			"phone_number":   user.PhoneNumber,
			"wallet_balance": user.WalletBalance,
		},
	})
}
