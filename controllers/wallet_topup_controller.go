package controllers

import (
	"errors"
	"math"
	"os"

	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TopupRequest represents the top-up request body
type TopupRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// InitiateWalletTopup opens a Paystack hosted-payment session for a wallet
// credit. Nothing is written locally; the wallet is credited by
// VerifyWalletTopup once the gateway confirms the money moved.
func InitiateWalletTopup(c *gin.Context) {
	utils.LogInfo("InitiateWalletTopup called")
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid topup request from user %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount is required and must be positive", err.Error())
		return
	}

	// Paystack expects the amount in pesewas
	amountPesewas := int64(math.Round(req.Amount * 100))
	reference := utils.TopupReferencePrefix + uuid.NewString()
	utils.LogDebug("Initializing Paystack session for user %d: %d pesewas, reference %s", user.ID, amountPesewas, reference)

	client := utils.NewPaystackClient()
	session, err := client.InitializeTransaction(user.Email, amountPesewas, reference, os.Getenv("FRONTEND_URL"))
	if err != nil {
		utils.LogError("Paystack initialize failed for user %d: %v", user.ID, err)
		message := "Failed to initialize payment"
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		utils.BadRequest(c, message, nil)
		return
	}

	utils.LogInfo("Topup session created for user %d, reference %s", user.ID, session.Reference)
	utils.Success(c, "Payment session created", gin.H{
		"authorization_url": session.AuthorizationURL,
		"access_code":       session.AccessCode,
		"reference":         session.Reference,
	})
}
