package controllers

import (
	"os"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
)

// EnsureAdminAccount creates the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD on first boot. Skipped when ADMIN_EMAIL is unset; an
// existing account with that email is left untouched.
func EnsureAdminAccount() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		utils.LogInfo("ADMIN_EMAIL not set, skipping admin bootstrap")
		return nil
	}

	hashedPassword, err := utils.HashPassword(os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return err
	}

	admin := models.User{
		FullName: "Administrator",
		Email:    email,
		Password: hashedPassword,
		IsAdmin:  true,
	}
	if err := config.DB.Where(models.User{Email: email}).FirstOrCreate(&admin).Error; err != nil {
		utils.LogError("Failed to create admin account: %v", err)
		return err
	}

	utils.LogInfo("Admin account ready: %s", email)
	return nil
}
