package controllers

import (
	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// ListBundles returns the active catalog, optionally filtered by network
func ListBundles(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)

	if network := c.Query("network"); network != "" {
		if !models.IsValidNetwork(network) {
			utils.BadRequest(c, "Unknown network", nil)
			return
		}
		query = query.Where("network = ?", network)
	}

	var bundles []models.Bundle
	if err := query.Order("network, price").Find(&bundles).Error; err != nil {
		utils.LogError("Failed to list bundles: %v", err)
		utils.InternalServerError(c, "Failed to load bundles", nil)
		return
	}

	utils.Success(c, "Bundles retrieved", gin.H{"bundles": bundles})
}
