package controllers

import (
	"strconv"
	"strings"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// BundleRequest represents the create/update bundle body
type BundleRequest struct {
	Network  string  `json:"network" binding:"required"`
	Capacity string  `json:"capacity" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Validity string  `json:"validity"`
}

// ListAllBundles returns the full catalog including inactive bundles
func ListAllBundles(c *gin.Context) {
	var bundles []models.Bundle
	if err := config.DB.Order("network, price").Find(&bundles).Error; err != nil {
		utils.LogError("Failed to list bundles: %v", err)
		utils.InternalServerError(c, "Failed to load bundles", nil)
		return
	}
	utils.Success(c, "Bundles retrieved", gin.H{"bundles": bundles})
}

// CreateBundle adds a bundle to the catalog
func CreateBundle(c *gin.Context) {
	var req BundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Network, capacity and a positive price are required", err.Error())
		return
	}

	req.Network = strings.ToLower(strings.TrimSpace(req.Network))
	if !models.IsValidNetwork(req.Network) {
		utils.BadRequest(c, "Unknown network", nil)
		return
	}
	if req.Validity == "" {
		req.Validity = utils.DefaultBundleValidity
	}

	bundle := models.Bundle{
		Network:  req.Network,
		Capacity: strings.TrimSpace(req.Capacity),
		Price:    req.Price,
		Validity: req.Validity,
		IsActive: true,
	}
	if err := config.DB.Create(&bundle).Error; err != nil {
		utils.LogError("Failed to create bundle: %v", err)
		utils.InternalServerError(c, "Failed to create bundle", nil)
		return
	}

	utils.LogInfo("Bundle created: %s %s at %s", bundle.Network, bundle.Capacity, utils.FormatCedis(bundle.Price))
	utils.Success(c, "Bundle created successfully", gin.H{"bundle": bundle})
}

// UpdateBundle edits a bundle's price, capacity or validity. Orders keep
// their snapshot amounts, so edits never touch history.
func UpdateBundle(c *gin.Context) {
	bundleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bundle ID", nil)
		return
	}

	var bundle models.Bundle
	if err := config.DB.First(&bundle, bundleID).Error; err != nil {
		utils.NotFound(c, "Bundle not found")
		return
	}

	var req BundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Network, capacity and a positive price are required", err.Error())
		return
	}

	req.Network = strings.ToLower(strings.TrimSpace(req.Network))
	if !models.IsValidNetwork(req.Network) {
		utils.BadRequest(c, "Unknown network", nil)
		return
	}

	updates := map[string]interface{}{
		"network":  req.Network,
		"capacity": strings.TrimSpace(req.Capacity),
		"price":    req.Price,
	}
	if req.Validity != "" {
		updates["validity"] = req.Validity
	}
	if err := config.DB.Model(&bundle).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update bundle %d: %v", bundle.ID, err)
		utils.InternalServerError(c, "Failed to update bundle", nil)
		return
	}

	utils.LogInfo("Bundle %d updated", bundle.ID)
	utils.Success(c, "Bundle updated successfully", gin.H{"bundle": bundle})
}

// ToggleBundle flips a bundle's active flag. Bundles are soft-deactivated,
// never deleted, because orders reference them.
func ToggleBundle(c *gin.Context) {
	bundleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid bundle ID", nil)
		return
	}

	var bundle models.Bundle
	if err := config.DB.First(&bundle, bundleID).Error; err != nil {
		utils.NotFound(c, "Bundle not found")
		return
	}

	if err := config.DB.Model(&bundle).Update("is_active", !bundle.IsActive).Error; err != nil {
		utils.LogError("Failed to toggle bundle %d: %v", bundle.ID, err)
		utils.InternalServerError(c, "Failed to update bundle", nil)
		return
	}

	utils.LogInfo("Bundle %d active=%t", bundle.ID, !bundle.IsActive)
	utils.Success(c, "Bundle updated successfully", gin.H{"is_active": !bundle.IsActive})
}
