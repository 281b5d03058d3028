package controllers

import (
	"errors"
	"fmt"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SyncDataPackages reconciles the local catalog against DataMart's. New
// packages become active bundles with the default validity; existing ones
// only get a write when the price actually changed, so a second run against
// unchanged upstream data is a no-op.
func SyncDataPackages(c *gin.Context) {
	utils.LogInfo("SyncDataPackages called")

	client := utils.NewDatamartClient()
	packages, err := client.GetDataPackages()
	if err != nil {
		utils.LogError("Failed to fetch DataMart catalog: %v", err)
		message := "Failed to fetch data packages"
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			message = upstream.Message
		}
		utils.BadRequest(c, message, nil)
		return
	}

	syncedCount := 0
	updatedCount := 0

	for datamartNetwork, networkPackages := range packages {
		network, known := utils.InternalNetworkName(datamartNetwork)
		if !known {
			utils.LogInfo("Skipping unknown network: %s", datamartNetwork)
			continue
		}
		utils.LogDebug("Processing %d packages for %s", len(networkPackages), network)

		for _, pkg := range networkPackages {
			capacity := fmt.Sprintf("%sGB", pkg.Capacity.String())
			price, err := pkg.Price.Float64()
			if err != nil {
				utils.LogError("Bad price for %s %s: %v", network, capacity, err)
				continue
			}

			var existing models.Bundle
			err = config.DB.Where("network = ? AND capacity = ?", network, capacity).First(&existing).Error
			switch {
			case err == nil:
				if existing.Price != price {
					if uerr := config.DB.Model(&existing).Updates(map[string]interface{}{
						"price":     price,
						"is_active": true,
					}).Error; uerr != nil {
						utils.LogError("Failed to update bundle %d: %v", existing.ID, uerr)
						continue
					}
					updatedCount++
					utils.LogInfo("Updated %s %s - price %s", network, capacity, utils.FormatCedis(price))
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				bundle := models.Bundle{
					Network:  network,
					Capacity: capacity,
					Price:    price,
					Validity: utils.DefaultBundleValidity,
					IsActive: true,
				}
				if cerr := config.DB.Create(&bundle).Error; cerr != nil {
					utils.LogError("Failed to create bundle %s %s: %v", network, capacity, cerr)
					continue
				}
				syncedCount++
				utils.LogInfo("Created %s %s - price %s", network, capacity, utils.FormatCedis(price))
			default:
				utils.LogError("Failed to look up bundle %s %s: %v", network, capacity, err)
			}
		}
	}

	utils.LogInfo("Catalog sync finished: %d created, %d updated", syncedCount, updatedCount)
	c.JSON(200, gin.H{
		"success": true,
		"message": "Data packages synced successfully",
		"synced":  syncedCount,
		"updated": updatedCount,
		"total":   syncedCount + updatedCount,
	})
}
