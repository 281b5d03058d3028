package controllers

import (
	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
)

// ListAllOrders returns every order, optionally filtered by status
func ListAllOrders(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		switch status {
		case models.OrderStatusPending, models.OrderStatusProcessing,
			models.OrderStatusCompleted, models.OrderStatusFailed:
			query = query.Where("status = ?", status)
		default:
			utils.BadRequest(c, "Unknown order status", nil)
			return
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to load orders", nil)
		return
	}
	pagination.SetTotal(total)

	var orders []models.Order
	if err := query.Preload("Bundle").Preload("User").
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.InternalServerError(c, "Failed to load orders", nil)
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved", gin.H{"orders": orders}, pagination)
}
