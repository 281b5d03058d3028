package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// ExportOrdersReport writes all orders in a date range to an xlsx workbook.
// Query params from/to are YYYY-MM-DD; both default to the last 30 days.
func ExportOrdersReport(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		// inclusive end of day
		to = parsed.AddDate(0, 0, 1)
	}

	var orders []models.Order
	if err := config.DB.Preload("Bundle").Preload("User").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to load orders for export: %v", err)
		utils.InternalServerError(c, "Failed to load orders", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		utils.LogError("Failed to create sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order ID", "Date", "Customer", "Network", "Capacity", "Recipient", "Amount (GHS)", "Status", "Reference"} {
		header.AddCell().SetString(title)
	}

	var completedTotal float64
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(order.ID))
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(order.User.Email)
		row.AddCell().SetString(order.Bundle.Network)
		row.AddCell().SetString(order.Bundle.Capacity)
		row.AddCell().SetString(order.ReceiverPhone)
		row.AddCell().SetFloat(order.Amount)
		row.AddCell().SetString(order.Status)
		row.AddCell().SetString(order.TransactionID)

		if order.Status == models.OrderStatusCompleted {
			completedTotal += order.Amount
		}
	}

	sheet.AddRow()
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Completed total")
	for i := 0; i < 5; i++ {
		totalRow.AddCell()
	}
	totalRow.AddCell().SetFloat(completedTotal)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		utils.LogError("Failed to write report: %v", err)
		utils.InternalServerError(c, "Failed to generate report", nil)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
