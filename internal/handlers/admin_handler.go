package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/admin/orders?status=
func ListOrders(c *gin.Context) {
	tx := db.DB.Preload("Items").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// PUT /api/admin/orders/:id/status
//
// Moves an order through its lifecycle. Only transitions allowed by the
// status machine are accepted; completed and cancelled orders cannot
// change again.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status: %s", req.Status)})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Order not found with ID: %s", c.Param("id"))})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("cannot move order from %s to %s", order.Status, req.Status),
		})
		return
	}

	order.Status = req.Status
	if err := db.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	broadcastOrderEvent("order_status_changed", order)

	c.JSON(http.StatusOK, gin.H{"message": "order status updated", "order": order})
}

// GET /api/admin/orders/export
//
// Downloads all orders as an Excel workbook.
func ExportOrdersToExcel(c *gin.Context) {
	var orders []models.Order
	if err := db.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	headers := []string{
		"ID", "Number", "Customer", "Email", "Phone", "Address",
		"Total", "Status", "Items", "Notes", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Number)
		row.AddCell().SetValue(o.CustomerName)
		row.AddCell().SetValue(o.CustomerEmail)
		row.AddCell().SetValue(o.CustomerPhone)
		row.AddCell().SetValue(o.CustomerAddress)
		row.AddCell().SetValue(o.TotalAmount.StringFixed(2))
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(len(o.Items))
		row.AddCell().SetValue(o.Notes)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
