package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ehson200611/Chocoberryy/internal/auth"
	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
	"github.com/ehson200611/Chocoberryy/internal/notifier"
)

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerAddress string `json:"customer_address"`
	Notes           string `json:"notes"`
}

// GET /api/checkout
//
// Returns the projected cart together with customer fields prefilled from
// the authenticated user's profile.
func CheckoutForm(c *gin.Context) {
	ct := loadCart(c)
	lines, total := ct.Project(dbCatalog{})

	prefill := gin.H{}
	if user := auth.CurrentUser(c); user != nil {
		prefill = gin.H{
			"customer_name":    user.FullName(),
			"customer_email":   user.Email,
			"customer_phone":   user.Phone,
			"customer_address": user.Address,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items":  lines,
		"total_price": total,
		"prefill":     prefill,
	})
}

// POST /api/checkout
//
// Finalizes the cart into an order: one header plus one line item per
// projected line. Line items are priced from a fresh catalog read at
// persistence time, which can differ from both the add-time snapshot and
// the projection total if prices change mid-flight. Header and items are
// written without a wrapping transaction, so a failed item write leaves
// the header in place; the caller gets a generic error in that case.
func Checkout(c *gin.Context) {
	ct := loadCart(c)

	lines, total := ct.Project(dbCatalog{})
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		Number:          uuid.NewString(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     total,
		Status:          models.StatusPending,
		Notes:           req.Notes,
	}

	if user := auth.CurrentUser(c); user != nil {
		order.UserID = &user.ID
	}

	if err := db.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	for _, line := range lines {
		id, err := strconv.ParseUint(line.Product.ID, 10, 64)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}

		// Price is read again here rather than reused from the
		// projection above.
		var product models.Product
		if err := db.DB.First(&product, uint(id)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  uint(line.Quantity),
			Price:     product.Price,
		}

		if err := db.DB.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}
	}

	if err := db.DB.Preload("Items").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve order with items"})
		return
	}

	ct.Clear()
	if err := saveCart(c, ct); err != nil {
		log.Printf("Failed to clear cart after order %s: %v", order.Number, err)
	}

	go func(order models.Order) {
		if err := notifier.SendSMS(order.CustomerPhone, order.Number, order.TotalAmount); err != nil {
			fmt.Printf("Failed to send SMS for order %s to %s: %v\n", order.Number, order.CustomerPhone, err)
		}
	}(order)

	go func(order models.Order) {
		if err := notifier.SendEmail(order.CustomerEmail, order.CustomerName, order.Number, order.TotalAmount); err != nil {
			fmt.Printf("Failed to send email for order %s to %s: %v\n", order.Number, order.CustomerEmail, err)
		}
	}(order)

	broadcastOrderEvent("order_created", order)

	c.JSON(http.StatusCreated, gin.H{"message": "order placed successfully", "order": order})
}
