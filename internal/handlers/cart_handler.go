package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GET /api/cart
//
// Returns the projected cart: entries are resolved against the live
// catalog, so line totals reflect current pricing. Entries whose product
// has been removed from the catalog are left out of the items list but
// still count toward cart_items_count.
func ViewCart(c *gin.Context) {
	ct := loadCart(c)

	lines, total := ct.Project(dbCatalog{})

	c.JSON(http.StatusOK, gin.H{
		"items":            lines,
		"total_price":      total,
		"cart_items_count": ct.Count(),
	})
}

// POST /api/cart/items/:id
func AddToCart(c *gin.Context) {
	productID := c.Param("id")

	ct := loadCart(c)

	count, err := ct.Add(dbCatalog{}, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %s", productID)})
		return
	}

	if err := saveCart(c, ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"cart_items_count": count,
		"message":          fmt.Sprintf("%s added to cart!", ct[productID].Name),
	})
}

// PUT /api/cart/items/:id
//
// Overwrites the quantity of an existing entry. Zero or negative removes
// it. Updating a product that was never added leaves the cart unchanged.
func UpdateCartItem(c *gin.Context) {
	productID := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ct := loadCart(c)
	ct.SetQuantity(productID, req.Quantity)

	if err := saveCart(c, ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart_items_count": ct.Count()})
}

// DELETE /api/cart/items/:id
func RemoveFromCart(c *gin.Context) {
	productID := c.Param("id")

	ct := loadCart(c)
	ct.Remove(productID)

	if err := saveCart(c, ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart_items_count": ct.Count()})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	ct := loadCart(c)
	ct.Clear()

	if err := saveCart(c, ct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart_items_count": 0})
}
