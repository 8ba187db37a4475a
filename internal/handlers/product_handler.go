package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	IsPopular   bool            `json:"is_popular"`
	IsNew       bool            `json:"is_new"`
}

// GET /api/products?q=&category=
//
// Lists the catalog. q searches name, description and category; a
// category other than "all" narrows to that category. The response also
// carries the current cart item count for the menu badge.
func ListProducts(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	tx := db.DB.Model(&models.Product{})

	if query != "" {
		needle := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"lower(name) LIKE ? OR lower(description) LIKE ? OR lower(category) LIKE ?",
			needle, needle, needle,
		)
	}

	if category != "" && category != "all" {
		tx = tx.Where("category = ?", category)
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var categories []string
	if err := db.DB.Model(&models.Product{}).Distinct().Pluck("category", &categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":          products,
		"categories":        categories,
		"search_query":      query,
		"selected_category": category,
		"cart_items_count":  loadCart(c).Count(),
	})
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	var product models.Product
	if err := db.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %s", c.Param("id"))})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/home
//
// Featured products are the popular ones, falling back to the first four
// of the catalog when nothing is flagged popular.
func Home(c *gin.Context) {
	var featured []models.Product
	if err := db.DB.Where("is_popular = ?", true).Limit(4).Find(&featured).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(featured) == 0 {
		if err := db.DB.Limit(4).Find(&featured).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	var newProducts []models.Product
	if err := db.DB.Where("is_new = ?", true).Limit(3).Find(&newProducts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured_products": featured,
		"new_products":      newProducts,
	})
}

// POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}

	if req.Category == "" {
		req.Category = models.DefaultCategory
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		IsPopular:   req.IsPopular,
		IsNew:       req.IsNew,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}
