package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/ehson200611/Chocoberryy/internal/cart"
	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/models"
)

const cartSessionKey = "cart"

// dbCatalog adapts the products table to the cart.Catalog interface.
type dbCatalog struct{}

func (dbCatalog) Get(productID string) (cart.Product, error) {
	id, err := strconv.ParseUint(productID, 10, 64)
	if err != nil {
		return cart.Product{}, cart.ErrProductNotFound
	}

	var product models.Product
	if err := db.DB.First(&product, uint(id)).Error; err != nil {
		return cart.Product{}, cart.ErrProductNotFound
	}

	return cart.Product{
		ID:    productID,
		Name:  product.Name,
		Price: product.Price,
	}, nil
}

// loadCart reads the session-held cart. A missing or unreadable value
// yields a fresh empty cart.
func loadCart(c *gin.Context) cart.Cart {
	sess := sessions.Default(c)

	raw, ok := sess.Get(cartSessionKey).(string)
	if !ok || raw == "" {
		return cart.Cart{}
	}

	var ct cart.Cart
	if err := json.Unmarshal([]byte(raw), &ct); err != nil {
		return cart.Cart{}
	}
	return ct
}

// saveCart writes the cart back to the session.
func saveCart(c *gin.Context, ct cart.Cart) error {
	data, err := json.Marshal(ct)
	if err != nil {
		return err
	}

	sess := sessions.Default(c)
	sess.Set(cartSessionKey, string(data))
	return sess.Save()
}
