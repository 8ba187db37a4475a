package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCategory = "Strawberries"

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"index;not null" json:"category"`
	Image       string          `json:"image"`
	IsPopular   bool            `gorm:"default:false" json:"is_popular"`
	IsNew       bool            `gorm:"default:false" json:"is_new"`
	CreatedAt   time.Time       `json:"created_at"`
}
