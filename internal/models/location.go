package models

type Location struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Address     string `gorm:"not null" json:"address"`
	Hours       string `json:"hours"`
	Phone       string `json:"phone"`
	MapEmbed    string `json:"map_embed"`
	Description string `json:"description"`
}
