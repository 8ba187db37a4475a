package models

import "time"

type ContactInquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"submitted_at"`
}
