package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	IsAdmin      bool `gorm:"default:false"`
	CreatedAt    time.Time
}

// FullName falls back to the username when no name fields are set,
// matching how the checkout form is prefilled.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
