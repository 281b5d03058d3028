package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront account and its wallet profile
type User struct {
	gorm.Model
	FullName      string    `json:"full_name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `json:"-"`
	PhoneNumber   string    `json:"phone_number"`
	WalletBalance float64   `json:"wallet_balance" gorm:"default:0"`
	IsAdmin       bool      `json:"is_admin" gorm:"default:false"`
	IsBlocked     bool      `json:"is_blocked" gorm:"default:false"`
	GoogleID      string    `gorm:"default:null" json:"-"`
	LastLoginAt   time.Time `json:"last_login_at"`

	Orders       []Order             `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Transactions []WalletTransaction `json:"transactions,omitempty" gorm:"foreignKey:UserID"`
}
