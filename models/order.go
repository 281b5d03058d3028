package models

import (
	"gorm.io/gorm"
)

// Order status constants
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
)

// Order represents a single bundle purchase attempt. Amount is a snapshot of
// the bundle price at purchase time so later catalog edits never change
// historical orders.
type Order struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index"`
	User          User    `json:"-" gorm:"foreignKey:UserID"`
	BundleID      uint    `json:"bundle_id"`
	Bundle        Bundle  `json:"bundle" gorm:"foreignKey:BundleID"`
	ReceiverPhone string  `json:"receiver_phone"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status" gorm:"default:pending"`
	TransactionID string  `json:"transaction_id"`
}
