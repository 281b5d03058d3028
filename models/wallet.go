package models

import (
	"time"
)

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// WalletTransaction is an append-only audit record of a wallet balance
// mutation. Reference carries the idempotency key for credits applied from
// external payments; the unique index is what makes re-applying a payment
// reference impossible.
type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"index"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // credit, debit
	Description string    `json:"description"`
	Reference   *string   `json:"reference" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}
