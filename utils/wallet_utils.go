package utils

import (
	"errors"
	"fmt"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"gorm.io/gorm"
)

// Ledger errors surfaced to callers
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("transaction type must be credit or debit")
	ErrInsufficientBalance    = errors.New("insufficient wallet balance")
	ErrDuplicateReference     = errors.New("transaction reference already applied")
	ErrUserNotFound           = errors.New("user not found")
)

// UpdateWalletBalance applies a single wallet mutation: it adjusts the user's
// cached balance and appends the matching WalletTransaction audit row inside
// one database transaction, so either both land or neither does.
//
// A debit that would take the balance negative fails with
// ErrInsufficientBalance; the balance check lives in the UPDATE's WHERE
// clause so two racing debits can never both pass it. A non-empty reference
// acts as an idempotency key: a reference that was already applied fails
// with ErrDuplicateReference, backed by the unique index on
// wallet_transactions.reference.
func UpdateWalletBalance(userID uint, amount float64, transactionType, description, reference string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if transactionType != models.TransactionTypeCredit && transactionType != models.TransactionTypeDebit {
		return ErrInvalidTransactionType
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		var ref *string
		if reference != "" {
			var count int64
			if err := tx.Model(&models.WalletTransaction{}).
				Where("reference = ?", reference).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check reference: %w", err)
			}
			if count > 0 {
				return ErrDuplicateReference
			}
			ref = &reference
		}

		var result *gorm.DB
		if transactionType == models.TransactionTypeDebit {
			result = tx.Model(&models.User{}).
				Where("id = ? AND wallet_balance >= ?", userID, amount).
				UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
		} else {
			result = tx.Model(&models.User{}).
				Where("id = ?", userID).
				UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
		}
		if result.Error != nil {
			return fmt.Errorf("failed to update wallet balance: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			if transactionType == models.TransactionTypeDebit {
				var count int64
				if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return ErrInsufficientBalance
				}
			}
			return ErrUserNotFound
		}

		transaction := models.WalletTransaction{
			UserID:      userID,
			Amount:      amount,
			Type:        transactionType,
			Description: description,
			Reference:   ref,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			// A racing caller can slip the same reference in between the
			// count check and this insert; the unique index catches it.
			if ref != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReference
			}
			return fmt.Errorf("failed to record wallet transaction: %w", err)
		}

		return nil
	})
}
