package utils

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WalletTransaction{}))
	config.DB = db
	return db
}

func createLedgerUser(t *testing.T, db *gorm.DB, balance float64) models.User {
	t.Helper()
	user := models.User{
		FullName:      "Ama Serwaa",
		Email:         uuid.NewString() + "@example.com",
		Password:      "irrelevant",
		WalletBalance: balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// signedSum recomputes the balance from the audit log
func signedSum(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var transactions []models.WalletTransaction
	require.NoError(t, db.Where("user_id = ?", userID).Find(&transactions).Error)

	var sum float64
	for _, txn := range transactions {
		switch txn.Type {
		case models.TransactionTypeCredit:
			sum += txn.Amount
		case models.TransactionTypeDebit:
			sum -= txn.Amount
		default:
			t.Fatalf("unexpected transaction type %q", txn.Type)
		}
	}
	return sum
}

func currentBalance(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.WalletBalance
}

func TestUpdateWalletBalanceCreditThenDebit(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 0)

	require.NoError(t, UpdateWalletBalance(user.ID, 50, models.TransactionTypeCredit, "Paystack wallet top-up", "TOPUP-abc"))
	require.NoError(t, UpdateWalletBalance(user.ID, 22, models.TransactionTypeDebit, "Purchase: 5GB telecel data bundle", "ORDER_1"))

	assert.InDelta(t, 28, currentBalance(t, db, user.ID), 0.001)
	assert.InDelta(t, 28, signedSum(t, db, user.ID), 0.001, "cached balance must equal the signed sum of transactions")

	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDebitInsufficientBalance(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 10)

	err := UpdateWalletBalance(user.ID, 22, models.TransactionTypeDebit, "Purchase: 5GB telecel data bundle", "ORDER_9")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Neither side of the mutation may land
	assert.InDelta(t, 10, currentBalance(t, db, user.ID), 0.001)
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDebitExactBalanceSucceeds(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 22)

	require.NoError(t, UpdateWalletBalance(user.ID, 22, models.TransactionTypeDebit, "Purchase", "ORDER_3"))
	assert.InDelta(t, 0, currentBalance(t, db, user.ID), 0.001)
}

func TestDuplicateReferenceCreditsOnce(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 0)

	reference := "paystack-ref-1"
	require.NoError(t, UpdateWalletBalance(user.ID, 25, models.TransactionTypeCredit, "Paystack wallet top-up", reference))

	err := UpdateWalletBalance(user.ID, 25, models.TransactionTypeCredit, "Paystack wallet top-up", reference)
	assert.ErrorIs(t, err, ErrDuplicateReference)

	assert.InDelta(t, 25, currentBalance(t, db, user.ID), 0.001)
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("reference = ?", reference).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmptyReferenceNeverCollides(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 0)

	require.NoError(t, UpdateWalletBalance(user.ID, 5, models.TransactionTypeCredit, "Manual adjustment", ""))
	require.NoError(t, UpdateWalletBalance(user.ID, 5, models.TransactionTypeCredit, "Manual adjustment", ""))

	assert.InDelta(t, 10, currentBalance(t, db, user.ID), 0.001)
}

func TestConcurrentDebitsOnlyOneSucceeds(t *testing.T) {
	db := setupLedgerDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Single connection so both transactions hit the same sqlite handle;
	// the conditional UPDATE decides the winner, not the driver.
	sqlDB.SetMaxOpenConns(1)

	user := createLedgerUser(t, db, 50)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- UpdateWalletBalance(user.ID, 30, models.TransactionTypeDebit, "Purchase", fmt.Sprintf("ORDER_%d", i+1))
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientBalance):
			rejected++
		default:
			t.Fatalf("unexpected debit error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one debit may win")
	assert.Equal(t, 1, rejected)

	assert.InDelta(t, 20, currentBalance(t, db, user.ID), 0.001)
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).
		Where("user_id = ? AND type = ?", user.ID, models.TransactionTypeDebit).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentSameReferenceCreditsOnce(t *testing.T) {
	db := setupLedgerDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	user := createLedgerUser(t, db, 0)
	reference := "paystack-race-1"

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- UpdateWalletBalance(user.ID, 25, models.TransactionTypeCredit, "Paystack wallet top-up", reference)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, duplicate := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDuplicateReference):
			duplicate++
		default:
			t.Fatalf("unexpected credit error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicate, "the losing credit must surface as a duplicate, not a generic failure")

	assert.InDelta(t, 25, currentBalance(t, db, user.ID), 0.001)
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("reference = ?", reference).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestInvalidInputRejected(t *testing.T) {
	db := setupLedgerDB(t)
	user := createLedgerUser(t, db, 10)

	assert.ErrorIs(t, UpdateWalletBalance(user.ID, 0, models.TransactionTypeCredit, "x", ""), ErrInvalidAmount)
	assert.ErrorIs(t, UpdateWalletBalance(user.ID, -4, models.TransactionTypeDebit, "x", ""), ErrInvalidAmount)
	assert.ErrorIs(t, UpdateWalletBalance(user.ID, 4, "transfer", "x", ""), ErrInvalidTransactionType)
	assert.ErrorIs(t, UpdateWalletBalance(9999, 4, models.TransactionTypeCredit, "x", ""), ErrUserNotFound)
}
