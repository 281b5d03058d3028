package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Bundle{}, &models.Order{}, &models.WalletTransaction{}))
	config.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, balance float64) models.User {
	t.Helper()
	user := models.User{
		FullName:      "Kofi Mensah",
		Email:         uuid.NewString() + "@example.com",
		Password:      "hashed",
		PhoneNumber:   "0241234567",
		WalletBalance: balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestBundle(t *testing.T, db *gorm.DB, network, capacity string, price float64, active bool) models.Bundle {
	t.Helper()
	bundle := models.Bundle{
		Network:  network,
		Capacity: capacity,
		Price:    price,
		Validity: "30 days",
		IsActive: active,
	}
	require.NoError(t, db.Create(&bundle).Error)
	return bundle
}

// asUser stands in for the auth middleware
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}

func performJSON(t *testing.T, router http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func walletBalance(t *testing.T, db *gorm.DB, userID uint) float64 {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.WalletBalance
}

func transactionCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}
