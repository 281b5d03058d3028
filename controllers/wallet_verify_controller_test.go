package controllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/kay-mensah/DataPlug/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyRouter(user models.User) *gin.Engine {
	router := gin.New()
	router.POST("/wallet/verify", asUser(user), VerifyWalletTopup)
	return router
}

func paystackVerifyServer(t *testing.T, status string, amountPesewas int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"` + status + `","reference":"TOPUP-ref1","amount":` + strconv.FormatInt(amountPesewas, 10) + `,"currency":"GHS"
		}}`))
	}))
}

func TestVerifyWalletTopupCreditsOnce(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)

	server := paystackVerifyServer(t, "success", 2500)
	defer server.Close()
	t.Setenv("PAYSTACK_BASE_URL", server.URL)

	router := verifyRouter(user)

	w := performJSON(t, router, http.MethodPost, "/wallet/verify", gin.H{"reference": "TOPUP-ref1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.InDelta(t, 25, body["amount"].(float64), 0.001)
	assert.InDelta(t, 25, walletBalance(t, db, user.ID), 0.001)

	// Verifying the same reference again must not credit twice
	w = performJSON(t, router, http.MethodPost, "/wallet/verify", gin.H{"reference": "TOPUP-ref1"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["already_credited"])

	assert.InDelta(t, 25, walletBalance(t, db, user.ID), 0.001)
	assert.EqualValues(t, 1, transactionCount(t, db, user.ID))
}

func TestVerifyWalletTopupUnsuccessfulPayment(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)

	server := paystackVerifyServer(t, "failed", 2500)
	defer server.Close()
	t.Setenv("PAYSTACK_BASE_URL", server.URL)

	w := performJSON(t, verifyRouter(user), http.MethodPost, "/wallet/verify", gin.H{"reference": "TOPUP-ref1"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment verification failed", decodeBody(t, w)["error"])
	assert.InDelta(t, 0, walletBalance(t, db, user.ID), 0.001)
	assert.EqualValues(t, 0, transactionCount(t, db, user.ID))
}

func TestVerifyWalletTopupUnknownReference(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	}))
	defer server.Close()
	t.Setenv("PAYSTACK_BASE_URL", server.URL)

	w := performJSON(t, verifyRouter(user), http.MethodPost, "/wallet/verify", gin.H{"reference": "bogus"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Transaction reference not found", decodeBody(t, w)["error"])
	assert.InDelta(t, 0, walletBalance(t, db, user.ID), 0.001)
}
