package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kay-mensah/DataPlug/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topupRouter(user models.User) *gin.Engine {
	router := gin.New()
	router.POST("/wallet/topup", asUser(user), InitiateWalletTopup)
	return router
}

func TestInitiateWalletTopup(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)

	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
			"authorization_url":"https://checkout.paystack.com/abc123",
			"access_code":"abc123",
			"reference":"` + gotBody["reference"].(string) + `"
		}}`))
	}))
	defer server.Close()
	t.Setenv("PAYSTACK_BASE_URL", server.URL)

	w := performJSON(t, topupRouter(user), http.MethodPost, "/wallet/topup", gin.H{"amount": 25.5})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://checkout.paystack.com/abc123", data["authorization_url"])
	assert.True(t, strings.HasPrefix(data["reference"].(string), "TOPUP-"))

	// Gateway sees pesewas
	assert.EqualValues(t, 2550, gotBody["amount"])
	assert.Equal(t, user.Email, gotBody["email"])

	// Nothing is written locally until verification
	assert.EqualValues(t, 0, transactionCount(t, db, user.ID))
	assert.InDelta(t, 0, walletBalance(t, db, user.ID), 0.001)
}

func TestInitiateWalletTopupInvalidAmount(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, 0)

	for _, amount := range []float64{0, -5} {
		w := performJSON(t, topupRouter(user), http.MethodPost, "/wallet/topup", gin.H{"amount": amount})
		assert.Equal(t, http.StatusBadRequest, w.Code, "amount %v", amount)
	}
}
