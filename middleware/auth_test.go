package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kay-mensah/DataPlug/config"
	"github.com/kay-mensah/DataPlug/models"
	"github.com/kay-mensah/DataPlug/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupAuthTest(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	config.DB = db
	return db
}

func protectedRouter(adminOnly bool) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware()}
	if adminOnly {
		handlers = append(handlers, AdminMiddleware())
	}
	handlers = append(handlers, func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": user.ID})
	})
	router.GET("/protected", handlers...)
	return router
}

func doGet(router http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	db := setupAuthTest(t)
	user := models.User{FullName: "Efua", Email: "efua@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)

	w := doGet(protectedRouter(false), token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	setupAuthTest(t)
	router := protectedRouter(false)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "not-a-jwt").Code)
}

func TestAuthMiddlewareRejectsBlockedUser(t *testing.T) {
	db := setupAuthTest(t)
	user := models.User{FullName: "Efua", Email: "efua@example.com", Password: "x", IsBlocked: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(protectedRouter(false), token).Code)
}

func TestAdminMiddlewareGate(t *testing.T) {
	db := setupAuthTest(t)

	regular := models.User{FullName: "Efua", Email: "efua@example.com", Password: "x"}
	require.NoError(t, db.Create(&regular).Error)
	admin := models.User{FullName: "Adjoa", Email: "adjoa@example.com", Password: "x", IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)

	router := protectedRouter(true)

	regularToken, err := utils.GenerateToken(&regular)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doGet(router, regularToken).Code)

	adminToken, err := utils.GenerateToken(&admin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(router, adminToken).Code)
}
