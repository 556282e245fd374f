package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appConfig "github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/models"
)

func setupMainTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.OrderItem{}, &models.MenuImage{}))
	appConfig.SetDB(db)

	router := gin.New()
	setupRouter(router, &appConfig.Config{SessionSecret: "test-secret", Port: "8080"})
	return router
}

func TestHealthCheck(t *testing.T) {
	router := setupMainTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DigiBistro API is running")
}

func TestDatabaseStatus(t *testing.T) {
	router := setupMainTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/database/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Database connected")
	assert.Contains(t, w.Body.String(), "order_items")
}
