package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/middleware"
	"github.com/digibistro/digibistro-api/models"
)

// setupTestRouter builds an in-memory database and a router with the same
// route layout as main.go
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.OrderItem{}, &models.MenuImage{}))
	config.SetDB(db)

	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("digibistro_session", store))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", Register)
			auth.POST("/register-admin", RegisterAdmin)
			auth.POST("/login", Login)
			auth.POST("/logout", Logout)
		}

		v1.GET("/menu", GetMenu)
		v1.PUT("/menu/:item/image",
			middleware.RequireLogin(), middleware.RequireAdmin(), UploadMenuImage)

		ordering := v1.Group("", middleware.RequireLogin())
		{
			ordering.POST("/cart", UpdateCart)
			ordering.GET("/cart", GetCart)
			ordering.DELETE("/cart", ResetCart)
			ordering.POST("/payment", SelectPayment)
			ordering.POST("/orders", PlaceOrder)
			ordering.GET("/orders", ListOrders)
		}
	}

	return router, db
}

// testClient carries session cookies between requests, like a browser
type testClient struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestClient(router *gin.Engine) *testClient {
	return &testClient{router: router}
}

func (tc *testClient) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	if fresh := w.Result().Cookies(); len(fresh) > 0 {
		tc.cookies = fresh
	}
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// registerAndLogin creates a user through the API and logs the client in
func registerAndLogin(t *testing.T, tc *testClient, username string) {
	t.Helper()

	w := tc.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"username":   username,
		"email":      username + "@example.com",
		"password":   "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = tc.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
