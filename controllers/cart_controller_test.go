package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCart(t *testing.T) {
	router, _ := setupTestRouter(t)
	tc := newTestClient(router)
	registerAndLogin(t, tc, "dave")

	tests := []struct {
		name           string
		quantities     map[string]string
		expectedStatus int
		expectedText   string
	}{
		{
			name:           "valid cart",
			quantities:     map[string]string{"Pasta": "2", "Momo": "1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-integer quantity",
			quantities:     map[string]string{"Pasta": "two"},
			expectedStatus: http.StatusBadRequest,
			expectedText:   "Invalid quantity for Pasta.",
		},
		{
			name:           "all zero quantities",
			quantities:     map[string]string{"Pasta": "0", "Tea": "0"},
			expectedStatus: http.StatusBadRequest,
			expectedText:   "Please select at least one item!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tc.do(t, http.MethodPost, "/api/v1/cart",
				map[string]interface{}{"quantities": tt.quantities})
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedText != "" {
				assert.Contains(t, w.Body.String(), tt.expectedText)
			}
		})
	}
}

func TestGetCartPreview(t *testing.T) {
	router, _ := setupTestRouter(t)
	tc := newTestClient(router)
	registerAndLogin(t, tc, "erin")

	// Empty session cart
	w := tc.do(t, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Please select items first.")

	w = tc.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"quantities": map[string]string{"Pasta": "2", "Momo": "1"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = tc.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "390", data["subtotal"])
	assert.Equal(t, "10", data["delivery_fee"])
	assert.Equal(t, "400", data["total"])
}

func TestResetCart(t *testing.T) {
	router, _ := setupTestRouter(t)
	tc := newTestClient(router)
	registerAndLogin(t, tc, "frank")

	w := tc.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"quantities": map[string]string{"Tea": "3"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = tc.do(t, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = tc.do(t, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartRequiresLogin(t *testing.T) {
	router, _ := setupTestRouter(t)
	tc := newTestClient(router)

	w := tc.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"quantities": map[string]string{"Pasta": "1"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
