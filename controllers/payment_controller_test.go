package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPayment(t *testing.T) {
	router, _ := setupTestRouter(t)
	tc := newTestClient(router)
	registerAndLogin(t, tc, "grace")

	tests := []struct {
		name           string
		paymentMethod  string
		expectedStatus int
		expectedText   string
	}{
		{
			name:           "cash on delivery accepted",
			paymentMethod:  "cash_on_delivery",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "card offered but unavailable",
			paymentMethod:  "card",
			expectedStatus: http.StatusBadRequest,
			expectedText:   "Online payment is not available in your country. Please use Cash on Delivery.",
		},
		{
			name:           "unknown method rejected",
			paymentMethod:  "bitcoin",
			expectedStatus: http.StatusBadRequest,
			expectedText:   "Invalid payment method selected.",
		},
		{
			name:           "missing method rejected",
			paymentMethod:  "",
			expectedStatus: http.StatusBadRequest,
			expectedText:   "Invalid payment method selected.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tc.do(t, http.MethodPost, "/api/v1/payment",
				map[string]string{"payment_method": tt.paymentMethod})
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedText != "" {
				assert.Contains(t, w.Body.String(), tt.expectedText)
			}
		})
	}
}
