package controllers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/middleware"
	"github.com/digibistro/digibistro-api/models"
)

// SelectPaymentRequest represents the request body for choosing a payment
// method
type SelectPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// SelectPayment handles POST /api/v1/payment - records the payment method
// for the pending order. Card payment is offered but not supported; only
// cash on delivery is accepted.
func SelectPayment(c *gin.Context) {
	var req SelectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid payment method selected.",
			},
		})
		return
	}

	method := models.PaymentMethod(req.PaymentMethod)
	switch method {
	case models.PaymentMethodCard:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PAYMENT_UNAVAILABLE",
				"message": "Online payment is not available in your country. Please use Cash on Delivery.",
			},
		})
		return
	case models.PaymentMethodCashOnDelivery:
		// accepted below
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid payment method selected.",
			},
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyPayment, string(method))
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to save session",
			},
		})
		return
	}

	log.Printf("Payment method selected: %s", method)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"payment_method": method,
		},
	})
}
