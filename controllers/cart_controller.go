package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/middleware"
	"github.com/digibistro/digibistro-api/models"
	"github.com/digibistro/digibistro-api/services"
)

// UpdateCartRequest represents the request body for building the cart. The
// quantities arrive as raw strings, exactly as typed into the menu form.
type UpdateCartRequest struct {
	Quantities map[string]string `json:"quantities" binding:"required"`
}

// cartFromSession decodes the session cart. A missing or corrupt value is
// treated as an empty cart.
func cartFromSession(session sessions.Session) services.Cart {
	raw := session.Get(middleware.SessionKeyCart)
	encoded, ok := raw.(string)
	if !ok || encoded == "" {
		return nil
	}
	var cart services.Cart
	if err := json.Unmarshal([]byte(encoded), &cart); err != nil {
		log.Printf("discarding unreadable session cart: %v", err)
		return nil
	}
	return cart
}

// paymentFromSession returns the selected payment method, defaulting to
// cash on delivery.
func paymentFromSession(session sessions.Session) models.PaymentMethod {
	raw := session.Get(middleware.SessionKeyPayment)
	if value, ok := raw.(string); ok && value != "" {
		return models.PaymentMethod(value)
	}
	return models.PaymentMethodCashOnDelivery
}

// UpdateCart handles POST /api/v1/cart - validates raw quantities and stores
// the resulting cart in the session
func UpdateCart(c *gin.Context) {
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	cart, err := services.AccumulateCart(menuCatalog, req.Quantities)
	if err != nil {
		var message string
		if vErr, ok := err.(*services.ValidationError); ok && vErr.Item != "" {
			message = "Invalid quantity for " + vErr.Item + "."
		} else {
			message = "Please select at least one item!"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": message,
			},
		})
		return
	}

	encoded, err := json.Marshal(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to store cart",
			},
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionKeyCart, string(encoded))
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

	log.Printf("Menu items saved to session: %v", cart)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cart,
	})
}

// GetCart handles GET /api/v1/cart - returns the session cart with a price
// preview for the currently selected payment method
func GetCart(c *gin.Context) {
	session := sessions.Default(c)
	cart := cartFromSession(session)
	if len(cart) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CART",
				"message": "Please select items first.",
			},
		})
		return
	}

	computation := services.CompileOrder(menuCatalog, cart, paymentFromSession(session))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"cart":         cart,
			"items":        computation.Items,
			"subtotal":     computation.Subtotal,
			"delivery_fee": computation.DeliveryFee,
			"total":        computation.Total,
		},
	})
}

// ResetCart handles DELETE /api/v1/cart - discards the session cart
func ResetCart(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionKeyCart)
	session.Delete(middleware.SessionKeyPayment)
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
