package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/middleware"
	"github.com/digibistro/digibistro-api/services"
)

// PlaceOrderRequest represents the delivery details form
type PlaceOrderRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	CustomerAddress string `json:"customer_address" binding:"required"`
	HouseNo         string `json:"house_no"`
}

// PlaceOrder handles POST /api/v1/orders - compiles the session cart and
// persists the order. On any failure the session cart is preserved so the
// submission can be retried without re-entering items.
func PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Please fill in all required fields.",
				"details": err.Error(),
			},
		})
		return
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Please log in to access this page.",
			},
		})
		return
	}

	session := sessions.Default(c)
	cartCtx := services.CartContext{
		Cart:          cartFromSession(session),
		PaymentMethod: paymentFromSession(session),
	}
	if len(cartCtx.Cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMPTY_CART",
				"message": "Your order is empty. Please select items again.",
			},
		})
		return
	}

	computation := services.CompileOrder(menuCatalog, cartCtx.Cart, cartCtx.PaymentMethod)
	log.Printf("Order calculations - Subtotal: %s, Delivery: %s, Total: %s",
		computation.Subtotal, computation.DeliveryFee, computation.Total)

	header := services.OrderHeaderInput{
		CustomerName:    req.CustomerName,
		PhoneNumber:     req.PhoneNumber,
		CustomerAddress: req.CustomerAddress,
		TotalPrice:      computation.Total,
		DeliveryFee:     computation.DeliveryFee,
		PaymentMethod:   cartCtx.PaymentMethod,
		UserID:          &userID,
	}
	items := make([]services.OrderItemInput, 0, len(computation.Items))
	for _, line := range computation.Items {
		items = append(items, services.OrderItemInput{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			ItemTotal: line.ItemTotal,
		})
	}

	store := services.NewOrderService(config.GetDB())
	ctx := c.Request.Context()

	orderID, orderCode, err := store.Persist(ctx, header, items)
	if err != nil {
		var pErr *services.PersistError
		// A code collision is retryable: regenerate and try once more
		if errors.As(err, &pErr) && pErr.Kind == services.PersistConflict {
			log.Printf("order code collision, retrying with a fresh code: %v", pErr)
			orderID, orderCode, err = store.Persist(ctx, header, items)
		}
	}
	if err != nil {
		respondPersistError(c, err)
		return
	}

	session.Delete(middleware.SessionKeyCart)
	session.Delete(middleware.SessionKeyPayment)
	if err := session.Save(); err != nil {
		// The order is committed; a stale session cart is the lesser evil
		log.Printf("failed to clear session cart after order %d: %v", orderID, err)
	}

	houseNo := req.HouseNo
	if houseNo == "" {
		houseNo = "N/A"
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order_id":         orderID,
			"order_code":       orderCode,
			"customer_name":    req.CustomerName,
			"phone_number":     req.PhoneNumber,
			"customer_address": req.CustomerAddress,
			"house_no":         houseNo,
			"payment_method":   cartCtx.PaymentMethod,
			"items":            computation.Items,
			"subtotal":         computation.Subtotal,
			"delivery_fee":     computation.DeliveryFee,
			"total_price":      computation.Total,
		},
	})
}

// respondPersistError maps a store failure onto the JSON envelope
func respondPersistError(c *gin.Context, err error) {
	var pErr *services.PersistError
	if !errors.As(err, &pErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save order. Please try again.",
			},
		})
		return
	}

	switch pErr.Kind {
	case services.PersistNoValidItems:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_VALID_ITEMS",
				"message": "Your order is empty. Please select items again.",
			},
		})
	case services.PersistConflict:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Failed to save order. Please try again.",
			},
		})
	case services.PersistUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_UNAVAILABLE",
				"message": "Failed to save order. Please try again.",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save order. Please try again.",
			},
		})
	}
}

// ListOrders handles GET /api/v1/orders - lists the logged-in user's orders
func ListOrders(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Please log in to access this page.",
			},
		})
		return
	}

	store := services.NewOrderService(config.GetDB())
	orders, err := store.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}
