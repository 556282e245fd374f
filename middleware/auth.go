package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/digibistro/digibistro-api/config"
	"github.com/digibistro/digibistro-api/models"
)

// Session keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyCart     = "cart"
	SessionKeyPayment  = "payment_method"
)

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// CurrentUserID returns the logged-in user's id from the session.
func CurrentUserID(c *gin.Context) (uint, error) {
	session := sessions.Default(c)
	raw := session.Get(SessionKeyUserID)
	if raw == nil {
		return 0, &AuthError{Code: "NOT_LOGGED_IN", Message: "No user in session"}
	}
	userID, ok := raw.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_SESSION", Message: "User ID in session has unexpected type"}
	}
	return userID, nil
}

// RequireLogin rejects requests that do not carry a logged-in session.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := CurrentUserID(c); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Please log in to access this page.",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from sessions whose user is not the admin.
// It must run after RequireLogin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := CurrentUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Please log in to access this page.",
				},
			})
			c.Abort()
			return
		}

		var user models.User
		if err := config.GetDB().First(&user, userID).Error; err != nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
