package middleware

import (
	"net/http"
	"strings"
	"time"

	"dokon-pos/internal/auth"
	"dokon-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Auth checks the Bearer token and stores the claims in the context for
// the handlers downstream.
func Auth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := tm.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions.
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckSubscription blocks every API route once the signed-in user's
// subscription window has lapsed. Runs after Auth, so the userID claim
// is already in the context.
func CheckSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}

		if !user.SubscriptionActive(time.Now()) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":            "subscription_expired",
				"subscription_end": user.SubscriptionEnd,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
