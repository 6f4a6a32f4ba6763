package handlers

import (
	"net/http"
	"time"

	"dokon-pos/internal/models"
	"dokon-pos/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler reports terminal identity and subscription state, so
// support can identify a till and the lock screen can show when access
// lapsed.
type SystemHandler struct {
	db *gorm.DB
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// --- GET /api/system/status ---
func (h *SystemHandler) Status(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id":           utils.GetDeviceID(),
		"subscription_end":    user.SubscriptionEnd,
		"subscription_active": user.SubscriptionActive(time.Now()),
	})
}
