package handlers

import (
	"net/http"
	"time"

	"dokon-pos/internal/auth"
	"dokon-pos/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves login and (when the feature flag allows it)
// registration.
type AuthHandler struct {
	db *gorm.DB
	tm *auth.TokenManager
}

func NewAuthHandler(db *gorm.DB, tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{db: db, tm: tm}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tm.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":            token,
		"role":             user.Role,
		"username":         user.Username,
		"subscription_end": user.SubscriptionEnd,
	})
}

type RegisterRequest struct {
	Username           string `json:"username" binding:"required"`
	Password           string `json:"password" binding:"required"`
	SubscriptionMonths int    `json:"subscription_months"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	months := input.SubscriptionMonths
	if months < 1 {
		months = 1
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	start := time.Now()
	user := models.User{
		Username:           input.Username,
		PasswordHash:       string(hashedPassword),
		Role:               "admin",
		SubscriptionStart:  start,
		SubscriptionMonths: months,
		SubscriptionEnd:    start.AddDate(0, months, 0),
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "User created successfully",
		"subscription_end": user.SubscriptionEnd,
	})
}
