package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/middleware"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/services"
)

func GetWallet(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.First(&user, "id = ?", userID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_balance": user.WalletBalance,
		"reward_points":  user.RewardPoints,
	})
}

func ListWalletTransactions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var transactions []models.WalletTransaction
	if err := gormDB.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving wallet transactions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

type FundWalletRequest struct {
	Amount int64 `json:"amount" binding:"required,min=100"`
}

func FundWallet(c *gin.Context) {
	var req FundWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Amount must be at least 100 naira.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := services.NewPaymentService(gormDB, middleware.GetPaystackGateway(c))
	authURL, reference, err := svc.FundWallet(userUUID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrPaymentInit) {
			helpers.RespondWithError(c, http.StatusBadGateway, "Failed to initialize payment.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to start wallet funding.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":         reference,
		"authorization_url": authURL,
	})
}
