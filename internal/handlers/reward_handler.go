package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/services"
)

func ListRewardTransactions(c *gin.Context) {
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

	var transactions []models.RewardTransaction
	if err := gormDB.Where("user_id = ?", userID).Order("created_at DESC").Find(&transactions).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reward transactions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reward_points": user.RewardPoints,
		"transactions":  transactions,
	})
}

type RedeemPointsRequest struct {
	Points int64 `json:"points" binding:"required,min=1"`
}

func RedeemPoints(c *gin.Context) {
	var req RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Points are required.")
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

	if err := services.NewRewardService(gormDB).RedeemPoints(userUUID, req.Points); err != nil {
		switch {
		case errors.Is(err, services.ErrRedeemBelowMinimum):
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInsufficientPoints):
			helpers.RespondWithError(c, http.StatusBadRequest, "Insufficient reward points.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem points.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Points redeemed successfully.",
		"points_redeemed": req.Points,
		"wallet_credit":   req.Points,
	})
}
