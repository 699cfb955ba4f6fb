package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
)

func ListAllBookings(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "20")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Booking{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var totalCount int64
	query.Count(&totalCount)

	var bookings []models.Booking
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Car").Preload("User").
		Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":    bookings,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func ListUsers(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var users []models.User
	if err := gormDB.Preload("Role").Order("created_at DESC").Find(&users).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving users.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
