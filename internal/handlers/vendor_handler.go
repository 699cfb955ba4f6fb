package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
)

// ListVendorBookings returns bookings against any of the vendor's cars.
func ListVendorBookings(c *gin.Context) {
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

	var bookings []models.Booking
	err := gormDB.Preload("Car").Preload("User").
		Joins("JOIN cars ON cars.id = bookings.car_id").
		Where("cars.vendor_id = ?", userID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func ListVendorCars(c *gin.Context) {
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

	var cars []models.Car
	if err := gormDB.Where("vendor_id = ?", userID).Order("created_at DESC").Find(&cars).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cars.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars})
}
