package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
)

type DriverRequest struct {
	Name          string `json:"name" binding:"required"`
	PhoneNumber   string `json:"phone_number" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	HourlyRate    int64  `json:"hourly_rate" binding:"required,min=1"`
	Available     *bool  `json:"available"`
}

func CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	vendorID, ok := userID.(uuid.UUID)
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

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	driver := models.Driver{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		LicenseNumber: req.LicenseNumber,
		HourlyRate:    req.HourlyRate,
		Available:     available,
		VendorID:      vendorID,
	}

	if err := gormDB.Create(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create driver.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Driver created successfully.",
		"driver_id": driver.ID,
	})
}

func ListVendorDrivers(c *gin.Context) {
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

	var drivers []models.Driver
	if err := gormDB.Where("vendor_id = ?", userID).Order("created_at DESC").Find(&drivers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving drivers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

func UpdateDriver(c *gin.Context) {
	driverID := c.Param("id")
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

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

	var driver models.Driver
	if err := gormDB.Where("id = ? AND vendor_id = ?", driverID, userID).First(&driver).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Driver not found or you don't have permission to modify them.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying driver ownership.")
		return
	}

	driver.Name = req.Name
	driver.PhoneNumber = req.PhoneNumber
	driver.LicenseNumber = req.LicenseNumber
	driver.HourlyRate = req.HourlyRate
	if req.Available != nil {
		driver.Available = *req.Available
	}

	if err := gormDB.Save(&driver).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update driver.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver updated successfully.",
		"driver":  driver,
	})
}

func DeleteDriver(c *gin.Context) {
	driverID := c.Param("id")

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

	result := gormDB.Where("id = ? AND vendor_id = ?", driverID, userID).Delete(&models.Driver{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete driver.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Driver not found or you don't have permission to delete them.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver deleted successfully.",
	})
}
