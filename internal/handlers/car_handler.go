package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
)

type CarRequest struct {
	Name        string `json:"name" binding:"required"`
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Seats       int    `json:"seats" binding:"required,min=1"`
	PlateNumber string `json:"plate_number" binding:"required"`
	Location    string `json:"location" binding:"required"`
	PricePerDay int64  `json:"price_per_day" binding:"required,min=1"`
}

func CreateCar(c *gin.Context) {
	var req CarRequest
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

	car := models.Car{
		Name:        req.Name,
		Make:        req.Make,
		CarModel:    req.Model,
		Year:        req.Year,
		Seats:       req.Seats,
		PlateNumber: req.PlateNumber,
		Location:    req.Location,
		PricePerDay: req.PricePerDay,
		Status:      models.CarStatusAvailable,
		VendorID:    vendorID,
	}

	if err := gormDB.Create(&car).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create car.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Car created successfully.",
		"car_id":  car.ID,
	})
}

func ListCars(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

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

	query := gormDB.Model(&models.Car{}).Where("status = ?", models.CarStatusAvailable)

	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		maxPriceNum, err := helpers.StringToInt(maxPrice)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid max price.")
			return
		}
		query = query.Where("price_per_day <= ?", maxPriceNum)
	}

	var totalCount int64
	query.Count(&totalCount)

	var cars []models.Car
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&cars).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving cars.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":        cars,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetCar(c *gin.Context) {
	carID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var car models.Car
	if err := gormDB.Where("id = ?", carID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Car not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving car.")
		return
	}

	c.JSON(http.StatusOK, car)
}

func UpdateCar(c *gin.Context) {
	carID := c.Param("id")
	var req CarRequest
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

	var car models.Car
	if err := gormDB.Where("id = ? AND vendor_id = ?", carID, userID).First(&car).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Car not found or you don't have permission to modify it.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying car ownership.")
		return
	}

	car.Name = req.Name
	car.Make = req.Make
	car.CarModel = req.Model
	car.Year = req.Year
	car.Seats = req.Seats
	car.PlateNumber = req.PlateNumber
	car.Location = req.Location
	car.PricePerDay = req.PricePerDay

	if err := gormDB.Save(&car).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update car.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Car updated successfully.",
		"car":     car,
	})
}

func DeleteCar(c *gin.Context) {
	carID := c.Param("id")

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

	result := gormDB.Where("id = ? AND vendor_id = ?", carID, userID).Delete(&models.Car{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete car.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Car not found or you don't have permission to delete it.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Car deleted successfully.",
	})
}
