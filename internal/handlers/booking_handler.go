package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/middleware"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/services"
)

type BookingRequest struct {
	CarID          uuid.UUID  `json:"car_id" binding:"required"`
	DriverID       *uuid.UUID `json:"driver_id"`
	PickupTime     time.Time  `json:"pickup_time" binding:"required"`
	ReturnTime     time.Time  `json:"return_time" binding:"required"`
	PickupLocation string     `json:"pickup_location" binding:"required"`
	ReturnLocation string     `json:"return_location" binding:"required"`
	DiscountCode   string     `json:"discount_code"`
	UseWallet      bool       `json:"use_wallet"`
}

func CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	svc := services.NewBookingService(gormDB, middleware.GetPaystackGateway(c))
	result, err := svc.CreateBooking(services.BookingRequest{
		UserID:         userUUID,
		CarID:          req.CarID,
		DriverID:       req.DriverID,
		PickupTime:     req.PickupTime,
		ReturnTime:     req.ReturnTime,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		DiscountCode:   req.DiscountCode,
		UseWallet:      req.UseWallet,
	})
	if err != nil {
		respondBookingError(c, result, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Booking created successfully.",
		"booking_id":        result.Booking.ID,
		"payment_reference": result.Booking.PaymentReference,
		"breakdown":         result.Breakdown,
		"wallet_deduction":  result.WalletDeduction,
		"amount_payable":    result.AmountPayable,
		"payment_status":    result.Booking.PaymentStatus,
		"status":            result.Booking.Status,
		"authorization_url": result.AuthorizationURL,
	})
}

func respondBookingError(c *gin.Context, result *services.BookingResult, err error) {
	switch {
	case errors.Is(err, services.ErrCarNotFound), errors.Is(err, services.ErrDriverNotFound), errors.Is(err, services.ErrBookingNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, "Booking target not found.")
	case errors.Is(err, services.ErrCarUnavailable):
		helpers.RespondWithError(c, http.StatusBadRequest, "Car is not available for the selected period.")
	case errors.Is(err, services.ErrDriverUnavailable):
		helpers.RespondWithError(c, http.StatusBadRequest, "Driver is not available.")
	case errors.Is(err, services.ErrDiscountNotFound),
		errors.Is(err, services.ErrDiscountNotActive),
		errors.Is(err, services.ErrDiscountExpired),
		errors.Is(err, services.ErrDiscountExhausted):
		helpers.RespondWithError(c, http.StatusBadRequest, services.DiscountRejectionMessage(err))
	case errors.Is(err, services.ErrBookingNotPayable):
		helpers.RespondWithError(c, http.StatusBadRequest, "Booking is not awaiting payment.")
	case errors.Is(err, services.ErrCannotCancel):
		helpers.RespondWithError(c, http.StatusBadRequest, "Booking can no longer be cancelled.")
	case errors.Is(err, services.ErrPaymentInit):
		// The booking row survived; the customer retries against the same
		// reference instead of losing the reservation.
		resp := gin.H{"message": "Booking saved but payment initialization failed. Please retry payment."}
		if result != nil && result.Booking != nil {
			resp["booking_id"] = result.Booking.ID
			resp["payment_reference"] = result.Booking.PaymentReference
		}
		c.JSON(http.StatusBadGateway, resp)
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error creating booking. Please try again.")
	}
}

func ListMyBookings(c *gin.Context) {
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
	if err := gormDB.Preload("Car").Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func GetBooking(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var booking models.Booking
	if err := gormDB.Preload("Car").Preload("Driver").Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func CancelBooking(c *gin.Context) {
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

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := services.NewBookingService(gormDB, middleware.GetPaystackGateway(c))
	booking, err := svc.CancelBooking(bookingID, userUUID)
	if err != nil {
		respondBookingError(c, nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully.",
		"booking": booking,
	})
}

func RetryBookingPayment(c *gin.Context) {
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

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	svc := services.NewBookingService(gormDB, middleware.GetPaystackGateway(c))
	result, err := svc.RetryPayment(bookingID, userUUID)
	if err != nil {
		respondBookingError(c, result, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_reference": result.Booking.PaymentReference,
		"amount_payable":    result.AmountPayable,
		"payment_status":    result.Booking.PaymentStatus,
		"authorization_url": result.AuthorizationURL,
	})
}

func GetBookingReceipt(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var booking models.Booking
	if err := gormDB.Preload("Car").Preload("User").Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		helpers.RespondWithError(c, http.StatusBadRequest, "Receipt is only available for paid bookings.")
		return
	}

	pdfBytes, filename, err := services.BuildBookingReceipt(&booking)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate receipt.")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
