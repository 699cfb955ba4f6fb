package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
)

// GetBookingVoucher renders the signed pickup QR for a paid booking. The
// customer presents it at handover; the vendor scans and validates it.
func GetBookingVoucher(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
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
	if err := gormDB.First(&booking, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if booking.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a voucher for this booking.")
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPaid || booking.Status != models.BookingStatusConfirmed {
		helpers.RespondWithError(c, http.StatusBadRequest, "Voucher is only available for paid, confirmed bookings.")
		return
	}

	voucherData := helpers.BuildVoucherData(booking.ID, booking.CarID, booking.PaymentReference, os.Getenv("JWT_SECRET"))

	qrImage, err := qrcode.Encode(voucherData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate voucher.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidateVoucher lets the car's vendor check a scanned voucher and mark the
// rental as started.
func ValidateVoucher(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var validationRequest struct {
		VoucherData string `json:"voucher_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	bookingID, err := helpers.ExtractBookingIDFromVoucher(validationRequest.VoucherData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid voucher format.")
		return
	}

	var booking models.Booking
	if err := gormDB.Preload("Car").First(&booking, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if !helpers.ValidateVoucherSignature(booking.ID, booking.CarID, booking.PaymentReference, os.Getenv("JWT_SECRET"), validationRequest.VoucherData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid voucher signature.")
		return
	}

	if booking.Car.VendorID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to validate this voucher.")
		return
	}

	if booking.Status != models.BookingStatusConfirmed || booking.PaymentStatus != models.PaymentStatusPaid {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking is not in a redeemable state.")
		return
	}

	if err := gormDB.Model(&booking).Update("status", models.BookingStatusActive).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to validate voucher.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher validated successfully.",
		"booking": gin.H{
			"id":          booking.ID,
			"car":         booking.Car.Name,
			"pickup_time": booking.PickupTime,
			"return_time": booking.ReturnTime,
		},
	})
}
