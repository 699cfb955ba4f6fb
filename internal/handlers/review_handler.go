package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/services"
)

type ReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
}

// CreateReview accepts one review per paid booking and credits the fixed
// review bonus to the reviewer.
func CreateReview(c *gin.Context) {
	var req ReviewRequest
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

	var booking models.Booking
	if err := gormDB.Where("id = ? AND user_id = ?", req.BookingID, userUUID).First(&booking).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		helpers.RespondWithError(c, http.StatusBadRequest, "Only paid bookings can be reviewed.")
		return
	}

	var existingReview models.Review
	if err := gormDB.Where("booking_id = ?", req.BookingID).First(&existingReview).Error; err == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You have already reviewed this booking.")
		return
	}

	review := models.Review{
		UserID:    userUUID,
		CarID:     booking.CarID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := gormDB.Create(&review).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create review.")
		return
	}

	if err := services.NewRewardService(gormDB).AwardReviewPoints(userUUID, review.ID); err != nil {
		// Review stands even if the bonus write fails; the points are not
		// worth rolling a published review back for.
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Review created, but reward points could not be credited.",
			"review_id": review.ID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Review created successfully.",
		"review_id":     review.ID,
		"points_earned": services.ReviewRewardPoints,
	})
}

func ListCarReviews(c *gin.Context) {
	carID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var reviews []models.Review
	if err := gormDB.Preload("User").Where("car_id = ?", carID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
