package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/services"
)

type DiscountRequest struct {
	Code        string    `json:"code" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=percentage fixed"`
	Value       int64     `json:"value" binding:"required,min=1"`
	MaxDiscount int64     `json:"max_discount"`
	ValidFrom   time.Time `json:"valid_from" binding:"required"`
	ValidUntil  time.Time `json:"valid_until" binding:"required"`
	UsageLimit  int       `json:"usage_limit" binding:"required,min=1"`
	Active      *bool     `json:"active"`
}

func CreateDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	discount := models.Discount{
		Code:        req.Code,
		Type:        req.Type,
		Value:       req.Value,
		MaxDiscount: req.MaxDiscount,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		UsageLimit:  req.UsageLimit,
		Active:      active,
	}

	if err := gormDB.Create(&discount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create discount.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Discount created successfully.",
		"discount_id": discount.ID,
	})
}

func ListDiscounts(c *gin.Context) {
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

	query := gormDB.Model(&models.Discount{})
	var totalCount int64
	query.Count(&totalCount)

	var discounts []models.Discount
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&discounts).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving discounts.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"discounts":   discounts,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateDiscount(c *gin.Context) {
	discountID := c.Param("id")

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var discount models.Discount
	if err := gormDB.Where("id = ?", discountID).First(&discount).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Discount not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding discount.")
		return
	}

	discount.Code = req.Code
	discount.Type = req.Type
	discount.Value = req.Value
	discount.MaxDiscount = req.MaxDiscount
	discount.ValidFrom = req.ValidFrom
	discount.ValidUntil = req.ValidUntil
	discount.UsageLimit = req.UsageLimit
	if req.Active != nil {
		discount.Active = *req.Active
	}

	if err := gormDB.Save(&discount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update discount.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Discount updated successfully.",
		"discount": discount,
	})
}

func DeleteDiscount(c *gin.Context) {
	discountID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", discountID).Delete(&models.Discount{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete discount.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Discount not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount deleted successfully.",
	})
}

type ValidateDiscountRequest struct {
	Code     string `json:"code" binding:"required"`
	Subtotal int64  `json:"subtotal"`
}

// ValidateDiscount previews a code's eligibility and, when a subtotal is
// given, the amount it would take off. It never consumes the code.
func ValidateDiscount(c *gin.Context) {
	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Discount code is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	discount, err := services.NewDiscountService(gormDB).ValidateCode(req.Code)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, services.DiscountRejectionMessage(err))
		return
	}

	resp := gin.H{
		"valid": true,
		"discount": gin.H{
			"code":         discount.Code,
			"type":         discount.Type,
			"value":        discount.Value,
			"max_discount": discount.MaxDiscount,
			"valid_until":  discount.ValidUntil,
		},
	}
	if req.Subtotal > 0 {
		resp["discount_amount"] = helpers.DiscountAmount(discount, req.Subtotal)
	}

	c.JSON(http.StatusOK, resp)
}
