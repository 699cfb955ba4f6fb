package services

import (
	"errors"
	"time"

	"github.com/kelechieze/rentwheels/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDiscountNotFound  = errors.New("discount code not found or inactive")
	ErrDiscountNotActive = errors.New("discount code is not active yet")
	ErrDiscountExpired   = errors.New("discount code has expired")
	ErrDiscountExhausted = errors.New("discount code usage limit reached")
)

type DiscountService struct {
	db *gorm.DB
}

func NewDiscountService(db *gorm.DB) *DiscountService {
	return &DiscountService{db: db}
}

// ValidateCode checks a code's eligibility without consuming it. The usage
// counter only moves when a booking actually completes payment, so repeated
// validation calls never burn the code.
func (s *DiscountService) ValidateCode(code string) (*models.Discount, error) {
	var discount models.Discount
	if err := s.db.Where("code = ? AND active = ?", code, true).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}

	now := time.Now()
	if now.Before(discount.ValidFrom) {
		return nil, ErrDiscountNotActive
	}
	if now.After(discount.ValidUntil) {
		return nil, ErrDiscountExpired
	}
	if discount.UsedCount >= discount.UsageLimit {
		return nil, ErrDiscountExhausted
	}

	return &discount, nil
}

// DiscountRejectionMessage maps a validation error to the message shown to
// the customer. Unknown errors fall back to a generic message.
func DiscountRejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrDiscountNotFound):
		return "Discount code not found or inactive."
	case errors.Is(err, ErrDiscountNotActive):
		return "Discount code is not active yet."
	case errors.Is(err, ErrDiscountExpired):
		return "Discount code has expired."
	case errors.Is(err, ErrDiscountExhausted):
		return "Discount code usage limit has been reached."
	default:
		return "Error validating discount code."
	}
}
