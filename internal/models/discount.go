package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Discount struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Code        string    `gorm:"not null;unique"`
	Type        string    `gorm:"not null"`
	Value       int64     `gorm:"not null"`
	MaxDiscount int64     `gorm:"not null;default:0"`
	ValidFrom   time.Time `gorm:"not null"`
	ValidUntil  time.Time `gorm:"not null"`
	UsageLimit  int       `gorm:"not null"`
	UsedCount   int       `gorm:"not null;default:0"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
