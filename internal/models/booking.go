package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Booking struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	User             User      `gorm:"foreignKey:UserID"`
	CarID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Car              Car       `gorm:"foreignKey:CarID"`
	DriverID         *uuid.UUID `gorm:"type:uuid"`
	Driver           *Driver    `gorm:"foreignKey:DriverID"`
	DiscountID       *uuid.UUID `gorm:"type:uuid"`
	Discount         *Discount  `gorm:"foreignKey:DiscountID"`
	PickupTime       time.Time  `gorm:"not null"`
	ReturnTime       time.Time  `gorm:"not null"`
	PickupLocation   string     `gorm:"not null"`
	ReturnLocation   string     `gorm:"not null"`
	CarCost          int64      `gorm:"not null"`
	DriverFee        int64      `gorm:"not null"`
	ServiceFee       int64      `gorm:"not null"`
	DiscountAmount   int64      `gorm:"not null"`
	TotalAmount      int64      `gorm:"not null"`
	WalletDeduction  int64      `gorm:"not null"`
	Status           string     `gorm:"not null"`
	PaymentStatus    string     `gorm:"not null"`
	PaymentReference string     `gorm:"unique;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
