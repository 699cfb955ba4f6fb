package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CarStatusAvailable   = "available"
	CarStatusUnavailable = "unavailable"
)

type Car struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Make        string    `gorm:"not null"`
	CarModel    string    `gorm:"not null"`
	Year        int       `gorm:"not null"`
	Seats       int       `gorm:"not null"`
	PlateNumber string    `gorm:"unique;not null"`
	Location    string    `gorm:"not null"`
	PricePerDay int64     `gorm:"not null"`
	Status      string    `gorm:"not null"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Vendor      User      `gorm:"foreignKey:VendorID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (car *Car) BeforeCreate(tx *gorm.DB) (err error) {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	return
}
