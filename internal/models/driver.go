package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Driver struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Name          string    `gorm:"not null"`
	PhoneNumber   string    `gorm:"not null"`
	LicenseNumber string    `gorm:"unique;not null"`
	HourlyRate    int64     `gorm:"not null"`
	Available     bool      `gorm:"not null;default:true"`
	VendorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Vendor        User      `gorm:"foreignKey:VendorID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (driver *Driver) BeforeCreate(tx *gorm.DB) (err error) {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	return
}
