package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RewardTxTypeEarned   = "earned"
	RewardTxTypeRedeemed = "redeemed"
)

type RewardTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        User      `gorm:"foreignKey:UserID"`
	Type        string    `gorm:"not null"`
	Points      int64     `gorm:"not null"`
	Description string    `gorm:"not null"`
	Reference   string    `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (rt *RewardTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return
}
