package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WalletTxTypeCredit = "credit"
	WalletTxTypeDebit  = "debit"
)

const (
	WalletTxStatusPending   = "pending"
	WalletTxStatusCompleted = "completed"
	WalletTxStatusFailed    = "failed"
)

// WalletTransaction is an append-only ledger entry. The user's wallet_balance
// is only ever mutated in the same database transaction that writes the entry.
type WalletTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        User      `gorm:"foreignKey:UserID"`
	Type        string    `gorm:"not null"`
	Amount      int64     `gorm:"not null"`
	Description string    `gorm:"not null"`
	Status      string    `gorm:"not null"`
	Reference   string    `gorm:"unique;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (wt *WalletTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if wt.ID == uuid.Nil {
		wt.ID = uuid.New()
	}
	return
}
