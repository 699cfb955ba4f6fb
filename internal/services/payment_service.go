package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/paystack"
	"gorm.io/gorm"
)

type PaymentService struct {
	db      *gorm.DB
	gateway paystack.Gateway
}

func NewPaymentService(db *gorm.DB, gateway paystack.Gateway) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

type VerifyResult struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Amount    int64      `json:"amount"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Applied   bool       `json:"applied"`
}

// VerifyPayment confirms a transaction with the gateway and applies its side
// effects exactly once. Re-delivery of the same reference is a no-op: every
// mutation is keyed on a conditional status flip.
func (s *PaymentService) VerifyPayment(reference string) (*VerifyResult, error) {
	gtx, err := s.gateway.Verify(reference)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Reference: gtx.Reference,
		Status:    gtx.Status,
		Amount:    gtx.Amount,
	}

	if gtx.Status != paystack.TransactionSuccess {
		// Nothing is credited on failure; the customer restarts payment.
		return result, nil
	}

	if gtx.Metadata.Type == paystack.MetadataTypeWalletFunding {
		applied, err := s.creditWalletFunding(gtx)
		if err != nil {
			return result, err
		}
		result.Applied = applied
		return result, nil
	}

	if gtx.Metadata.BookingID != "" {
		bookingID, err := uuid.Parse(gtx.Metadata.BookingID)
		if err != nil {
			return result, fmt.Errorf("invalid booking ID in transaction metadata: %w", err)
		}
		result.BookingID = &bookingID

		applied, err := finalizeBookingPayment(s.db, bookingID)
		if err != nil {
			return result, err
		}
		result.Applied = applied
	}

	return result, nil
}

// creditWalletFunding completes the pending ledger entry and credits the
// balance. The pending→completed flip is the idempotency gate: only the call
// that wins it touches the balance.
func (s *PaymentService) creditWalletFunding(gtx *paystack.Transaction) (bool, error) {
	userID, err := uuid.Parse(gtx.Metadata.UserID)
	if err != nil {
		return false, fmt.Errorf("invalid user ID in transaction metadata: %w", err)
	}

	var applied bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WalletTransaction{}).
			Where("reference = ? AND status = ?", gtx.Reference, models.WalletTxStatusPending).
			Update("status", models.WalletTxStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", gtx.Amount)).Error
	})
	return applied, err
}

// FundWallet records a pending credit and opens a gateway session for it.
// The entry stays pending until the callback verifies the transaction.
func (s *PaymentService) FundWallet(userID uuid.UUID, amount int64) (string, string, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return "", "", err
	}

	reference := helpers.NewPaymentReference("RWF")
	walletTx := models.WalletTransaction{
		UserID:      userID,
		Type:        models.WalletTxTypeCredit,
		Amount:      amount,
		Description: "Wallet funding",
		Status:      models.WalletTxStatusPending,
		Reference:   reference,
	}
	if err := s.db.Create(&walletTx).Error; err != nil {
		return "", "", err
	}

	authURL, err := s.gateway.Initialize(user.Email, amount, reference, paystack.Metadata{
		Type:   paystack.MetadataTypeWalletFunding,
		UserID: userID.String(),
	})
	if err != nil {
		return "", reference, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	return authURL, reference, nil
}

// finalizeBookingPayment marks a booking paid and runs completion side
// effects: reward points (1 per 100 naira) and the discount usage count.
// The pending→paid flip gates everything, so a replayed callback and a
// wallet-covered instant confirm can never double-apply.
func finalizeBookingPayment(db *gorm.DB, bookingID uuid.UUID) (bool, error) {
	var applied bool
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND payment_status = ?", bookingID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"status":         models.BookingStatusConfirmed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true

		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}

		if points := booking.TotalAmount / 100; points > 0 {
			reward := models.RewardTransaction{
				UserID:      booking.UserID,
				Type:        models.RewardTxTypeEarned,
				Points:      points,
				Description: fmt.Sprintf("Reward for booking %s", booking.PaymentReference),
				Reference:   booking.PaymentReference,
			}
			if err := tx.Create(&reward).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", booking.UserID).
				Update("reward_points", gorm.Expr("reward_points + ?", points)).Error; err != nil {
				return err
			}
		}

		if booking.DiscountID != nil {
			if err := tx.Model(&models.Discount{}).Where("id = ?", *booking.DiscountID).
				Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})
	return applied, err
}
