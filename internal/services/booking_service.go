package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/kelechieze/rentwheels/internal/paystack"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCarNotFound       = errors.New("car not found")
	ErrCarUnavailable    = errors.New("car is not available")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrDriverUnavailable = errors.New("driver is not available")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotPayable = errors.New("booking is not awaiting payment")
	ErrCannotCancel      = errors.New("booking can no longer be cancelled")
	ErrPaymentInit       = errors.New("payment initialization failed")
)

type BookingService struct {
	db        *gorm.DB
	gateway   paystack.Gateway
	discounts *DiscountService
}

func NewBookingService(db *gorm.DB, gateway paystack.Gateway) *BookingService {
	return &BookingService{db: db, gateway: gateway, discounts: NewDiscountService(db)}
}

type BookingRequest struct {
	UserID         uuid.UUID
	CarID          uuid.UUID
	DriverID       *uuid.UUID
	PickupTime     time.Time
	ReturnTime     time.Time
	PickupLocation string
	ReturnLocation string
	DiscountCode   string
	UseWallet      bool
}

type BookingResult struct {
	Booking          *models.Booking
	Breakdown        helpers.PriceBreakdown
	WalletDeduction  int64
	AmountPayable    int64
	AuthorizationURL string
}

// CreateBooking persists the booking first, then settles: wallet deduction
// (if requested), then either an immediate confirm when fully covered or a
// gateway session for the remainder. A gateway failure leaves the booking
// pending/pending, retryable against the same reference.
func (s *BookingService) CreateBooking(req BookingRequest) (*BookingResult, error) {
	var car models.Car
	if err := s.db.First(&car, "id = ?", req.CarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	if car.Status != models.CarStatusAvailable {
		return nil, ErrCarUnavailable
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return nil, err
	}

	var driver *models.Driver
	if req.DriverID != nil {
		driver = &models.Driver{}
		if err := s.db.First(driver, "id = ?", *req.DriverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDriverNotFound
			}
			return nil, err
		}
		if !driver.Available {
			return nil, ErrDriverUnavailable
		}
	}

	var discount *models.Discount
	if req.DiscountCode != "" {
		var err error
		discount, err = s.discounts.ValidateCode(req.DiscountCode)
		if err != nil {
			return nil, err
		}
	}

	var driverRate int64
	if driver != nil {
		driverRate = driver.HourlyRate
	}
	breakdown := helpers.CalculatePrice(car.PricePerDay, req.PickupTime, req.ReturnTime, driver != nil, driverRate, discount)

	booking := &models.Booking{
		UserID:           req.UserID,
		CarID:            req.CarID,
		DriverID:         req.DriverID,
		PickupTime:       req.PickupTime,
		ReturnTime:       req.ReturnTime,
		PickupLocation:   req.PickupLocation,
		ReturnLocation:   req.ReturnLocation,
		CarCost:          breakdown.CarCost,
		DriverFee:        breakdown.DriverFee,
		ServiceFee:       breakdown.ServiceFee,
		DiscountAmount:   breakdown.DiscountAmount,
		TotalAmount:      breakdown.TotalAmount,
		Status:           models.BookingStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		PaymentReference: helpers.NewPaymentReference("RWB"),
	}
	if discount != nil {
		booking.DiscountID = &discount.ID
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	result := &BookingResult{Booking: booking, Breakdown: breakdown}

	if req.UseWallet {
		deduction, err := s.applyWalletDeduction(booking)
		if err != nil {
			return result, err
		}
		result.WalletDeduction = deduction
	}

	result.AmountPayable = booking.TotalAmount - result.WalletDeduction

	if result.AmountPayable == 0 {
		if _, err := finalizeBookingPayment(s.db, booking.ID); err != nil {
			return result, err
		}
		booking.Status = models.BookingStatusConfirmed
		booking.PaymentStatus = models.PaymentStatusPaid
		return result, nil
	}

	authURL, err := s.gateway.Initialize(user.Email, result.AmountPayable, booking.PaymentReference, paystack.Metadata{
		BookingID: booking.ID.String(),
		UserID:    user.ID.String(),
	})
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}
	result.AuthorizationURL = authURL

	return result, nil
}

// applyWalletDeduction moves min(balance, total) out of the wallet and writes
// the debit ledger row in one transaction. The user row is locked so a
// concurrent booking cannot spend the same balance twice.
func (s *BookingService) applyWalletDeduction(booking *models.Booking) (int64, error) {
	var deduction int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", booking.UserID).Error; err != nil {
			return err
		}

		deduction, _ = helpers.SplitWallet(booking.TotalAmount, user.WalletBalance)
		if deduction == 0 {
			return nil
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND wallet_balance >= ?", user.ID, deduction).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", deduction))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("wallet balance changed, please retry")
		}

		walletTx := models.WalletTransaction{
			UserID:      user.ID,
			Type:        models.WalletTxTypeDebit,
			Amount:      deduction,
			Description: fmt.Sprintf("Payment for booking %s", booking.PaymentReference),
			Status:      models.WalletTxStatusCompleted,
			Reference:   booking.PaymentReference,
		}
		if err := tx.Create(&walletTx).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("wallet_deduction", deduction).Error
	})
	if err != nil {
		return 0, err
	}

	booking.WalletDeduction = deduction
	return deduction, nil
}

// RetryPayment re-initializes a gateway session for an unpaid booking using
// its original reference.
func (s *BookingService) RetryPayment(bookingID, userID uuid.UUID) (*BookingResult, error) {
	var booking models.Booking
	if err := s.db.Preload("User").First(&booking, "id = ? AND user_id = ?", bookingID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.PaymentStatus != models.PaymentStatusPending || booking.Status != models.BookingStatusPending {
		return nil, ErrBookingNotPayable
	}

	result := &BookingResult{
		Booking:         &booking,
		WalletDeduction: booking.WalletDeduction,
		AmountPayable:   booking.TotalAmount - booking.WalletDeduction,
	}

	if result.AmountPayable == 0 {
		if _, err := finalizeBookingPayment(s.db, booking.ID); err != nil {
			return result, err
		}
		booking.Status = models.BookingStatusConfirmed
		booking.PaymentStatus = models.PaymentStatusPaid
		return result, nil
	}

	authURL, err := s.gateway.Initialize(booking.User.Email, result.AmountPayable, booking.PaymentReference, paystack.Metadata{
		BookingID: booking.ID.String(),
		UserID:    booking.UserID.String(),
	})
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}
	result.AuthorizationURL = authURL

	return result, nil
}

// CancelBooking cancels a pending or confirmed booking. Whatever the customer
// already paid (wallet deduction, or the full total once paid) is returned to
// the wallet as a credit ledger entry.
func (s *BookingService) CancelBooking(bookingID, userID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ? AND user_id = ?", bookingID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return ErrCannotCancel
		}

		refund := booking.WalletDeduction
		if booking.PaymentStatus == models.PaymentStatusPaid {
			refund = booking.TotalAmount
		}

		updates := map[string]interface{}{"status": models.BookingStatusCancelled}
		if refund > 0 {
			updates["payment_status"] = models.PaymentStatusRefunded
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}

		if refund == 0 {
			return nil
		}

		walletTx := models.WalletTransaction{
			UserID:      booking.UserID,
			Type:        models.WalletTxTypeCredit,
			Amount:      refund,
			Description: fmt.Sprintf("Refund for booking %s", booking.PaymentReference),
			Status:      models.WalletTxStatusCompleted,
			Reference:   booking.PaymentReference + "-REFUND",
		}
		if err := tx.Create(&walletTx).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", booking.UserID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", refund)).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
