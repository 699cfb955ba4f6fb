package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kelechieze/rentwheels/internal/models"
)

func bookingWindow() (time.Time, time.Time) {
	pickup := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return pickup, pickup.AddDate(0, 0, 3)
}

func TestCreateBookingFullyCoveredByWallet(t *testing.T) {
	carID := uuid.New()
	userID := uuid.New()
	discountID := uuid.New()
	pickup, ret := bookingWindow()

	gateway := &fakeGateway{initURL: "https://checkout.example.com/never"}
	db, mock := newMockDB(t)
	service := NewBookingService(db, gateway)

	mock.ExpectQuery(`SELECT (.+) FROM "cars"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "price_per_day", "status"}).
			AddRow(carID.String(), 15000, models.CarStatusAvailable))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "wallet_balance"}).
			AddRow(userID.String(), "ada@example.com", 50000))
	mock.ExpectQuery(`SELECT (.+) FROM "discounts"`).WillReturnRows(
		sqlmock.NewRows(discountColumns()).
			AddRow(discountID.String(), "SAVE10", models.DiscountTypePercentage, 10, 3000,
				time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 10, 0, true))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(execResult(1))

	// Wallet deduction: locked read, guarded debit, ledger row, booking update.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"(.+)FOR UPDATE`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "wallet_balance"}).AddRow(userID.String(), 50000))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`INSERT INTO "wallet_transactions"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(execResult(1))
	mock.ExpectCommit()

	// Nothing left to pay, so the booking finalizes immediately.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(execResult(1))
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "discount_id", "total_amount", "payment_reference"}).
			AddRow(uuid.New().String(), userID.String(), discountID.String(), 44500, "RWB-1-a"))
	mock.ExpectExec(`INSERT INTO "reward_transactions"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "discounts"`).WillReturnResult(execResult(1))
	mock.ExpectCommit()

	result, err := service.CreateBooking(BookingRequest{
		UserID:         userID,
		CarID:          carID,
		PickupTime:     pickup,
		ReturnTime:     ret,
		PickupLocation: "Lagos",
		ReturnLocation: "Lagos",
		DiscountCode:   "SAVE10",
		UseWallet:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Breakdown.TotalAmount != 44500 {
		t.Errorf("total = %d, want 44500", result.Breakdown.TotalAmount)
	}
	if result.WalletDeduction != 44500 {
		t.Errorf("wallet deduction = %d, want 44500", result.WalletDeduction)
	}
	if result.AmountPayable != 0 {
		t.Errorf("amount payable = %d, want 0", result.AmountPayable)
	}
	if result.AuthorizationURL != "" {
		t.Errorf("authorization url = %q, want empty", result.AuthorizationURL)
	}
	if gateway.initCalls != 0 {
		t.Errorf("gateway called %d times for a fully covered booking", gateway.initCalls)
	}
	if result.Booking.Status != models.BookingStatusConfirmed || result.Booking.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("booking state = %s/%s, want confirmed/paid", result.Booking.Status, result.Booking.PaymentStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRemainderGoesToGateway(t *testing.T) {
	carID := uuid.New()
	userID := uuid.New()
	pickup, ret := bookingWindow()

	gateway := &fakeGateway{initURL: "https://checkout.example.com/pay"}
	db, mock := newMockDB(t)
	service := NewBookingService(db, gateway)

	mock.ExpectQuery(`SELECT (.+) FROM "cars"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "price_per_day", "status"}).
			AddRow(carID.String(), 15000, models.CarStatusAvailable))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "wallet_balance"}).
			AddRow(userID.String(), "ada@example.com", 0))
	mock.ExpectExec(`INSERT INTO "bookings"`).WillReturnResult(execResult(1))

	result, err := service.CreateBooking(BookingRequest{
		UserID:         userID,
		CarID:          carID,
		PickupTime:     pickup,
		ReturnTime:     ret,
		PickupLocation: "Lagos",
		ReturnLocation: "Abuja",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AmountPayable != 47500 {
		t.Errorf("amount payable = %d, want 47500", result.AmountPayable)
	}
	if result.AuthorizationURL != "https://checkout.example.com/pay" {
		t.Errorf("authorization url = %q", result.AuthorizationURL)
	}
	if gateway.lastAmount != 47500 {
		t.Errorf("gateway amount = %d, want 47500", gateway.lastAmount)
	}
	if gateway.lastRef != result.Booking.PaymentReference {
		t.Errorf("gateway reference = %q, want %q", gateway.lastRef, result.Booking.PaymentReference)
	}
	if gateway.lastMeta.BookingID != result.Booking.ID.String() {
		t.Errorf("gateway booking metadata = %q", gateway.lastMeta.BookingID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsUnavailableCar(t *testing.T) {
	carID := uuid.New()
	pickup, ret := bookingWindow()

	db, mock := newMockDB(t)
	service := NewBookingService(db, &fakeGateway{})

	mock.ExpectQuery(`SELECT (.+) FROM "cars"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "price_per_day", "status"}).
			AddRow(carID.String(), 15000, models.CarStatusUnavailable))

	_, err := service.CreateBooking(BookingRequest{
		UserID:     uuid.New(),
		CarID:      carID,
		PickupTime: pickup,
		ReturnTime: ret,
	})
	if !errors.Is(err, ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInvalidDiscountBlocksBooking(t *testing.T) {
	carID := uuid.New()
	userID := uuid.New()
	pickup, ret := bookingWindow()

	db, mock := newMockDB(t)
	service := NewBookingService(db, &fakeGateway{})

	mock.ExpectQuery(`SELECT (.+) FROM "cars"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "price_per_day", "status"}).
			AddRow(carID.String(), 15000, models.CarStatusAvailable))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "wallet_balance"}).
			AddRow(userID.String(), "ada@example.com", 0))
	mock.ExpectQuery(`SELECT (.+) FROM "discounts"`).WillReturnRows(
		sqlmock.NewRows(discountColumns()))

	_, err := service.CreateBooking(BookingRequest{
		UserID:       userID,
		CarID:        carID,
		PickupTime:   pickup,
		ReturnTime:   ret,
		DiscountCode: "NOPE",
	})
	if !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got %v", err)
	}

	// No booking row may be written for a rejected code.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
