package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kelechieze/rentwheels/internal/paystack"
)

func TestVerifyPaymentWalletFundingAppliedOnce(t *testing.T) {
	userID := uuid.New()
	gateway := &fakeGateway{verifyTx: &paystack.Transaction{
		Reference: "RWF-1756400000-abcd1234",
		Status:    paystack.TransactionSuccess,
		Amount:    20000,
		Metadata:  paystack.Metadata{Type: paystack.MetadataTypeWalletFunding, UserID: userID.String()},
	}}

	db, mock := newMockDB(t)
	service := NewPaymentService(db, gateway)

	// First delivery wins the pending→completed flip and credits the balance.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_transactions"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(execResult(1))
	mock.ExpectCommit()

	result, err := service.VerifyPayment("RWF-1756400000-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Applied {
		t.Fatal("first verification should apply the credit")
	}
	if result.Amount != 20000 {
		t.Errorf("amount = %d, want 20000", result.Amount)
	}

	// Re-delivery finds no pending entry and must not touch the balance.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_transactions"`).WillReturnResult(execResult(0))
	mock.ExpectCommit()

	result, err = service.VerifyPayment("RWF-1756400000-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if result.Applied {
		t.Fatal("replayed verification must be a no-op")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyPaymentFailedTransactionTouchesNothing(t *testing.T) {
	gateway := &fakeGateway{verifyTx: &paystack.Transaction{
		Reference: "RWB-1-a",
		Status:    paystack.TransactionFailed,
		Amount:    44500,
		Metadata:  paystack.Metadata{BookingID: uuid.New().String()},
	}}

	db, mock := newMockDB(t)

	result, err := NewPaymentService(db, gateway).VerifyPayment("RWB-1-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Applied {
		t.Fatal("failed transaction must not be applied")
	}
	if result.Status != paystack.TransactionFailed {
		t.Errorf("status = %q", result.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("failed transaction issued queries: %v", err)
	}
}

func TestVerifyPaymentBookingFinalizedOnce(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()
	discountID := uuid.New()

	gateway := &fakeGateway{verifyTx: &paystack.Transaction{
		Reference: "RWB-1756400000-abcd1234",
		Status:    paystack.TransactionSuccess,
		Amount:    44500,
		Metadata:  paystack.Metadata{BookingID: bookingID.String(), UserID: userID.String()},
	}}

	db, mock := newMockDB(t)
	service := NewPaymentService(db, gateway)

	// First delivery: the pending→paid flip gates points and discount usage.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(execResult(1))
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "discount_id", "total_amount", "payment_reference"}).
			AddRow(bookingID.String(), userID.String(), discountID.String(), 44500, "RWB-1756400000-abcd1234"))
	mock.ExpectExec(`INSERT INTO "reward_transactions"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(execResult(1))
	mock.ExpectExec(`UPDATE "discounts"`).WillReturnResult(execResult(1))
	mock.ExpectCommit()

	result, err := service.VerifyPayment("RWB-1756400000-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Applied {
		t.Fatal("first verification should finalize the booking")
	}
	if result.BookingID == nil || *result.BookingID != bookingID {
		t.Fatalf("booking ID = %v, want %s", result.BookingID, bookingID)
	}

	// Replay: flip finds no pending row, so no points and no usage bump.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings"`).WillReturnResult(execResult(0))
	mock.ExpectCommit()

	result, err = service.VerifyPayment("RWB-1756400000-abcd1234")
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if result.Applied {
		t.Fatal("replayed callback must not finalize twice")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFundWalletRecordsPendingEntry(t *testing.T) {
	userID := uuid.New()
	gateway := &fakeGateway{initURL: "https://checkout.example.com/fund"}

	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "wallet_balance"}).
			AddRow(userID.String(), "ada@example.com", 0))
	mock.ExpectExec(`INSERT INTO "wallet_transactions"`).WillReturnResult(execResult(1))

	authURL, reference, err := NewPaymentService(db, gateway).FundWallet(userID, 20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authURL != "https://checkout.example.com/fund" {
		t.Errorf("authorization url = %q", authURL)
	}
	if reference == "" {
		t.Error("expected a payment reference")
	}
	if gateway.lastAmount != 20000 {
		t.Errorf("gateway amount = %d, want 20000", gateway.lastAmount)
	}
	if gateway.lastMeta.Type != paystack.MetadataTypeWalletFunding || gateway.lastMeta.UserID != userID.String() {
		t.Errorf("gateway metadata = %+v", gateway.lastMeta)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
