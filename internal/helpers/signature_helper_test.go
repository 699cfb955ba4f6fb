package helpers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestVoucherRoundTrip(t *testing.T) {
	bookingID := uuid.New()
	carID := uuid.New()
	reference := "RWB-1756400000-abcd1234"
	secret := "test-secret"

	data := BuildVoucherData(bookingID, carID, reference, secret)

	extracted, err := ExtractBookingIDFromVoucher(data)
	if err != nil {
		t.Fatalf("unexpected error extracting booking ID: %v", err)
	}
	if extracted != bookingID {
		t.Fatalf("extracted %s, want %s", extracted, bookingID)
	}

	if !ValidateVoucherSignature(bookingID, carID, reference, secret, data) {
		t.Fatal("valid voucher rejected")
	}
}

func TestVoucherTamperedSignatureRejected(t *testing.T) {
	bookingID := uuid.New()
	carID := uuid.New()
	secret := "test-secret"

	data := BuildVoucherData(bookingID, carID, "RWB-1-a", secret)
	tampered := strings.Replace(data, "signature:", "signature:ff", 1)

	if ValidateVoucherSignature(bookingID, carID, "RWB-1-a", secret, tampered) {
		t.Fatal("tampered voucher accepted")
	}
}

func TestVoucherWrongSecretRejected(t *testing.T) {
	bookingID := uuid.New()
	carID := uuid.New()

	data := BuildVoucherData(bookingID, carID, "RWB-1-a", "secret-a")

	if ValidateVoucherSignature(bookingID, carID, "RWB-1-a", "secret-b", data) {
		t.Fatal("voucher signed with another secret accepted")
	}
}

func TestExtractBookingIDFromVoucherRejectsGarbage(t *testing.T) {
	if _, err := ExtractBookingIDFromVoucher("not-a-voucher"); err == nil {
		t.Fatal("expected error for malformed voucher")
	}
	if _, err := ExtractBookingIDFromVoucher("booking:nope;car:x;ref:y;signature:z"); err == nil {
		t.Fatal("expected error for invalid booking ID")
	}
}
