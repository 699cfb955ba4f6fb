package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Pickup vouchers are QR payloads of the form
// booking:<id>;car:<id>;ref:<reference>;signature:<hmac>
// signed with the server secret so vendors can trust scanned codes.

func VoucherSignature(bookingID, carID uuid.UUID, reference, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", bookingID.String(), carID.String(), reference)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func BuildVoucherData(bookingID, carID uuid.UUID, reference, secretKey string) string {
	return fmt.Sprintf("booking:%s;car:%s;ref:%s;signature:%s",
		bookingID.String(),
		carID.String(),
		reference,
		VoucherSignature(bookingID, carID, reference, secretKey),
	)
}

func ExtractBookingIDFromVoucher(voucherData string) (uuid.UUID, error) {
	parts := strings.Split(voucherData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "booking:") || !strings.HasPrefix(parts[3], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid voucher format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "booking:"))
}

func ValidateVoucherSignature(bookingID, carID uuid.UUID, reference, secretKey, voucherData string) bool {
	parts := strings.Split(voucherData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}

	signature := strings.TrimPrefix(parts[3], "signature:")
	expected := VoucherSignature(bookingID, carID, reference, secretKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}
