package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func discountColumns() []string {
	return []string{"id", "code", "type", "value", "max_discount", "valid_from", "valid_until", "usage_limit", "used_count", "active"}
}

func TestValidateCodeNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "discounts"`).
		WillReturnRows(sqlmock.NewRows(discountColumns()))

	_, err := NewDiscountService(db).ValidateCode("NOPE")
	if !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateCodeWindows(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		validFrom time.Time
		validTo   time.Time
		used      int
		limit     int
		wantErr   error
	}{
		{"valid", now.Add(-time.Hour), now.Add(time.Hour), 0, 10, nil},
		{"not yet active", now.Add(time.Hour), now.Add(48 * time.Hour), 0, 10, ErrDiscountNotActive},
		{"expired", now.Add(-48 * time.Hour), now.Add(-time.Hour), 0, 10, ErrDiscountExpired},
		{"exhausted", now.Add(-time.Hour), now.Add(time.Hour), 10, 10, ErrDiscountExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			rows := sqlmock.NewRows(discountColumns()).
				AddRow(uuid.New().String(), "SAVE10", "percentage", 10, 3000, tt.validFrom, tt.validTo, tt.limit, tt.used, true)
			mock.ExpectQuery(`SELECT (.+) FROM "discounts"`).WillReturnRows(rows)

			discount, err := NewDiscountService(db).ValidateCode("SAVE10")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if discount.Code != "SAVE10" {
					t.Fatalf("discount code = %q", discount.Code)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDiscountRejectionMessagesAreDistinct(t *testing.T) {
	errs := []error{ErrDiscountNotFound, ErrDiscountNotActive, ErrDiscountExpired, ErrDiscountExhausted}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := DiscountRejectionMessage(err)
		if seen[msg] {
			t.Fatalf("duplicate rejection message %q", msg)
		}
		seen[msg] = true
	}
}
