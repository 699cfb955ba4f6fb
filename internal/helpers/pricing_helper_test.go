package helpers

import (
	"testing"
	"time"

	"github.com/kelechieze/rentwheels/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 9, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int64
	}{
		{"exact three days", day(1), day(4), 3},
		{"partial day rounds up", day(1), day(4).Add(2 * time.Hour), 4},
		{"same instant charges one day", day(1), day(1), 1},
		{"return before pickup charges one day", day(4), day(1), 1},
		{"under a day charges one day", day(1), day(1).Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RentalDays(tt.pickup, tt.ret); got != tt.want {
				t.Fatalf("RentalDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculatePriceNoDiscount(t *testing.T) {
	// 15,000/day for 3 days, no driver, 2,500 service fee.
	breakdown := CalculatePrice(15000, day(1), day(4), false, 0, nil)

	if breakdown.CarCost != 45000 {
		t.Errorf("car cost = %d, want 45000", breakdown.CarCost)
	}
	if breakdown.DriverFee != 0 {
		t.Errorf("driver fee = %d, want 0", breakdown.DriverFee)
	}
	if breakdown.TotalAmount != 47500 {
		t.Errorf("total = %d, want 47500", breakdown.TotalAmount)
	}
	if sum := breakdown.CarCost + breakdown.DriverFee + breakdown.ServiceFee - breakdown.DiscountAmount; sum != breakdown.TotalAmount {
		t.Errorf("breakdown does not add up: %d != %d", sum, breakdown.TotalAmount)
	}
}

func TestCalculatePriceCappedPercentageDiscount(t *testing.T) {
	discount := &models.Discount{
		Type:        models.DiscountTypePercentage,
		Value:       10,
		MaxDiscount: 3000,
	}

	// Subtotal 47,500; 10% would be 4,750 but the cap wins.
	breakdown := CalculatePrice(15000, day(1), day(4), false, 0, discount)

	if breakdown.DiscountAmount != 3000 {
		t.Errorf("discount = %d, want 3000", breakdown.DiscountAmount)
	}
	if breakdown.TotalAmount != 44500 {
		t.Errorf("total = %d, want 44500", breakdown.TotalAmount)
	}
}

func TestCalculatePriceWithDriver(t *testing.T) {
	// Driver billed hourly for 24h per rental day: 100 * 24 * 2 = 4,800.
	breakdown := CalculatePrice(10000, day(1), day(3), true, 100, nil)

	if breakdown.DriverFee != 4800 {
		t.Errorf("driver fee = %d, want 4800", breakdown.DriverFee)
	}
	if breakdown.TotalAmount != 20000+4800+2500 {
		t.Errorf("total = %d, want %d", breakdown.TotalAmount, 20000+4800+2500)
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		discount *models.Discount
		subtotal int64
		want     int64
	}{
		{"nil discount", nil, 47500, 0},
		{"percentage under cap", &models.Discount{Type: models.DiscountTypePercentage, Value: 10, MaxDiscount: 10000}, 47500, 4750},
		{"percentage hits cap", &models.Discount{Type: models.DiscountTypePercentage, Value: 10, MaxDiscount: 3000}, 47500, 3000},
		{"percentage without cap", &models.Discount{Type: models.DiscountTypePercentage, Value: 10}, 47500, 4750},
		{"fixed under subtotal", &models.Discount{Type: models.DiscountTypeFixed, Value: 5000}, 47500, 5000},
		{"fixed clamped to subtotal", &models.Discount{Type: models.DiscountTypeFixed, Value: 99999}, 47500, 47500},
		{"unknown type", &models.Discount{Type: "mystery", Value: 5000}, 47500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountAmount(tt.discount, tt.subtotal)
			if got != tt.want {
				t.Fatalf("DiscountAmount() = %d, want %d", got, tt.want)
			}
			if got > tt.subtotal {
				t.Fatalf("discount %d exceeds subtotal %d", got, tt.subtotal)
			}
		})
	}
}

func TestSplitWallet(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		balance       int64
		wantDeduction int64
		wantPayable   int64
	}{
		{"partial cover", 44500, 20000, 20000, 24500},
		{"full cover", 44500, 50000, 44500, 0},
		{"empty wallet", 44500, 0, 0, 44500},
		{"exact cover", 44500, 44500, 44500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deduction, payable := SplitWallet(tt.total, tt.balance)
			if deduction != tt.wantDeduction || payable != tt.wantPayable {
				t.Fatalf("SplitWallet() = (%d, %d), want (%d, %d)", deduction, payable, tt.wantDeduction, tt.wantPayable)
			}
			if deduction+payable != tt.total {
				t.Fatalf("deduction + payable = %d, want %d", deduction+payable, tt.total)
			}
		})
	}
}
