package helpers

import (
	"time"

	"github.com/kelechieze/rentwheels/internal/models"
)

// ServiceFee is the flat platform fee added to every booking, in naira.
const ServiceFee int64 = 2500

type PriceBreakdown struct {
	Days           int64 `json:"days"`
	CarCost        int64 `json:"car_cost"`
	DriverFee      int64 `json:"driver_fee"`
	ServiceFee     int64 `json:"service_fee"`
	DiscountAmount int64 `json:"discount_amount"`
	TotalAmount    int64 `json:"total_amount"`
}

// RentalDays counts chargeable days between pickup and return. Partial days
// round up, and anything non-positive charges a single day.
func RentalDays(pickup, returnTime time.Time) int64 {
	diff := returnTime.Sub(pickup)
	if diff <= 0 {
		return 1
	}
	days := int64(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// DiscountAmount computes how much a discount takes off a subtotal. The
// result never exceeds the subtotal, so totals cannot go negative.
func DiscountAmount(discount *models.Discount, subtotal int64) int64 {
	if discount == nil {
		return 0
	}

	var amount int64
	switch discount.Type {
	case models.DiscountTypePercentage:
		amount = subtotal * discount.Value / 100
		if discount.MaxDiscount > 0 && amount > discount.MaxDiscount {
			amount = discount.MaxDiscount
		}
	case models.DiscountTypeFixed:
		amount = discount.Value
	default:
		return 0
	}

	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// CalculatePrice derives the full booking breakdown. A requested driver is
// billed at the hourly rate for 24 hours of each rental day.
func CalculatePrice(carRate int64, pickup, returnTime time.Time, withDriver bool, driverHourlyRate int64, discount *models.Discount) PriceBreakdown {
	days := RentalDays(pickup, returnTime)

	carCost := carRate * days
	var driverFee int64
	if withDriver {
		driverFee = driverHourlyRate * 24 * days
	}

	subtotal := carCost + driverFee + ServiceFee
	discountAmount := DiscountAmount(discount, subtotal)

	return PriceBreakdown{
		Days:           days,
		CarCost:        carCost,
		DriverFee:      driverFee,
		ServiceFee:     ServiceFee,
		DiscountAmount: discountAmount,
		TotalAmount:    subtotal - discountAmount,
	}
}

// SplitWallet decides how much of a total the wallet covers and how much is
// left for the gateway.
func SplitWallet(total, walletBalance int64) (deduction, payable int64) {
	if walletBalance <= 0 || total <= 0 {
		return 0, total
	}
	deduction = walletBalance
	if deduction > total {
		deduction = total
	}
	return deduction, total - deduction
}
