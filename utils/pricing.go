package utils

import (
	"math"
	"time"

	"eduplatform/models"
)

// RoundMoney rounds an amount to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToMinorUnits converts an amount to cents for the payment provider.
func ToMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ApplyCoupon returns the final price and the discount for base. A nil or unusable coupon leaves
// the price unchanged. Fixed discounts never exceed base, and the final price is never negative.
func ApplyCoupon(base float64, coupon *models.Coupon, now time.Time) (final, discount float64) {
	if coupon == nil || !coupon.IsUsable(now) {
		return base, 0
	}

	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = base * coupon.DiscountValue / 100
	case models.DiscountFixed:
		discount = math.Min(coupon.DiscountValue, base)
	}

	discount = RoundMoney(math.Min(math.Max(discount, 0), base))
	final = RoundMoney(math.Max(0, base-discount))
	return final, discount
}

// RevenueSplit divides amount into the instructor's share and the platform fee.
func RevenueSplit(amount, instructorShare float64) (instructor, platform float64) {
	instructor = RoundMoney(amount * instructorShare)
	platform = RoundMoney(amount - instructor)
	return instructor, platform
}
