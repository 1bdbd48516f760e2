package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	Base
	Code          string     `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type" gorm:"size:20;not null"`
	DiscountValue float64    `json:"discount_value" gorm:"not null"`
	IsActive      bool       `json:"is_active" gorm:"not null"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	MaxUses       *int       `json:"max_uses"`
	UsedCount     int        `json:"used_count" gorm:"default:0"`
}

// IsUsable reports whether the coupon may be applied at now.
func (c *Coupon) IsUsable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return false
	}
	return true
}

// CouponUse links a coupon to the transaction it discounted.
type CouponUse struct {
	Base
	CouponID      uint `json:"coupon_id" gorm:"index;not null"`
	UserID        uint `json:"user_id" gorm:"index;not null"`
	TransactionID uint `json:"transaction_id" gorm:"index;not null"`
}
