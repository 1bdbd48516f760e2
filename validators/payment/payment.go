package paymentValidator

import (
	"strings"
	"time"

	"eduplatform/models"
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

type CheckoutRequest struct {
	CourseID   uint   `json:"course_id" validate:"required"`
	CouponCode string `json:"coupon_code" validate:"max=50"`
}

func (r *CheckoutRequest) Normalize() {
	r.CouponCode = strings.ToUpper(strings.TrimSpace(r.CouponCode))
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required,max=100"`
}

type CouponCheckRequest struct {
	CourseID   uint   `json:"course_id" validate:"required"`
	CouponCode string `json:"coupon_code" validate:"required,max=50"`
}

func (r *CouponCheckRequest) Normalize() {
	r.CouponCode = strings.ToUpper(strings.TrimSpace(r.CouponCode))
}

type CreateCouponRequest struct {
	Code          string     `json:"code" validate:"required,min=3,max=50"`
	Description   string     `json:"description" validate:"max=500"`
	DiscountType  string     `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue float64    `json:"discount_value" validate:"required,gt=0"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	MaxUses       *int       `json:"max_uses" validate:"omitempty,min=1"`
}

func (r *CreateCouponRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

// Check rejects percentage discounts above 100 and inverted validity windows.
func (r *CreateCouponRequest) Check() map[string]string {
	fields := map[string]string{}
	if r.DiscountType == models.DiscountPercentage && r.DiscountValue > 100 {
		fields["discount_value"] = "must be at most 100 for percentage coupons"
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidUntil.Before(*r.ValidFrom) {
		fields["valid_until"] = "must be after valid_from"
	}
	return fields
}

type EarningsQuery struct {
	InstructorID uint `query:"instructor_id"`
}

func Checkout() fiber.Handler {
	return validators.Body[CheckoutRequest]()
}

func Confirm() fiber.Handler {
	return validators.Body[ConfirmRequest]()
}

func ValidateCoupon() fiber.Handler {
	return validators.Body[CouponCheckRequest]()
}

func CreateCoupon() fiber.Handler {
	return validators.Body[CreateCouponRequest]()
}

func Earnings() fiber.Handler {
	return validators.Query[EarningsQuery]()
}
