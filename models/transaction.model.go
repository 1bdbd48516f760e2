package models

const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
	TransactionRefunded  = "refunded"
)

const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPaypal = "paypal"
	PaymentMethodFree   = "free"
)

// Transaction records a course purchase.
type Transaction struct {
	Base
	UserID          uint    `json:"user_id" gorm:"index;not null"`
	CourseID        uint    `json:"course_id" gorm:"index;not null"`
	Amount          float64 `json:"amount" gorm:"not null"`
	Currency        string  `json:"currency" gorm:"size:3;default:'USD'"`
	Status          string  `json:"status" gorm:"size:20;default:'pending';index"`
	PaymentMethod   string  `json:"payment_method" gorm:"size:20"`
	PaymentIntentID string  `json:"payment_intent_id" gorm:"size:100;index"`
	ChargeID        string  `json:"charge_id" gorm:"size:100"`
	Description     string  `json:"description"`
}
