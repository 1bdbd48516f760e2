package models

import "gorm.io/datatypes"

const (
	ActivityLogin          = "login"
	ActivityRegister       = "register"
	ActivityEnroll         = "enroll"
	ActivityRevenueSplit   = "revenue_split"
	ActivityPasswordReset  = "password_reset"
	ActivityPasswordChange = "password_change"
	ActivityProfileUpdate  = "profile_update"
	ActivityUserStatus     = "user_status"
)

// ActivityLog is an append-only audit record.
type ActivityLog struct {
	Base
	UserID     uint           `json:"user_id" gorm:"index"`
	Action     string         `json:"action" gorm:"size:50;index;not null"`
	EntityType string         `json:"entity_type" gorm:"size:50"`
	EntityID   uint           `json:"entity_id"`
	IPAddress  string         `json:"ip_address" gorm:"size:64"`
	UserAgent  string         `json:"user_agent"`
	Metadata   datatypes.JSON `json:"metadata"`
}
