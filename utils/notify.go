package utils

import (
	"encoding/json"

	"eduplatform/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notify stores a notification for userID inside tx.
func Notify(tx *gorm.DB, userID uint, kind, title, message string, data map[string]interface{}) error {
	n := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
		Data:    toJSON(data),
	}
	return tx.Create(&n).Error
}

// RecordActivity appends an audit entry inside tx.
func RecordActivity(tx *gorm.DB, entry models.ActivityLog, metadata map[string]interface{}) error {
	entry.Metadata = toJSON(metadata)
	return tx.Create(&entry).Error
}

func toJSON(v map[string]interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
