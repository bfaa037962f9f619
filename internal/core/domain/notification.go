package domain

import "time"

// NotificationLevel is the severity of an in-app notification.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelDanger  NotificationLevel = "danger"
)

// Notification is an in-app message recorded on significant ledger events
// (posting skipped, unusual production loss). No delivery mechanics here.
type Notification struct {
	NotificationID string            `json:"notificationID"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Level          NotificationLevel `json:"level"`
	Read           bool              `json:"read"`
	CreatedAt      time.Time         `json:"createdAt"`
}
