package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationAlert   NotificationType = "alert"
)

// Notification is appended by the system on lifecycle events and shown in the
// recipient's feed. Also pushed over the websocket hub when they're connected.
type Notification struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Message          string           `gorm:"type:text;not null" json:"message"`
	Type             NotificationType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	RelatedRequestID *uint            `gorm:"index" json:"related_request_id,omitempty"`

	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
