package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is left by the customer after completion. One per request, score 1-10.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  uint      `gorm:"not null;uniqueIndex" json:"request_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	Score int `gorm:"not null" json:"score"` // 1-10

	CreatedAt time.Time `json:"created_at"`
}
