package models

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusConfirmed PurchaseStatus = "confirmed"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// ServicePurchase is a customer's booking of a fixed-price offering. The
// provider confirms or cancels a pending booking and completes a confirmed
// one; cancelled and completed are terminal. TotalPrice snapshots the
// offering's price at booking time so later price edits don't move it.
type ServicePurchase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ServiceID  uint      `gorm:"not null;index" json:"service_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	Status     PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalPrice float64        `gorm:"not null" json:"total_price"` // KD

	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Relations
	Service  *ProviderService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Customer *User            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Provider *User            `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}
