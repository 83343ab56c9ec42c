package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusAssigned  RequestStatus = "assigned"
	RequestStatusCompleted RequestStatus = "completed"
)

// ServiceRequest is the unit of the lifecycle: open -> assigned -> completed,
// never backward. AssignedProviderID and AcceptedBidID are both set exactly
// when status is not open.
type ServiceRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	CategoryID  uint   `gorm:"not null;index" json:"category_id"`
	Region      string `gorm:"type:varchar(80);not null;index" json:"region"`

	SuggestedBudget *float64 `json:"suggested_budget,omitempty"` // KD

	BeforeImageURL string `gorm:"type:text" json:"before_image_url,omitempty"`
	AfterImageURL  string `gorm:"type:text" json:"after_image_url,omitempty"`

	Status             RequestStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	AssignedProviderID *uuid.UUID    `gorm:"type:uuid;index" json:"assigned_provider_id,omitempty"`
	AcceptedBidID      *uint         `gorm:"index" json:"accepted_bid_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Relations
	Customer *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
