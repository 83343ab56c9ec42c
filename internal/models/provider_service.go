package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderService is a fixed-price offering a provider sells directly,
// alongside bidding on open requests. Each provider may keep at most two
// active offerings at a time.
type ProviderService struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"provider_id"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"not null" json:"price"` // KD
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
	ImageURL    string  `gorm:"type:text" json:"image_url,omitempty"`
	WarrantyID  *uint   `gorm:"index" json:"warranty_id,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Provider *User           `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Category *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Warranty *WarrantyOption `gorm:"foreignKey:WarrantyID" json:"warranty,omitempty"`
}
