package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// User is one account with a fixed role. Customers create service requests,
// providers bid on them. Provider-only fields stay empty for customers.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	ContactInfo string `gorm:"type:varchar(120)" json:"contact_info"`
	Region      string `gorm:"type:varchar(80);index" json:"region"`
	Address     string `gorm:"type:text" json:"address,omitempty"`

	// Provider fields
	SpecializationID     *uint          `gorm:"index" json:"specialization_id,omitempty"`
	VerificationVideoURL string         `gorm:"type:text" json:"verification_video_url,omitempty"`
	Portfolio            datatypes.JSON `json:"portfolio,omitempty"` // { images: [...], description: "..." }

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
