package models

type WarrantyType string

const (
	WarrantyDays      WarrantyType = "days_warranty"
	WarrantyMoneyBack WarrantyType = "money_back"
	WarrantyLifetime  WarrantyType = "lifetime"
	WarrantyNone      WarrantyType = "no_warranty"
)

// WarrantyOption is reference data a provider attaches to a fixed-price
// offering. Seeded at boot like categories.
type WarrantyOption struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Label       string       `gorm:"type:varchar(120);not null" json:"label"`
	Type        WarrantyType `gorm:"type:varchar(30);not null" json:"type"`
	Days        *int         `json:"days,omitempty"` // nil unless Type is days_warranty
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Icon        string       `gorm:"type:varchar(60)" json:"icon,omitempty"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`
}
