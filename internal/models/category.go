package models

// Category is static reference data seeded at boot and read-only at runtime.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(120);not null;uniqueIndex" json:"name"`
	Icon string `gorm:"type:varchar(60)" json:"icon"` // icon key rendered by the frontend
}
