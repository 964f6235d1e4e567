package models

import (
	"gorm.io/gorm"
)

// ExtraService is an add-on the hotel sells alongside a stay (airport
// pickup, breakfast, late checkout). Managed from the admin dashboard.
type ExtraService struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"isActive" gorm:"default:true"`
}
