package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is a bookable category ("Deluxe Suite") with shared pricing and
// capacity. Physical rooms hang off it one-to-many.
type RoomType struct {
	gorm.Model
	Name                  string         `json:"name"`
	Description           string         `json:"description"`
	MaxOccupancy          int            `json:"maxOccupancy"`
	StandardOccupancy     int            `json:"standardOccupancy" gorm:"default:2"` // guests included in the base price
	BasePrice             float64        `json:"basePrice"`
	AdditionalGuestCharge float64        `json:"additionalGuestCharge"` // per extra guest per night
	Images                datatypes.JSON `json:"images" gorm:"type:jsonb"`
	Amenities             datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	IsActive              *bool          `json:"isActive" gorm:"default:true"`
	Rooms                 []Room         `json:"rooms,omitempty"`
}
