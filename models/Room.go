package models

import (
	"gorm.io/gorm"
)

// Room is a physical unit belonging to exactly one RoomType.
type Room struct {
	gorm.Model
	RoomTypeID uint      `json:"roomTypeID" gorm:"not null;index"`
	Number     string    `json:"number"`
	Floor      int       `json:"floor"`
	Notes      string    `json:"notes"`
	RoomType   *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
