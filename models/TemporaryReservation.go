package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	HoldPending  = "pending"
	HoldClaimed  = "claimed" // superseded by a created Reservation
	HoldReleased = "released"
)

// TemporaryReservation is a soft hold placed while a guest is mid-checkout
// or awaiting payment. Holds are room-type granular: they are never bound
// to a specific room. A hold reduces availability only while its status is
// pending and ExpiresAt is in the future; expiry is time-based, nothing
// transitions an expired hold.
type TemporaryReservation struct {
	gorm.Model
	RoomTypeID uint      `json:"roomTypeID" gorm:"not null;index"`
	CheckIn    time.Time `json:"checkIn" gorm:"not null"`
	CheckOut   time.Time `json:"checkOut" gorm:"not null"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null;index"`
	SessionKey string    `json:"sessionKey" gorm:"index"` // lets a checkout flow find its own hold

	RoomType *RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
