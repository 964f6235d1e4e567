package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Pending, confirmed and checked_in consume room
// inventory; checked_out and cancelled never block availability.
const (
	ReservationPending    = "pending"
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
)

// OccupyingStatuses are the reservation states that make a room unavailable.
var OccupyingStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCheckedIn}

// IsOccupying reports whether a reservation in the given status consumes
// room inventory.
func IsOccupying(status string) bool {
	for _, s := range OccupyingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Reservation books a specific Room for a half-open [CheckIn, CheckOut)
// span; checkout day is exclusive so same-day turnover is allowed.
type Reservation struct {
	gorm.Model
	RoomID     uint      `json:"roomID" gorm:"not null;index"`
	GuestID    *uint     `json:"guestID"` // nil for walk-in bookings
	GuestName  string    `json:"guestName"`
	GuestEmail string    `json:"guestEmail"`
	CheckIn    time.Time `json:"checkIn" gorm:"not null;index"`
	CheckOut   time.Time `json:"checkOut" gorm:"not null;index"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Note       string    `json:"note"`

	Room  *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Guest *User `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
