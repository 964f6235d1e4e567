package services

import (
	"time"

	"hotel-manager-server/models"
)

// FirstFreeRoom picks the first room (in the order given) with no
// occupying reservation overlapping the requested span, or nil when every
// room conflicts. Booking creation uses this to bind a room-type request
// to a concrete room; it shares the Overlaps predicate with the
// availability query so the two can never disagree on what conflicts.
func FirstFreeRoom(rooms []models.Room, reservations []models.Reservation, checkIn, checkOut time.Time) *models.Room {
	occupied := make(map[uint]struct{})
	for _, reservation := range reservations {
		if !models.IsOccupying(reservation.Status) {
			continue
		}
		if !Overlaps(reservation.CheckIn, reservation.CheckOut, checkIn, checkOut) {
			continue
		}
		occupied[reservation.RoomID] = struct{}{}
	}

	for i := range rooms {
		if _, taken := occupied[rooms[i].ID]; !taken {
			return &rooms[i]
		}
	}
	return nil
}
