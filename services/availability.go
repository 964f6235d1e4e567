package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotel-manager-server/models"
)

// AvailabilityStore is the read-only storage surface the availability
// query depends on. The gorm implementation lives in storage; tests plug
// in an in-memory fake. Implementations may pre-filter by overlap and
// expiry, but the service re-applies both so a coarser store stays
// correct.
type AvailabilityStore interface {
	// GetRoomType returns (nil, nil) when the room type does not exist.
	GetRoomType(ctx context.Context, roomTypeID uint) (*models.RoomType, error)
	ListRoomsByType(ctx context.Context, roomTypeID uint) ([]models.Room, error)
	ListOccupyingReservations(ctx context.Context, roomIDs []uint, checkIn, checkOut time.Time) ([]models.Reservation, error)
	ListActiveHolds(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, now time.Time) ([]models.TemporaryReservation, error)
}

// Availability query outcomes. "Unavailable" and its siblings are normal
// business results, not errors; only storage faults surface as errors.
const (
	OutcomeAvailable        = "available"
	OutcomeUnavailable      = "unavailable"
	OutcomeIncompleteInput  = "incomplete_input"
	OutcomeInvalidDate      = "invalid_date"
	OutcomeInvalidRange     = "invalid_range"
	OutcomeRoomTypeNotFound = "room_type_not_found"
	OutcomeCapacityExceeded = "capacity_exceeded"
)

// AvailabilityQuery carries the raw request. Dates arrive as strings so
// the query owns parsing and can report invalid input as an outcome.
// ExcludeHoldID is set server-side when a booking converts a hold: the
// guest's own hold must not count against them during the write-time
// re-check, so it is left out of the occupancy count.
type AvailabilityQuery struct {
	RoomTypeID    uint   `json:"roomTypeID"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children"`
	ExcludeHoldID uint   `json:"-"`
}

// AvailabilityResult has the same fields populated on every path; callers
// render it without caring which short-circuit produced it. Fields that a
// path cannot compute stay zero/false/nil rather than being omitted.
type AvailabilityResult struct {
	Available             bool             `json:"available"`
	Outcome               string           `json:"outcome"`
	RoomType              *models.RoomType `json:"roomType"`
	TotalPrice            float64          `json:"totalPrice"`
	BasePrice             float64          `json:"basePrice"`
	AdditionalGuestCharge float64          `json:"additionalGuestCharge"`
	Nights                int              `json:"nights"`
	AvailableRooms        int              `json:"availableRooms"`
	Message               string           `json:"message"`
}

// AvailabilityService answers "as of now, how many rooms of this type are
// free for this span, and at what price". It is a sequential read-only
// computation; it takes no locks and provides no atomic reservation.
// Booking creation must re-run the same check at write time instead of
// trusting an earlier answer.
type AvailabilityService struct {
	store AvailabilityStore
	now   func() time.Time
}

// NewAvailabilityService builds the service. now is the clock used for
// hold expiry; pass nil for time.Now.
func NewAvailabilityService(store AvailabilityStore, now func() time.Time) *AvailabilityService {
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{store: store, now: now}
}

// Overlaps reports whether two half-open [start, end) spans intersect.
// Boundary contact is not a conflict: one stay's checkout and another's
// check-in may fall on the same date (same-day turnover).
func Overlaps(eStart, eEnd, nStart, nEnd time.Time) bool {
	return eStart.Before(nEnd) && eEnd.After(nStart)
}

var stayDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseStayDate accepts the wire formats the booking clients send: a bare
// calendar date or a full RFC 3339 timestamp.
func ParseStayDate(value string) (time.Time, error) {
	var err error
	for _, layout := range stayDateLayouts {
		var t time.Time
		t, err = time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// StayNights counts billable nights for a span, rounding partial days up
// so a 25-hour stay is billed as two nights and any positive span as at
// least one.
func StayNights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// StayQuote is the price breakdown for one room over one span.
type StayQuote struct {
	Nights           int     `json:"nights"`
	BasePrice        float64 `json:"basePrice"`
	AdditionalCharge float64 `json:"additionalCharge"`
	TotalPrice       float64 `json:"totalPrice"`
}

// CalculateStayPrice prices a stay: nightly base price plus a per-night
// surcharge for each guest beyond the room type's standard occupancy.
// Children count as guests like adults. A standard occupancy of zero
// means the field was never set and falls back to 2.
func CalculateStayPrice(roomType *models.RoomType, checkIn, checkOut time.Time, adults, children int) StayQuote {
	nights := StayNights(checkIn, checkOut)

	standard := roomType.StandardOccupancy
	if standard <= 0 {
		standard = 2
	}

	base := roomType.BasePrice * float64(nights)

	additionalGuests := adults + children - standard
	if additionalGuests < 0 {
		additionalGuests = 0
	}
	additional := float64(additionalGuests) * roomType.AdditionalGuestCharge * float64(nights)

	return StayQuote{
		Nights:           nights,
		BasePrice:        base,
		AdditionalCharge: additional,
		TotalPrice:       base + additional,
	}
}

// CheckAvailability runs the full availability query: validation, room
// type lookup, occupancy aggregation and pricing, in that order, each
// step short-circuiting into a result. The returned error is non-nil only
// for storage faults.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, q AvailabilityQuery) (AvailabilityResult, error) {
	if q.RoomTypeID == 0 || q.CheckIn == "" || q.CheckOut == "" {
		return AvailabilityResult{
			Outcome: OutcomeIncompleteInput,
			Message: "Room type, check-in date and check-out date are required",
		}, nil
	}

	checkIn, inErr := ParseStayDate(q.CheckIn)
	checkOut, outErr := ParseStayDate(q.CheckOut)
	if inErr != nil || outErr != nil {
		return AvailabilityResult{
			Outcome: OutcomeInvalidDate,
			Message: "Invalid check-in or check-out date",
		}, nil
	}

	if !checkOut.After(checkIn) {
		return AvailabilityResult{
			Outcome: OutcomeInvalidRange,
			Message: "Check-out date must be after check-in date",
		}, nil
	}

	roomType, err := s.store.GetRoomType(ctx, q.RoomTypeID)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("looking up room type %d: %w", q.RoomTypeID, err)
	}
	if roomType == nil {
		return AvailabilityResult{
			Outcome: OutcomeRoomTypeNotFound,
			Message: "Room type not found",
		}, nil
	}

	totalGuests := q.Adults + q.Children
	if totalGuests > roomType.MaxOccupancy {
		// Short-circuit before any room or reservation lookup.
		return AvailabilityResult{
			Outcome:  OutcomeCapacityExceeded,
			RoomType: roomType,
			Message:  fmt.Sprintf("Party of %d exceeds the maximum occupancy of %d", totalGuests, roomType.MaxOccupancy),
		}, nil
	}

	availableRooms, available, err := s.countAvailableRooms(ctx, roomType.ID, checkIn, checkOut, q.ExcludeHoldID)
	if err != nil {
		return AvailabilityResult{}, err
	}

	quote := CalculateStayPrice(roomType, checkIn, checkOut, q.Adults, q.Children)

	result := AvailabilityResult{
		Available:             available,
		Outcome:               OutcomeAvailable,
		RoomType:              roomType,
		TotalPrice:            quote.TotalPrice,
		BasePrice:             quote.BasePrice,
		AdditionalGuestCharge: quote.AdditionalCharge,
		Nights:                quote.Nights,
		AvailableRooms:        availableRooms,
		Message:               fmt.Sprintf("%d room(s) available", availableRooms),
	}
	if !available {
		result.Outcome = OutcomeUnavailable
		result.Message = "No rooms available for the selected dates"
	}
	return result, nil
}

// countAvailableRooms is the occupancy aggregation: reservations occupy
// distinct physical rooms (two overlapping bookings on the same room count
// once), while holds are room-type granular and each active one removes a
// unit of capacity without being deduplicated. availableRooms is clamped
// at zero since uncapped holds can push the raw count negative.
func (s *AvailabilityService) countAvailableRooms(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeHoldID uint) (int, bool, error) {
	rooms, err := s.store.ListRoomsByType(ctx, roomTypeID)
	if err != nil {
		return 0, false, fmt.Errorf("listing rooms for type %d: %w", roomTypeID, err)
	}
	if len(rooms) == 0 {
		return 0, false, nil
	}

	roomIDs := make([]uint, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	reservations, err := s.store.ListOccupyingReservations(ctx, roomIDs, checkIn, checkOut)
	if err != nil {
		return 0, false, fmt.Errorf("listing reservations for type %d: %w", roomTypeID, err)
	}

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

	now := s.now()
	holds, err := s.store.ListActiveHolds(ctx, roomTypeID, checkIn, checkOut, now)
	if err != nil {
		return 0, false, fmt.Errorf("listing holds for type %d: %w", roomTypeID, err)
	}

	activeHolds := 0
	for _, hold := range holds {
		if excludeHoldID != 0 && hold.ID == excludeHoldID {
			continue
		}
		if hold.Status != models.HoldPending || !hold.ExpiresAt.After(now) {
			continue
		}
		if !Overlaps(hold.CheckIn, hold.CheckOut, checkIn, checkOut) {
			continue
		}
		activeHolds++
	}

	totalOccupied := len(occupied) + activeHolds
	availableRooms := len(rooms) - totalOccupied
	if availableRooms < 0 {
		availableRooms = 0
	}
	return availableRooms, len(rooms) > totalOccupied, nil
}
