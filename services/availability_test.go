package services

import (
	"context"
	"testing"
	"time"

	"hotel-manager-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake AvailabilityStore ---

// fakeStore returns its fixtures unfiltered so the tests exercise the
// service's own overlap/status/expiry filtering. Call counters back the
// short-circuit assertions.
type fakeStore struct {
	roomType     *models.RoomType
	rooms        []models.Room
	reservations []models.Reservation
	holds        []models.TemporaryReservation

	roomTypeCalls    int
	roomCalls        int
	reservationCalls int
	holdCalls        int
}

func (f *fakeStore) GetRoomType(ctx context.Context, roomTypeID uint) (*models.RoomType, error) {
	f.roomTypeCalls++
	if f.roomType == nil || f.roomType.ID != roomTypeID {
		return nil, nil
	}
	return f.roomType, nil
}

func (f *fakeStore) ListRoomsByType(ctx context.Context, roomTypeID uint) ([]models.Room, error) {
	f.roomCalls++
	return f.rooms, nil
}

func (f *fakeStore) ListOccupyingReservations(ctx context.Context, roomIDs []uint, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	f.reservationCalls++
	return f.reservations, nil
}

func (f *fakeStore) ListActiveHolds(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, now time.Time) ([]models.TemporaryReservation, error) {
	f.holdCalls++
	return f.holds, nil
}

// --- Fixtures ---

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func deluxe() *models.RoomType {
	rt := &models.RoomType{
		Name:                  "Deluxe Suite",
		MaxOccupancy:          4,
		StandardOccupancy:     2,
		BasePrice:             100,
		AdditionalGuestCharge: 10,
	}
	rt.ID = 7
	return rt
}

func room(id uint) models.Room {
	r := models.Room{RoomTypeID: 7}
	r.ID = id
	return r
}

func occupying(roomID uint, status string, checkIn, checkOut time.Time) models.Reservation {
	return models.Reservation{RoomID: roomID, Status: status, CheckIn: checkIn, CheckOut: checkOut}
}

func hold(status string, checkIn, checkOut, expiresAt time.Time) models.TemporaryReservation {
	return models.TemporaryReservation{RoomTypeID: 7, Status: status, CheckIn: checkIn, CheckOut: checkOut, ExpiresAt: expiresAt}
}

func checkJuly(t *testing.T, store *fakeStore) AvailabilityResult {
	t.Helper()
	svc := NewAvailabilityService(store, fixedClock)
	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7,
		CheckIn:    "2024-07-01",
		CheckOut:   "2024-07-05",
		Adults:     2,
	})
	require.NoError(t, err)
	return result
}

// --- Overlap predicate ---

func TestOverlapsSymmetric(t *testing.T) {
	spans := [][2]time.Time{
		{date(2024, 7, 1), date(2024, 7, 5)},
		{date(2024, 7, 3), date(2024, 7, 8)},
		{date(2024, 7, 5), date(2024, 7, 9)},
		{date(2024, 7, 2), date(2024, 7, 3)},
	}
	for _, a := range spans {
		for _, b := range spans {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"Overlaps must be symmetric for %v vs %v", a, b)
		}
	}
}

func TestOverlaps(t *testing.T) {
	jul := func(d int) time.Time { return date(2024, 7, d) }

	// Back-to-back stays share a turnover day and do not conflict.
	assert.False(t, Overlaps(jul(1), jul(3), jul(3), jul(5)))
	assert.False(t, Overlaps(jul(3), jul(5), jul(1), jul(3)))

	assert.True(t, Overlaps(jul(1), jul(4), jul(3), jul(5)), "partial overlap")
	assert.True(t, Overlaps(jul(1), jul(9), jul(3), jul(5)), "containment")
	assert.True(t, Overlaps(jul(3), jul(5), jul(3), jul(5)), "identical span")
	assert.False(t, Overlaps(jul(1), jul(2), jul(3), jul(5)), "disjoint")
}

// --- Occupancy aggregation ---

func TestCheckAvailability_AllRoomsFree(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2), room(3)},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available)
	assert.Equal(t, OutcomeAvailable, result.Outcome)
	assert.Equal(t, 3, result.AvailableRooms)
}

func TestCheckAvailability_FullyBooked(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2)},
		reservations: []models.Reservation{
			occupying(1, models.ReservationConfirmed, date(2024, 7, 1), date(2024, 7, 5)),
			occupying(2, models.ReservationCheckedIn, date(2024, 7, 1), date(2024, 7, 5)),
		},
	}

	result := checkJuly(t, store)

	assert.False(t, result.Available)
	assert.Equal(t, OutcomeUnavailable, result.Outcome)
	assert.Equal(t, 0, result.AvailableRooms)
}

func TestCheckAvailability_SameRoomDoubleBookingCountsOnce(t *testing.T) {
	// Two overlapping reservations on the same room are a data anomaly;
	// they must consume one room, not two.
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2)},
		reservations: []models.Reservation{
			occupying(1, models.ReservationConfirmed, date(2024, 7, 1), date(2024, 7, 5)),
			occupying(1, models.ReservationPending, date(2024, 7, 2), date(2024, 7, 4)),
		},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available)
	assert.Equal(t, 1, result.AvailableRooms)
}

func TestCheckAvailability_NonOccupyingStatusesIgnored(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1)},
		reservations: []models.Reservation{
			occupying(1, models.ReservationCancelled, date(2024, 7, 1), date(2024, 7, 5)),
			occupying(1, models.ReservationCheckedOut, date(2024, 7, 1), date(2024, 7, 5)),
		},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available)
	assert.Equal(t, 1, result.AvailableRooms)
}

func TestCheckAvailability_BackToBackStayDoesNotBlock(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1)},
		reservations: []models.Reservation{
			// Checks out the morning the requested stay checks in.
			occupying(1, models.ReservationConfirmed, date(2024, 6, 28), date(2024, 7, 1)),
		},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available)
	assert.Equal(t, 1, result.AvailableRooms)
}

func TestCheckAvailability_ActiveHoldReducesAvailability(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2)},
		holds: []models.TemporaryReservation{
			hold(models.HoldPending, date(2024, 7, 2), date(2024, 7, 4), testNow.Add(10*time.Minute)),
		},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available)
	assert.Equal(t, 1, result.AvailableRooms)
}

func TestCheckAvailability_ExpiredHoldIgnored(t *testing.T) {
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1)},
		holds: []models.TemporaryReservation{
			hold(models.HoldPending, date(2024, 7, 2), date(2024, 7, 4), testNow.Add(-time.Minute)),
			hold(models.HoldClaimed, date(2024, 7, 2), date(2024, 7, 4), testNow.Add(time.Hour)),
		},
	}

	result := checkJuly(t, store)

	assert.True(t, result.Available, "expired and claimed holds must not block")
	assert.Equal(t, 1, result.AvailableRooms)
}

func TestCheckAvailability_ExcludedHoldDoesNotBlockOwnBooking(t *testing.T) {
	// A guest holding the last room of a type converts that hold into a
	// booking; the write-time re-check excludes their own hold so it
	// cannot drive the count to zero against them.
	ownHold := hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(10*time.Minute))
	ownHold.ID = 31
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1)},
		holds:    []models.TemporaryReservation{ownHold},
	}
	svc := NewAvailabilityService(store, fixedClock)

	blocked, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: "2024-07-05", Adults: 2,
	})
	require.NoError(t, err)
	assert.False(t, blocked.Available, "a third party sees the held room as taken")
	assert.Equal(t, 0, blocked.AvailableRooms)

	converting, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: "2024-07-05", Adults: 2,
		ExcludeHoldID: ownHold.ID,
	})
	require.NoError(t, err)
	assert.True(t, converting.Available, "the holder's own hold must not block the conversion")
	assert.Equal(t, 1, converting.AvailableRooms)
}

func TestCheckAvailability_ExclusionOnlySkipsTheMatchingHold(t *testing.T) {
	ownHold := hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(10*time.Minute))
	ownHold.ID = 31
	otherHold := hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(10*time.Minute))
	otherHold.ID = 32
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2)},
		holds:    []models.TemporaryReservation{ownHold, otherHold},
	}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: "2024-07-05", Adults: 2,
		ExcludeHoldID: ownHold.ID,
	})
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 1, result.AvailableRooms, "the other guest's hold still counts")
}

func TestCheckAvailability_HoldsOvershootClampsToZero(t *testing.T) {
	// Holds are uncapped and type-granular: three of them against two
	// rooms drive the raw count negative, which reports as zero.
	store := &fakeStore{
		roomType: deluxe(),
		rooms:    []models.Room{room(1), room(2)},
		holds: []models.TemporaryReservation{
			hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(time.Hour)),
			hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(time.Hour)),
			hold(models.HoldPending, date(2024, 7, 1), date(2024, 7, 5), testNow.Add(time.Hour)),
		},
	}

	result := checkJuly(t, store)

	assert.False(t, result.Available)
	assert.Equal(t, 0, result.AvailableRooms)
}

func TestCheckAvailability_NoRoomsConfigured(t *testing.T) {
	store := &fakeStore{roomType: deluxe()}

	result := checkJuly(t, store)

	assert.False(t, result.Available)
	assert.Equal(t, OutcomeUnavailable, result.Outcome)
	assert.Equal(t, 0, result.AvailableRooms)
}

// --- Validation and short circuits ---

func TestCheckAvailability_IncompleteInput(t *testing.T) {
	store := &fakeStore{roomType: deluxe()}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{RoomTypeID: 7, CheckIn: "2024-07-01"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeIncompleteInput, result.Outcome)
	assert.False(t, result.Available)
	assert.Zero(t, store.roomTypeCalls)
}

func TestCheckAvailability_InvalidDate(t *testing.T) {
	store := &fakeStore{roomType: deluxe()}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "not-a-date", CheckOut: "2024-07-05",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalidDate, result.Outcome)
}

func TestCheckAvailability_InvalidRange(t *testing.T) {
	store := &fakeStore{roomType: deluxe()}
	svc := NewAvailabilityService(store, fixedClock)

	for _, checkOut := range []string{"2024-07-01", "2024-06-28"} {
		result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
			RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: checkOut,
		})
		require.NoError(t, err)
		assert.Equal(t, OutcomeInvalidRange, result.Outcome)
	}
}

func TestCheckAvailability_RoomTypeNotFound(t *testing.T) {
	store := &fakeStore{}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 99, CheckIn: "2024-07-01", CheckOut: "2024-07-05",
	})

	require.NoError(t, err, "missing room type is a result, not an error")
	assert.Equal(t, OutcomeRoomTypeNotFound, result.Outcome)
	assert.Nil(t, result.RoomType)
}

func TestCheckAvailability_CapacityExceededSkipsStorage(t *testing.T) {
	store := &fakeStore{roomType: deluxe(), rooms: []models.Room{room(1)}}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: "2024-07-05", Adults: 3, Children: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCapacityExceeded, result.Outcome)
	assert.False(t, result.Available)
	assert.Equal(t, 0, result.AvailableRooms)
	assert.Equal(t, 1, store.roomTypeCalls)
	assert.Zero(t, store.roomCalls, "capacity check must not read rooms")
	assert.Zero(t, store.reservationCalls, "capacity check must not read reservations")
	assert.Zero(t, store.holdCalls, "capacity check must not read holds")
}

// --- Pricing ---

func TestStayNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two full days", date(2024, 1, 1), date(2024, 1, 3), 2},
		{"one night", date(2024, 1, 1), date(2024, 1, 2), 1},
		{"22 hours rounds up to one", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), 1},
		{"25 hours rounds up to two", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StayNights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestCalculateStayPrice_Surcharge(t *testing.T) {
	quote := CalculateStayPrice(deluxe(), date(2024, 1, 1), date(2024, 1, 3), 3, 1)

	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 200.0, quote.BasePrice)
	// 4 guests, standard occupancy 2 -> 2 extra guests * 10 * 2 nights.
	assert.Equal(t, 40.0, quote.AdditionalCharge)
	assert.Equal(t, 240.0, quote.TotalPrice)
}

func TestCalculateStayPrice_NoSurchargeWithinStandardOccupancy(t *testing.T) {
	quote := CalculateStayPrice(deluxe(), date(2024, 1, 1), date(2024, 1, 3), 2, 0)

	assert.Equal(t, 0.0, quote.AdditionalCharge)
	assert.Equal(t, 200.0, quote.TotalPrice)
}

func TestCalculateStayPrice_StandardOccupancyDefaultsToTwo(t *testing.T) {
	rt := deluxe()
	rt.StandardOccupancy = 0

	quote := CalculateStayPrice(rt, date(2024, 1, 1), date(2024, 1, 2), 3, 0)

	assert.Equal(t, 10.0, quote.AdditionalCharge)
}

func TestCalculateStayPrice_StandardAboveMaxStillFloorsAtZero(t *testing.T) {
	// The standardOccupancy <= maxOccupancy invariant is not enforced on
	// writes; a violating row must not produce a negative surcharge.
	rt := deluxe()
	rt.StandardOccupancy = 6

	quote := CalculateStayPrice(rt, date(2024, 1, 1), date(2024, 1, 2), 2, 0)

	assert.Equal(t, 0.0, quote.AdditionalCharge)
	assert.Equal(t, 100.0, quote.TotalPrice)
}

func TestCheckAvailability_IncludesQuote(t *testing.T) {
	store := &fakeStore{roomType: deluxe(), rooms: []models.Room{room(1)}}
	svc := NewAvailabilityService(store, fixedClock)

	result, err := svc.CheckAvailability(context.Background(), AvailabilityQuery{
		RoomTypeID: 7, CheckIn: "2024-07-01", CheckOut: "2024-07-03", Adults: 3, Children: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Nights)
	assert.Equal(t, 200.0, result.BasePrice)
	assert.Equal(t, 40.0, result.AdditionalGuestCharge)
	assert.Equal(t, 240.0, result.TotalPrice)
	require.NotNil(t, result.RoomType)
	assert.Equal(t, "Deluxe Suite", result.RoomType.Name)
}

// --- Room assignment ---

func TestFirstFreeRoom(t *testing.T) {
	rooms := []models.Room{room(1), room(2)}
	reservations := []models.Reservation{
		occupying(1, models.ReservationConfirmed, date(2024, 7, 1), date(2024, 7, 5)),
	}

	free := FirstFreeRoom(rooms, reservations, date(2024, 7, 2), date(2024, 7, 4))
	require.NotNil(t, free)
	assert.Equal(t, uint(2), free.ID)
}

func TestFirstFreeRoom_AllTaken(t *testing.T) {
	rooms := []models.Room{room(1)}
	reservations := []models.Reservation{
		occupying(1, models.ReservationPending, date(2024, 7, 1), date(2024, 7, 5)),
	}

	assert.Nil(t, FirstFreeRoom(rooms, reservations, date(2024, 7, 2), date(2024, 7, 4)))
}

func TestFirstFreeRoom_CancelledReservationIgnored(t *testing.T) {
	rooms := []models.Room{room(1)}
	reservations := []models.Reservation{
		occupying(1, models.ReservationCancelled, date(2024, 7, 1), date(2024, 7, 5)),
	}

	free := FirstFreeRoom(rooms, reservations, date(2024, 7, 2), date(2024, 7, 4))
	require.NotNil(t, free)
	assert.Equal(t, uint(1), free.ID)
}
