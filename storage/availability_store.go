package storage

import (
	"context"
	"errors"
	"time"

	"hotel-manager-server/models"

	"gorm.io/gorm"
)

// AvailabilityStore is the gorm-backed implementation of
// services.AvailabilityStore. The WHERE clauses pre-filter by the same
// half-open overlap rule the service applies (check_in < span end AND
// check_out > span start) so the database and the predicate agree.
type AvailabilityStore struct {
	db *gorm.DB
}

func NewAvailabilityStore(db *gorm.DB) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

func (s *AvailabilityStore) GetRoomType(ctx context.Context, roomTypeID uint) (*models.RoomType, error) {
	var roomType models.RoomType
	err := s.db.WithContext(ctx).First(&roomType, roomTypeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (s *AvailabilityStore) ListRoomsByType(ctx context.Context, roomTypeID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *AvailabilityStore) ListOccupyingReservations(ctx context.Context, roomIDs []uint, checkIn, checkOut time.Time) ([]models.Reservation, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var reservations []models.Reservation
	err := s.db.WithContext(ctx).
		Where("room_id IN ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomIDs, models.OccupyingStatuses, checkOut, checkIn).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *AvailabilityStore) ListActiveHolds(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, now time.Time) ([]models.TemporaryReservation, error) {
	var holds []models.TemporaryReservation
	err := s.db.WithContext(ctx).
		Where("room_type_id = ? AND status = ? AND expires_at > ? AND check_in < ? AND check_out > ?",
			roomTypeID, models.HoldPending, now, checkOut, checkIn).
		Find(&holds).Error
	if err != nil {
		return nil, err
	}
	return holds, nil
}
