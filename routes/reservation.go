package routes

import (
	"strconv"

	"hotel-manager-server/models"
	"hotel-manager-server/services"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateReservationInput struct {
	RoomTypeID uint   `json:"roomTypeID" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	Adults     int    `json:"adults" validate:"min=0"`
	Children   int    `json:"children" validate:"min=0"`
	GuestID    *uint  `json:"guestID"`
	GuestName  string `json:"guestName" validate:"max=256"`
	GuestEmail string `json:"guestEmail" validate:"omitempty,email"`
	HoldID     uint   `json:"holdID"`
	SessionKey string `json:"sessionKey" validate:"max=128"`
	Note       string `json:"note"`
}

// resolveHold finds the pending hold this booking converts, by explicit
// ID or by the checkout session key. Returns 0 when the guest holds
// nothing.
func resolveHold(input CreateReservationInput) uint {
	if input.HoldID != 0 {
		return input.HoldID
	}
	if input.SessionKey == "" {
		return 0
	}
	var hold models.TemporaryReservation
	err := storage.DB.
		Where("session_key = ? AND status = ? AND room_type_id = ?", input.SessionKey, models.HoldPending, input.RoomTypeID).
		Order("created_at DESC").
		First(&hold).Error
	if err != nil {
		return 0
	}
	return hold.ID
}

// CreateReservation books a room of the requested type. The availability
// check runs again here, at write time: an earlier "available" answer may
// have gone stale, and this check-then-insert is deliberately optimistic
// with no lock between the two steps.
func CreateReservation(svc *services.AvailabilityService) iris.Handler {
	return func(ctx iris.Context) {
		var input CreateReservationInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		// The guest's own hold is the inventory this booking converts; it
		// must not count against them in the write-time re-check.
		holdID := resolveHold(input)

		result, err := svc.CheckAvailability(ctx.Request().Context(), services.AvailabilityQuery{
			RoomTypeID:    input.RoomTypeID,
			CheckIn:       input.CheckIn,
			CheckOut:      input.CheckOut,
			Adults:        input.Adults,
			Children:      input.Children,
			ExcludeHoldID: holdID,
		})
		if err != nil {
			utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
			return
		}

		switch result.Outcome {
		case services.OutcomeIncompleteInput, services.OutcomeInvalidDate, services.OutcomeInvalidRange:
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": result.Message})
			return
		case services.OutcomeRoomTypeNotFound:
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": result.Message})
			return
		case services.OutcomeCapacityExceeded:
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": result.Message})
			return
		}
		if !result.Available {
			ctx.StatusCode(iris.StatusConflict)
			ctx.JSON(iris.Map{"message": "No rooms available for the selected dates"})
			return
		}

		checkIn, _ := services.ParseStayDate(input.CheckIn)
		checkOut, _ := services.ParseStayDate(input.CheckOut)

		// Bind the request to a concrete room with the same overlap rule
		// the availability check used.
		store := storage.NewAvailabilityStore(storage.DB)
		rooms, err := store.ListRoomsByType(ctx.Request().Context(), input.RoomTypeID)
		if err != nil {
			utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
			return
		}
		roomIDs := make([]uint, len(rooms))
		for i, room := range rooms {
			roomIDs[i] = room.ID
		}
		reservations, err := store.ListOccupyingReservations(ctx.Request().Context(), roomIDs, checkIn, checkOut)
		if err != nil {
			utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
			return
		}

		room := services.FirstFreeRoom(rooms, reservations, checkIn, checkOut)
		if room == nil {
			// Lost the race since the availability check above.
			ctx.StatusCode(iris.StatusConflict)
			ctx.JSON(iris.Map{"message": "No rooms available for the selected dates"})
			return
		}

		reservation := models.Reservation{
			RoomID:     room.ID,
			GuestID:    input.GuestID,
			GuestName:  input.GuestName,
			GuestEmail: input.GuestEmail,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Adults:     input.Adults,
			Children:   input.Children,
			TotalPrice: result.TotalPrice,
			Status:     models.ReservationPending,
			Note:       input.Note,
		}

		if err := storage.DB.Create(&reservation).Error; err != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{"message": "Failed to create reservation"})
			return
		}

		// A hold placed during checkout is superseded by the booking.
		if holdID != 0 {
			storage.DB.Model(&models.TemporaryReservation{}).
				Where("id = ? AND status = ?", holdID, models.HoldPending).
				Update("status", models.HoldClaimed)
		}

		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(iris.Map{
			"success": true,
			"message": "Reservation created successfully",
			"data":    reservation,
			"pricing": iris.Map{
				"totalPrice":            result.TotalPrice,
				"basePrice":             result.BasePrice,
				"additionalGuestCharge": result.AdditionalGuestCharge,
				"nights":                result.Nights,
			},
		})
	}
}

// GetMyReservations lists the authenticated guest's own reservations.
func GetMyReservations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var reservations []models.Reservation
	res := storage.DB.
		Preload("Room").
		Preload("Room.RoomType").
		Where("guest_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservations})
}

func GetReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	status := ctx.URLParam("status")

	query := storage.DB.Model(&models.Reservation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var reservations []models.Reservation
	result := query.
		Preload("Room").
		Preload("Guest").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reservations)
	if result.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", result.Error.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

func GetReservationByID(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid reservation ID"})
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Room").Preload("Room.RoomType").Preload("Guest").First(&reservation, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reservation})
}

// Status transitions. Confirmation normally follows payment capture; the
// payment collaborator calls this endpoint when the gateway settles.

func ConfirmReservation(ctx iris.Context) {
	transitionReservation(ctx, []string{models.ReservationPending}, models.ReservationConfirmed, "Reservation confirmed")
}

func CheckInReservation(ctx iris.Context) {
	transitionReservation(ctx, []string{models.ReservationConfirmed}, models.ReservationCheckedIn, "Guest checked in")
}

func CheckOutReservation(ctx iris.Context) {
	transitionReservation(ctx, []string{models.ReservationCheckedIn}, models.ReservationCheckedOut, "Guest checked out")
}

func CancelReservation(ctx iris.Context) {
	transitionReservation(ctx, models.OccupyingStatuses, models.ReservationCancelled, "Reservation cancelled")
}

func transitionReservation(ctx iris.Context, from []string, to string, message string) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid reservation ID"})
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Reservation not found"})
		return
	}

	allowed := false
	for _, status := range from {
		if reservation.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Reservation is " + reservation.Status + ", cannot transition to " + to})
		return
	}

	reservation.Status = to
	if err := storage.DB.Save(&reservation).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to update reservation"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": message, "data": reservation})
}
