package routes

import (
	"strconv"
	"time"

	"hotel-manager-server/models"
	"hotel-manager-server/services"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
)

// Soft holds: a checkout flow places one while the guest fills in payment
// details so the unit is not sold twice mid-payment. Holds expire on their
// own; nothing cleans them up beyond the expires_at filter.

const defaultHoldTTLMinutes = 15

type HoldInput struct {
	RoomTypeID uint   `json:"roomTypeID" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	TTLMinutes int    `json:"ttlMinutes" validate:"min=0,max=60"`
	SessionKey string `json:"sessionKey" validate:"max=128"`
}

func CreateHold(ctx iris.Context) {
	var input HoldInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, inErr := services.ParseStayDate(input.CheckIn)
	checkOut, outErr := services.ParseStayDate(input.CheckOut)
	if inErr != nil || outErr != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid check-in or check-out date"})
		return
	}
	if !checkOut.After(checkIn) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Check-out date must be after check-in date"})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, input.RoomTypeID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Room type not found"})
		return
	}

	ttl := input.TTLMinutes
	if ttl == 0 {
		ttl = defaultHoldTTLMinutes
	}

	hold := models.TemporaryReservation{
		RoomTypeID: input.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     models.HoldPending,
		ExpiresAt:  time.Now().Add(time.Duration(ttl) * time.Minute),
		SessionKey: input.SessionKey,
	}

	if err := storage.DB.Create(&hold).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to create hold"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Hold created successfully", "data": hold})
}

func ReleaseHold(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid hold ID"})
		return
	}

	result := storage.DB.Model(&models.TemporaryReservation{}).
		Where("id = ? AND status = ?", id, models.HoldPending).
		Update("status", models.HoldReleased)
	if result.Error != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to release hold"})
		return
	}
	if result.RowsAffected == 0 {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Hold not found or not pending"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Hold released successfully"})
}
