package routes

import (
	"strconv"

	"hotel-manager-server/models"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
)

type RoomInput struct {
	RoomTypeID uint   `json:"roomTypeID" validate:"required"`
	Number     string `json:"number" validate:"required,max=32"`
	Floor      int    `json:"floor"`
	Notes      string `json:"notes"`
}

func GetRoomsByType(ctx iris.Context) {
	roomTypeID, err := strconv.ParseUint(ctx.Params().Get("roomTypeID"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var rooms []models.Room
	result := storage.DB.Where("room_type_id = ?", roomTypeID).Order("number ASC").Find(&rooms)
	if result.Error != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to fetch rooms"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": rooms})
}

func CreateRoom(ctx iris.Context) {
	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, input.RoomTypeID).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Room type not found"})
		return
	}

	room := models.Room{
		RoomTypeID: input.RoomTypeID,
		Number:     input.Number,
		Floor:      input.Floor,
		Notes:      input.Notes,
	}

	if err := storage.DB.Create(&room).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to create room"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Room created successfully", "data": room})
}

func UpdateRoom(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room ID"})
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	if err := storage.DB.First(&room, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Room not found"})
		return
	}

	room.RoomTypeID = input.RoomTypeID
	room.Number = input.Number
	room.Floor = input.Floor
	room.Notes = input.Notes

	if err := storage.DB.Save(&room).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to update room"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Room updated successfully", "data": room})
}

func DeleteRoom(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room ID"})
		return
	}

	var occupying int64
	storage.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", id, models.OccupyingStatuses).
		Count(&occupying)
	if occupying > 0 {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Room has active reservations"})
		return
	}

	if err := storage.DB.Delete(&models.Room{}, id).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to delete room"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Room deleted successfully"})
}
