package routes

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"hotel-manager-server/models"
	"hotel-manager-server/services"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

const roomTypesCacheKey = "room_types:active"

type RoomTypeInput struct {
	Name                  string   `json:"name" validate:"required,max=256"`
	Description           string   `json:"description"`
	MaxOccupancy          int      `json:"maxOccupancy" validate:"required,min=1"`
	StandardOccupancy     int      `json:"standardOccupancy" validate:"min=1"`
	BasePrice             float64  `json:"basePrice" validate:"required,min=0"`
	AdditionalGuestCharge float64  `json:"additionalGuestCharge" validate:"min=0"`
	Images                []string `json:"images"`
	Amenities             []string `json:"amenities"`
	IsActive              *bool    `json:"isActive"`
}

// GetRoomTypes is the public listing. Without date params it serves the
// cached active room types; with checkIn/checkOut (plus optional
// adults/children) each entry also carries its availability result for
// the requested stay.
func GetRoomTypes(svc *services.AvailabilityService) iris.Handler {
	return func(ctx iris.Context) {
		checkIn := ctx.URLParam("checkIn")
		checkOut := ctx.URLParam("checkOut")
		adults := ctx.URLParamIntDefault("adults", 0)
		children := ctx.URLParamIntDefault("children", 0)

		if checkIn == "" && checkOut == "" {
			var cached []models.RoomType
			if storage.CacheGet(ctx.Request().Context(), roomTypesCacheKey, &cached) {
				ctx.JSON(iris.Map{"success": true, "data": cached})
				return
			}
		}

		var roomTypes []models.RoomType
		result := storage.DB.Where("is_active = ?", true).Order("base_price ASC").Find(&roomTypes)
		if result.Error != nil {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{"message": "Failed to fetch room types"})
			return
		}

		if checkIn == "" && checkOut == "" {
			storage.CacheSet(ctx.Request().Context(), roomTypesCacheKey, roomTypes, 5*time.Minute)
			ctx.JSON(iris.Map{"success": true, "data": roomTypes})
			return
		}

		type roomTypeWithAvailability struct {
			models.RoomType
			Availability services.AvailabilityResult `json:"availability"`
		}

		listing := make([]roomTypeWithAvailability, 0, len(roomTypes))
		for _, roomType := range roomTypes {
			availability, err := svc.CheckAvailability(ctx.Request().Context(), services.AvailabilityQuery{
				RoomTypeID: roomType.ID,
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				Adults:     adults,
				Children:   children,
			})
			if err != nil {
				ctx.StatusCode(iris.StatusInternalServerError)
				ctx.JSON(iris.Map{"message": "Failed to check availability"})
				return
			}
			availability.RoomType = nil // already the enclosing object
			listing = append(listing, roomTypeWithAvailability{RoomType: roomType, Availability: availability})
		}

		ctx.JSON(iris.Map{"success": true, "data": listing})
	}
}

func GetRoomTypeByID(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var roomType models.RoomType
	if err := storage.DB.Preload("Rooms").First(&roomType, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Room type not found"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": roomType})
}

// CreateRoomType creates a room type. StandardOccupancy <= MaxOccupancy
// is intentionally not checked here; the pricing calculator floors the
// surcharge at zero when the data violates it.
func CreateRoomType(ctx iris.Context) {
	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	roomType := models.RoomType{
		Name:                  input.Name,
		Description:           input.Description,
		MaxOccupancy:          input.MaxOccupancy,
		StandardOccupancy:     input.StandardOccupancy,
		BasePrice:             input.BasePrice,
		AdditionalGuestCharge: input.AdditionalGuestCharge,
		Images:                marshalJSONColumn(input.Images),
		Amenities:             marshalJSONColumn(input.Amenities),
		IsActive:              input.IsActive,
	}

	if err := storage.DB.Create(&roomType).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to create room type"})
		return
	}

	storage.CacheDel(context.Background(), roomTypesCacheKey)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Room type created successfully", "data": roomType})
}

func UpdateRoomType(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var roomType models.RoomType
	if err := storage.DB.First(&roomType, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Room type not found"})
		return
	}

	roomType.Name = input.Name
	roomType.Description = input.Description
	roomType.MaxOccupancy = input.MaxOccupancy
	roomType.StandardOccupancy = input.StandardOccupancy
	roomType.BasePrice = input.BasePrice
	roomType.AdditionalGuestCharge = input.AdditionalGuestCharge
	roomType.Images = marshalJSONColumn(input.Images)
	roomType.Amenities = marshalJSONColumn(input.Amenities)
	if input.IsActive != nil {
		roomType.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&roomType).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to update room type"})
		return
	}

	storage.CacheDel(context.Background(), roomTypesCacheKey)
	ctx.JSON(iris.Map{"success": true, "message": "Room type updated successfully", "data": roomType})
}

func DeleteRoomType(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid room type ID"})
		return
	}

	var roomCount int64
	storage.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&roomCount)
	if roomCount > 0 {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"message": "Room type still has rooms assigned"})
		return
	}

	if err := storage.DB.Delete(&models.RoomType{}, id).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to delete room type"})
		return
	}

	storage.CacheDel(context.Background(), roomTypesCacheKey)
	ctx.JSON(iris.Map{"success": true, "message": "Room type deleted successfully"})
}

func marshalJSONColumn(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	payload, _ := json.Marshal(values)
	return datatypes.JSON(payload)
}
