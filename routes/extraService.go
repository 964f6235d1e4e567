package routes

import (
	"strconv"

	"hotel-manager-server/models"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
)

type ExtraServiceInput struct {
	Name        string  `json:"name" validate:"required,max=256"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	IsActive    *bool   `json:"isActive"`
}

func GetExtraServices(ctx iris.Context) {
	var extras []models.ExtraService
	result := storage.DB.Where("is_active = ?", true).Order("name ASC").Find(&extras)
	if result.Error != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to fetch extra services"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": extras})
}

func CreateExtraService(ctx iris.Context) {
	var input ExtraServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	extra := models.ExtraService{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsActive:    input.IsActive,
	}

	if err := storage.DB.Create(&extra).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to create extra service"})
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Extra service created successfully", "data": extra})
}

func UpdateExtraService(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid extra service ID"})
		return
	}

	var input ExtraServiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var extra models.ExtraService
	if err := storage.DB.First(&extra, id).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Extra service not found"})
		return
	}

	extra.Name = input.Name
	extra.Description = input.Description
	extra.Price = input.Price
	if input.IsActive != nil {
		extra.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&extra).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to update extra service"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Extra service updated successfully", "data": extra})
}

func DeleteExtraService(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid extra service ID"})
		return
	}

	if err := storage.DB.Delete(&models.ExtraService{}, id).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to delete extra service"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Extra service deleted successfully"})
}
