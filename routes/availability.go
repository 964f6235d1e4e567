package routes

import (
	"hotel-manager-server/services"
	"hotel-manager-server/utils"

	"github.com/kataras/iris/v12"
)

// Availability endpoint. The handler is a closure over the injected
// service so tests can assemble it with an in-memory store.

// CheckAvailability answers the public "is this room type free" query.
// Business outcomes (available, sold out, capacity exceeded) are all 200
// so the booking UI can render them; only malformed input and unknown
// room types map to 4xx. Every response carries the full result shape.
func CheckAvailability(svc *services.AvailabilityService) iris.Handler {
	return func(ctx iris.Context) {
		var query services.AvailabilityQuery
		if err := ctx.ReadJSON(&query); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.CheckAvailability(ctx.Request().Context(), query)
		if err != nil {
			utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
			return
		}

		switch result.Outcome {
		case services.OutcomeIncompleteInput, services.OutcomeInvalidDate, services.OutcomeInvalidRange:
			ctx.StatusCode(iris.StatusBadRequest)
		case services.OutcomeRoomTypeNotFound:
			ctx.StatusCode(iris.StatusNotFound)
		}
		ctx.JSON(result)
	}
}
