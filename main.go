package main

import (
	"os"
	"time"

	"hotel-manager-server/routes"
	"hotel-manager-server/services"
	"hotel-manager-server/storage"
	"hotel-manager-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the dashboard and booking site
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	availabilitySvc := services.NewAvailabilityService(storage.NewAvailabilityStore(storage.DB), time.Now)

	availability := app.Party("/api/availability")
	{
		availability.Post("/check", routes.CheckAvailability(availabilitySvc))
	}

	roomTypes := app.Party("/api/room-types")
	{
		roomTypes.Get("/", routes.GetRoomTypes(availabilitySvc))
		roomTypes.Get("/{id}", routes.GetRoomTypeByID)
	}

	holds := app.Party("/api/holds")
	{
		holds.Post("/", routes.CreateHold)
		holds.Delete("/{id}", routes.ReleaseHold)
	}

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/", routes.CreateReservation(availabilitySvc))
		reservations.Get("/mine", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyReservations)
	}

	extraServices := app.Party("/api/extra-services")
	{
		extraServices.Get("/", routes.GetExtraServices)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Post("/room-types", routes.CreateRoomType)
		admin.Put("/room-types/{id}", routes.UpdateRoomType)
		admin.Delete("/room-types/{id}", routes.DeleteRoomType)

		admin.Get("/room-types/{roomTypeID}/rooms", routes.GetRoomsByType)
		admin.Post("/rooms", routes.CreateRoom)
		admin.Put("/rooms/{id}", routes.UpdateRoom)
		admin.Delete("/rooms/{id}", routes.DeleteRoom)

		admin.Get("/reservations", routes.GetReservations)
		admin.Get("/reservations/{id}", routes.GetReservationByID)
		admin.Patch("/reservations/{id}/confirm", routes.ConfirmReservation)
		admin.Patch("/reservations/{id}/check-in", routes.CheckInReservation)
		admin.Patch("/reservations/{id}/check-out", routes.CheckOutReservation)
		admin.Patch("/reservations/{id}/cancel", routes.CancelReservation)

		admin.Get("/extra-services", routes.GetExtraServices)
		admin.Post("/extra-services", routes.CreateExtraService)
		admin.Put("/extra-services/{id}", routes.UpdateExtraService)
		admin.Delete("/extra-services/{id}", routes.DeleteExtraService)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
