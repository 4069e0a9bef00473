package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.metrics.Middleware)

	app.Get("/healthz", handler.Health)
	if handler.metricsUser != "" && handler.metricsPass != "" {
		app.Get("/metrics", basicauth.New(basicauth.Config{
			Users: map[string]string{handler.metricsUser: handler.metricsPass},
			Realm: "Metrics",
		}), handler.metrics.Handler())
	} else {
		app.Get("/metrics", handler.metrics.Handler())
	}

	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.RateLimitAuth, handler.Register)
	auth.Post("/login", handler.RateLimitAuth, handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)

	checkIns := api.Group("/checkins", handler.AuthRequired)
	checkIns.Get("", handler.ListCheckIns)
	checkIns.Post("", handler.UpsertCheckIn)
	checkIns.Post("/today", handler.CheckInToday)
	checkIns.Get("/:id", handler.GetCheckIn)
	checkIns.Put("/:id", handler.UpdateCheckIn)
	checkIns.Delete("/:id", handler.DeleteCheckIn)

	hrv := api.Group("/hrv", handler.AuthRequired)
	hrv.Get("", handler.ListHRVReadings)
	hrv.Post("", handler.UpsertHRVReading)
	hrv.Get("/latest", handler.LatestHRVReading)
	hrv.Delete("/:date", handler.DeleteHRVReading)

	habits := api.Group("/habits", handler.AuthRequired)
	habits.Get("", handler.ListHabitAnchors)
	habits.Post("", handler.CreateHabitAnchor)
	habits.Put("/:id", handler.UpdateHabitAnchor)
	habits.Post("/:id/toggle", handler.ToggleHabitAnchor)
	habits.Delete("/:id", handler.DeleteHabitAnchor)
	habits.Get("/:id/next-prompt", handler.NextHabitPrompt)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/checkins.csv", handler.ExportCheckInsCSV)
}
