// Package http содержит HTTP сервер формы регистрации.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regform/internal/registration/adapters/http/forms"
	"regform/internal/registration/adapters/http/middleware"
	"regform/internal/registration/app"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(server *fiber.App, sessions *app.Sessions, gatherer prometheus.Gatherer) {
	formsHandler := forms.NewHandler(sessions)

	// Middleware для всех запросов.
	server.Use(middleware.NewRequestIDMiddleware())
	server.Use(middleware.NewLoggerMiddleware())
	server.Use(middleware.NewRecoveryMiddleware())

	server.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	server.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := server.Group("/api/v1")

	formRoutes := apiV1.Group("/forms")
	formRoutes.Post("/", formsHandler.Create)
	formRoutes.Get("/:id", formsHandler.Get)
	formRoutes.Get("/:id/countries", formsHandler.Countries)
	formRoutes.Put("/:id/fields/:field", formsHandler.SetField)
	formRoutes.Post("/:id/submit", formsHandler.Submit)
	formRoutes.Delete("/:id", formsHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	server.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
