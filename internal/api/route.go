package api

import (
	v1 "github.com/Behyna/collect-gateway/internal/api/v1"
	"github.com/Behyna/collect-gateway/internal/api/v1/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *Handler, v1Handler *v1.Handler) {
	app.Use(cors.New())

	app.Get("/ping", handler.Pong)
	app.Get("/health", handler.Health)
	SetupMetricsRoute(app)

	apiV2 := app.Group("/api/v2")
	apiV2.Post("/transaction/updates", v1Handler.StoreTransactionUpdate)

	auth := middleware.RequireAuthorization()
	apiV2.Post("/transaction/collect", auth, v1Handler.CollectTransaction)
	apiV2.Get("/transaction/fetch-status/:id", auth, v1Handler.FetchTransactionStatus)
	apiV2.Post("/callback/register", auth, v1Handler.RegisterCallback)
}

func SetupMetricsRoute(app *fiber.App) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
