package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/StorePulse/StorePulse/app/controllers"
	"github.com/StorePulse/StorePulse/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1", middleware.RequireAuth)

	// Stores
	v1.Get("/stores", controllers.HandleListStores)
	v1.Get("/stores/*", controllers.HandleStoreDetail)

	// Reviews
	v1.Post("/reviews/sync", controllers.HandleSyncReviews)
	v1.Get("/reviews", controllers.HandleListReviews)

	// Analyses
	v1.Post("/analysis/file", controllers.HandleAnalyzeFile)
	v1.Post("/analysis/insight", controllers.HandleAnalyzeInsight)
	v1.Get("/analysis/runs/:id", controllers.HandleGetAnalysisRun)
	v1.Get("/analysis/cx-dashboard", controllers.HandleCXDashboard)

	// Dashboard + customers
	v1.Get("/dashboard/rating-trend", controllers.HandleRatingTrend)
	v1.Get("/customers", controllers.HandleListCustomers)

	// Admin
	v1.Get("/admin/stats", middleware.RequireAdmin, controllers.HandleAdminStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
