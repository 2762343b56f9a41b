package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/database"
)

// HandleAdminStats returns platform-wide counters for the operator.
func HandleAdminStats(c *fiber.Ctx) error {
	userCount, err := repository.GetGlobalFactory().GetUserRepository().Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not count users")
	}

	db := database.GetDB()
	var tenantCount, reviewCount, runCount int64
	db.Model(&models.Tenant{}).Count(&tenantCount)
	db.Model(&models.GoogleReview{}).Count(&reviewCount)
	db.Model(&models.AnalysisRun{}).Count(&runCount)

	return c.JSON(fiber.Map{
		"users":         userCount,
		"tenants":       tenantCount,
		"reviews":       reviewCount,
		"analysis_runs": runCount,
	})
}
