package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/analysis"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

// HandleRatingTrend returns the bucketed rating series for one store.
func HandleRatingTrend(c *fiber.Ctx) error {
	storeID, ok := parseStoreID(c.Query("store_id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid_store_id", "store_id query parameter is required")
	}

	unit := c.Query("unit", analysis.TrendUnitDay)
	if unit != analysis.TrendUnitDay && unit != analysis.TrendUnitMonth {
		return jsonError(c, fiber.StatusBadRequest, "invalid_unit", "unit must be 'day' or 'month'")
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_date_range", err.Error())
	}

	userCtx := usercontext.GetUserContext(c)
	reviews, err := repository.GetGlobalFactory().GetReviewRepository().
		ListByStore(userCtx.TenantID, storeID, from, to)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load reviews")
	}

	points := analysis.ComputeRatingTrend(reviews, unit)
	return c.JSON(fiber.Map{
		"store_id": storeID,
		"unit":     unit,
		"points":   points,
	})
}
