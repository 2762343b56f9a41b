package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

// HandleIntegrationStatus reports whether the user has a stored Business
// Profile credential.
func HandleIntegrationStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	_, err := repository.GetGlobalFactory().
		GetProviderAccountRepository().
		GetByUserAndProvider(userCtx.UserID, ProviderKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"connected": false})
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load credential")
	}
	return c.JSON(fiber.Map{"connected": true})
}

// HandleDisconnectIntegration drops the stored credential. Reviews already
// synced stay in place.
func HandleDisconnectIntegration(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	err := repository.GetGlobalFactory().
		GetProviderAccountRepository().
		Delete(userCtx.UserID, ProviderKey)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not remove credential")
	}
	return c.JSON(fiber.Map{"connected": false})
}
