package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/database"
	"github.com/StorePulse/StorePulse/internal/pkg/session"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a tenant plus its first user.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if existing, _ := repo.GetByEmail(req.Email); existing != nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	db := database.GetDB()
	tenant := models.Tenant{Name: req.Name}
	if err := db.Create(&tenant).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not create tenant")
	}
	user.TenantID = tenant.ID
	if err := repo.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not create user")
	}

	if err := createLoginSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session save failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        user.ID,
		"tenant_id": user.TenantID,
		"name":      user.Name,
		"email":     user.Email,
	})
}

// HandleLogin authenticates with email and password.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByEmail(req.Email)
	// Do not reveal whether the email or the password was wrong.
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "login_failed", "invalid credentials")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "account_disabled", "this account is not active")
	}

	if err := createLoginSession(c, user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session save failed")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repository.GetGlobalFactory().GetUserRepository().Update(user)

	return c.JSON(fiber.Map{
		"logged_in": true,
		"name":      user.Name,
	})
}

// HandleLogout clears the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"logged_out": true})
}

// HandleAuthStatus reports whether the caller has a live session.
func HandleAuthStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	return c.JSON(fiber.Map{
		"logged_in": userCtx.IsLoggedIn,
		"name":      userCtx.Username,
	})
}

func createLoginSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(TENANT_ID, user.TenantID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_ADMIN, user.Role == models.ROLE_ADMIN)
	return sess.Save()
}
