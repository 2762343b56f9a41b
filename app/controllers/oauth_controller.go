package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/models"
	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/database"
	"github.com/StorePulse/StorePulse/internal/pkg/env"
	"github.com/StorePulse/StorePulse/internal/pkg/oauth"
)

// HandleOAuthCallback completes a provider flow. The plain "google" provider
// logs the user in; "google-business" links the Business Profile credential
// to the already-logged-in user.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	if u.Provider == oauth.ProviderGoogleBusiness {
		return completeBusinessConnect(c, u.UserID, u.RefreshToken)
	}

	db := database.GetDB()

	// Try to find an existing linked identity, then fall back to email match.
	var appUser models.User
	err = db.Where("email = ?", u.Email).First(&appUser).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		appUser, err = createOAuthUser(db, u.Name, u.NickName, u.Email, u.AvatarURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", err))
	}

	if err := createLoginSession(c, &appUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	now := time.Now()
	_ = db.Model(&appUser).UpdateColumn("last_login_at", now).Error

	return c.Redirect(frontendURL(), fiber.StatusSeeOther)
}

func createOAuthUser(db *gorm.DB, name, nickname, email, avatarURL string) (models.User, error) {
	// OAuth users get a random placeholder password; it is never used for
	// login, the validation just requires one.
	placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
	hash, _ := models.HashPassword(placeholder)

	displayName := firstNonEmpty(name, nickname, email, "User")

	tenant := models.Tenant{Name: displayName}
	if err := db.Create(&tenant).Error; err != nil {
		return models.User{}, err
	}

	user := models.User{
		TenantID:  tenant.ID,
		Name:      displayName,
		Email:     email,
		Password:  hash,
		AvatarURL: avatarURL,
		Role:      models.ROLE_USER,
		Status:    models.STATUS_ACTIVE,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// completeBusinessConnect persists the Business Profile refresh token for
// the logged-in user. The goth_fiber session store already verified the
// state nonce before the token exchange.
func completeBusinessConnect(c *fiber.Ctx, providerAccountID, refreshToken string) error {
	userID := loggedInUserID(c)
	if userID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required before connecting Google Business Profile")
	}

	account := models.ProviderAccount{
		UserID:            userID,
		Provider:          ProviderKey,
		ProviderAccountID: providerAccountID,
		RefreshToken:      refreshToken,
		Scope:             connectScope(),
	}
	if err := repository.GetGlobalFactory().GetProviderAccountRepository().Upsert(&account); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not store credential")
	}

	return c.Redirect(frontendURL()+"/stores", fiber.StatusSeeOther)
}

// connectScope is the space-joined scope list the connect flow requested.
// Token exchange responses don't round-trip through goth's user, so the
// requested scopes are what gets recorded on the credential.
func connectScope() string {
	return strings.Join(oauth.BusinessScopes, " ")
}

func frontendURL() string {
	return env.GetEnv("FRONTEND_URL", "http://localhost:3000")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
