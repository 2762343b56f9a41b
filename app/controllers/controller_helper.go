package controllers

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
	"github.com/StorePulse/StorePulse/internal/pkg/llm"
	"github.com/StorePulse/StorePulse/internal/pkg/session"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

// Session keys shared with the middleware layer
const (
	AUTH_KEY    = usercontext.AuthKey
	USER_ID     = usercontext.KeyUserID
	TENANT_ID   = usercontext.KeyTenantID
	USER_NAME   = usercontext.KeyUsername
	USER_ADMIN  = usercontext.KeyIsAdmin
	ProviderKey = "google"
)

var validate = validator.New()

// gateway is the process-wide LLM client, injected at startup so tests can
// swap in a fake.
var gateway llm.Gateway

// newBizClient builds a Business Profile API client from a refresh token;
// swapped by tests to avoid real OAuth round trips.
var newBizClient = func(c *fiber.Ctx, refreshToken string, scopes []string) (*googlebiz.Client, error) {
	httpClient, err := googlebiz.NewAuthenticatedClient(c.Context(), refreshToken, scopes)
	if err != nil {
		return nil, err
	}
	return googlebiz.NewClient(httpClient), nil
}

// InitializeControllers wires the constructed dependencies in. Must run
// before the router installs any handler.
func InitializeControllers(gw llm.Gateway) {
	gateway = gw
}

// loggedInUserID reads the user id straight from the app session. OAuth
// callback routes bypass the user-context middleware, so locals are not set
// there.
func loggedInUserID(c *fiber.Ctx) uint {
	store := session.GetSessionStore()
	if store == nil {
		return 0
	}
	sess, err := store.Get(c)
	if err != nil {
		return 0
	}
	if id, ok := sess.Get(USER_ID).(uint); ok {
		return id
	}
	return 0
}

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// bizClientForUser resolves the current user's stored credential into an
// authenticated Business Profile client.
func bizClientForUser(c *fiber.Ctx) (*googlebiz.Client, error) {
	userCtx := usercontext.GetUserContext(c)

	account, err := repository.GetGlobalFactory().
		GetProviderAccountRepository().
		GetByUserAndProvider(userCtx.UserID, ProviderKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, googlebiz.ErrNotConnected
	}
	if err != nil {
		return nil, err
	}

	var scopes []string
	if account.Scope != "" {
		scopes = strings.Fields(account.Scope)
	}
	return newBizClient(c, account.RefreshToken, scopes)
}

// mapProviderError translates credential/collector failures into HTTP
// responses. Auth problems mean "reconnect required", never "retry".
func mapProviderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, googlebiz.ErrNotConnected):
		return jsonError(c, fiber.StatusBadRequest, "not_connected", "Google Business Profile is not connected")
	case errors.Is(err, googlebiz.ErrAuthExpired):
		return jsonError(c, fiber.StatusUnauthorized, "auth_expired", "Google authorization expired, please reconnect")
	case errors.Is(err, googlebiz.ErrPageLimit):
		return jsonError(c, fiber.StatusBadGateway, "provider_error", "provider returned an excessive number of pages")
	case errors.Is(err, googlebiz.ErrUnavailable):
		return jsonError(c, fiber.StatusBadGateway, "provider_unavailable", "Google Business Profile API is unavailable")
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", err.Error())
	}
}

// parseStoreID validates the provider-scoped store key from a query or path
// value. Store ids are path-like ("accounts/123/locations/456") and arrive
// URL-encoded.
func parseStoreID(raw string) (string, bool) {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false
	}
	decoded = strings.TrimSpace(decoded)
	if decoded == "" || !strings.HasPrefix(decoded, "accounts/") {
		return "", false
	}
	return decoded, true
}

// parseDateRange reads optional from/to query params (YYYY-MM-DD). The "to"
// bound is inclusive of the whole day.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Second)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, errors.New("'from' must not be after 'to'")
	}
	return from, to, nil
}
