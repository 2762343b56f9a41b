package oauth

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/StorePulse/StorePulse/internal/pkg/cache"
	"github.com/StorePulse/StorePulse/internal/pkg/env"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
)

// ProviderGoogleBusiness is the provider name of the Business Profile
// connect flow. It is a second Google registration with the business.manage
// scope and offline access, so a refresh token is issued.
const ProviderGoogleBusiness = "google-business"

// BusinessScopes are the scopes requested by the connect flow. The callback
// persists them next to the refresh token so a stored credential records what
// it was granted for.
var BusinessScopes = []string{"email", "profile", googlebiz.BusinessScope}

// Setup initializes Goth providers and the OAuth session store based on
// environment variables. Safe to call multiple times; providers will just be
// re-registered.
func Setup() {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	login := google.New(
		env.GetEnv("GOOGLE_KEY", ""),
		env.GetEnv("GOOGLE_SECRET", ""),
		base+"/auth/google/callback",
		"email", "profile",
	)

	business := google.New(
		env.GetEnv("GOOGLE_KEY", ""),
		env.GetEnv("GOOGLE_SECRET", ""),
		base+"/auth/"+ProviderGoogleBusiness+"/callback",
		BusinessScopes...,
	)
	business.SetName(ProviderGoogleBusiness)
	// Google only issues refresh tokens for offline access with forced
	// consent.
	business.SetAccessType("offline")
	business.SetPrompt("consent")

	goth.UseProviders(login, business)

	// OAuth state via Redis, using the same connection as app sessions
	// (separate DB)
	cacheClient := cache.GetClient()
	cacheOpts := cacheClient.Options()
	host, port := "127.0.0.1", 6379
	if cacheOpts != nil && cacheOpts.Addr != "" {
		if h, p, err := net.SplitHostPort(cacheOpts.Addr); err == nil {
			host = h
			if parsed, e := strconv.Atoi(p); e == nil {
				port = parsed
			}
		} else {
			host = cacheOpts.Addr
		}
	}

	gothfiber.SessionStore = session.New(session.Config{
		Storage: redisstorage.New(redisstorage.Config{
			Host:     host,
			Port:     port,
			Username: cacheOpts.Username,
			Password: cacheOpts.Password,
			Database: 2,
			Reset:    false,
		}),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     time.Hour,
	})
}
