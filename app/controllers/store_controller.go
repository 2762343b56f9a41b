package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/StorePulse/StorePulse/app/repository"
	"github.com/StorePulse/StorePulse/internal/pkg/cache"
	"github.com/StorePulse/StorePulse/internal/pkg/googlebiz"
	"github.com/StorePulse/StorePulse/internal/pkg/usercontext"
)

const storeListCacheTTL = 5 * time.Minute

type storeView struct {
	StoreID     string  `json:"store_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

// HandleListStores lists every location the connected account can see,
// merged with locally stored review aggregates. Provider responses are
// cached briefly; the aggregates are always fresh.
func HandleListStores(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	locations, err := listLocationsCached(c, userCtx.UserID)
	if err != nil {
		return mapProviderError(c, err)
	}

	aggregates, err := repository.GetGlobalFactory().GetReviewRepository().StoreAggregates(userCtx.TenantID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load review aggregates")
	}
	byStore := make(map[string]repository.StoreAggregate, len(aggregates))
	for _, a := range aggregates {
		byStore[a.StoreID] = a
	}

	stores := make([]storeView, 0, len(locations))
	for _, loc := range locations {
		view := storeView{
			StoreID:  loc.Name,
			Name:     loc.Title,
			Address:  loc.Address,
			Category: loc.Category,
			Status:   loc.Status,
		}
		if agg, ok := byStore[loc.Name]; ok {
			view.ReviewCount = agg.ReviewCount
			view.AvgRating = agg.AvgRating
		}
		stores = append(stores, view)
	}

	return c.JSON(stores)
}

// HandleStoreDetail returns one store's provider metadata.
func HandleStoreDetail(c *fiber.Ctx) error {
	storeID, ok := parseStoreID(c.Params("*"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid_store_id", "store id must look like accounts/{id}/locations/{id}")
	}

	client, err := bizClientForUser(c)
	if err != nil {
		return mapProviderError(c, err)
	}

	loc, err := client.GetLocation(c.Context(), storeID)
	if err != nil {
		return mapProviderError(c, err)
	}

	return c.JSON(fiber.Map{
		"store_id": loc.Name,
		"name":     loc.Title,
		"address":  loc.Address,
		"category": loc.Category,
		"status":   loc.Status,
		"phone":    loc.Phone,
		"website":  loc.Website,
	})
}

func listLocationsCached(c *fiber.Ctx, userID uint) ([]googlebiz.Location, error) {
	cacheKey := fmt.Sprintf("stores:%d", userID)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		var locations []googlebiz.Location
		if json.Unmarshal([]byte(cached), &locations) == nil {
			return locations, nil
		}
	}

	client, err := bizClientForUser(c)
	if err != nil {
		return nil, err
	}

	accounts, err := client.ListAccounts(c.Context())
	if err != nil {
		return nil, err
	}

	var locations []googlebiz.Location
	for _, account := range accounts {
		locs, err := client.ListLocations(c.Context(), account.Name)
		if err != nil {
			return nil, err
		}
		locations = append(locations, locs...)
	}

	if encoded, err := json.Marshal(locations); err == nil {
		_ = cache.Set(cacheKey, string(encoded), storeListCacheTTL)
	}
	return locations, nil
}
