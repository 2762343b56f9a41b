package googlebiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUnavailable wraps network/HTTP failures against the Business Profile API.
	ErrUnavailable = errors.New("googlebiz: provider unavailable")
	// ErrPageLimit is returned when a pagination walk exceeds maxPages.
	// The provider normally terminates by omitting nextPageToken; a walk this
	// deep means it is misbehaving and we refuse to loop forever.
	ErrPageLimit = errors.New("googlebiz: pagination exceeded page limit")
)

const (
	defaultAccountBase  = "https://mybusinessaccountmanagement.googleapis.com/v1"
	defaultLocationBase = "https://mybusinessbusinessinformation.googleapis.com/v1"
	defaultReviewBase   = "https://mybusinessreviews.googleapis.com/v1"

	maxPages       = 100
	requestTimeout = 10 * time.Second
)

// Account is a Business Profile account ("accounts/{id}").
type Account struct {
	Name        string `json:"name"`
	AccountName string `json:"accountName"`
}

// Location is one store under an account.
type Location struct {
	Name     string `json:"name"` // accounts/{id}/locations/{id}
	Title    string `json:"title"`
	Category string `json:"category"`
	Address  string `json:"address"`
	Status   string `json:"status"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// RawReview is one review exactly as the provider reports it, flattened to
// the fields the repository cares about. StarRating keeps the provider's
// categorical form ("ONE".."FIVE"); normalization happens on insert.
type RawReview struct {
	StoreID    string
	ReviewID   string
	Reviewer   string
	StarRating any
	Comment    string
	CreateTime string
	UpdateTime string
}

// Client walks the provider's account -> location -> review hierarchy. The
// http.Client is expected to carry OAuth credentials (oauth2 token source).
type Client struct {
	httpClient   *http.Client
	accountBase  string
	locationBase string
	reviewBase   string
}

// Option adjusts client construction; used by tests to point at fakes.
type Option func(*Client)

func WithBaseURLs(account, location, review string) Option {
	return func(c *Client) {
		c.accountBase = account
		c.locationBase = location
		c.reviewBase = review
	}
}

func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	c := &Client{
		httpClient:   httpClient,
		accountBase:  defaultAccountBase,
		locationBase: defaultLocationBase,
		reviewBase:   defaultReviewBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type accountPage struct {
	Accounts      []Account `json:"accounts"`
	NextPageToken string    `json:"nextPageToken"`
}

type locationPage struct {
	Locations []struct {
		Name              string `json:"name"`
		Title             string `json:"title"`
		StorefrontAddress struct {
			Locality           string `json:"locality"`
			AdministrativeArea string `json:"administrativeArea"`
		} `json:"storefrontAddress"`
		PrimaryCategory struct {
			DisplayName string `json:"displayName"`
		} `json:"primaryCategory"`
		OpenInfo struct {
			Status string `json:"status"`
		} `json:"openInfo"`
		PhoneNumbers struct {
			PrimaryPhone string `json:"primaryPhone"`
		} `json:"phoneNumbers"`
		WebsiteURI string `json:"websiteUri"`
	} `json:"locations"`
	NextPageToken string `json:"nextPageToken"`
}

type reviewPage struct {
	Reviews []struct {
		ReviewID string `json:"reviewId"`
		Name     string `json:"name"`
		Reviewer struct {
			DisplayName string `json:"displayName"`
		} `json:"reviewer"`
		StarRating any    `json:"starRating"`
		Comment    string `json:"comment"`
		CreateTime string `json:"createTime"`
		UpdateTime string `json:"updateTime"`
	} `json:"reviews"`
	NextPageToken string `json:"nextPageToken"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", ErrUnavailable, resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

func pagedURL(base, path, pageToken string) string {
	u := base + path
	if pageToken != "" {
		u += "?pageToken=" + url.QueryEscape(pageToken)
	}
	return u
}

// ListAccounts returns every Business Profile account the credential can see.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	token := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return accounts, ErrPageLimit
		}
		var p accountPage
		if err := c.getJSON(ctx, pagedURL(c.accountBase, "/accounts", token), &p); err != nil {
			return accounts, err
		}
		accounts = append(accounts, p.Accounts...)
		if p.NextPageToken == "" {
			return accounts, nil
		}
		token = p.NextPageToken
	}
}

// ListLocations returns every location (store) under the given account name.
func (c *Client) ListLocations(ctx context.Context, accountName string) ([]Location, error) {
	var locations []Location
	token := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return locations, ErrPageLimit
		}
		var p locationPage
		path := "/" + accountName + "/locations"
		if err := c.getJSON(ctx, pagedURL(c.locationBase, path, token), &p); err != nil {
			return locations, err
		}
		for _, l := range p.Locations {
			locations = append(locations, Location{
				Name:     l.Name,
				Title:    l.Title,
				Category: l.PrimaryCategory.DisplayName,
				Address:  joinNonEmpty(l.StorefrontAddress.Locality, l.StorefrontAddress.AdministrativeArea),
				Status:   l.OpenInfo.Status,
				Phone:    l.PhoneNumbers.PrimaryPhone,
				Website:  l.WebsiteURI,
			})
		}
		if p.NextPageToken == "" {
			return locations, nil
		}
		token = p.NextPageToken
	}
}

// GetLocation fetches one location's metadata by its full resource name.
func (c *Client) GetLocation(ctx context.Context, locationName string) (*Location, error) {
	var l struct {
		Name              string `json:"name"`
		Title             string `json:"title"`
		StorefrontAddress struct {
			Locality           string `json:"locality"`
			AdministrativeArea string `json:"administrativeArea"`
		} `json:"storefrontAddress"`
		PrimaryCategory struct {
			DisplayName string `json:"displayName"`
		} `json:"primaryCategory"`
		OpenInfo struct {
			Status string `json:"status"`
		} `json:"openInfo"`
		PhoneNumbers struct {
			PrimaryPhone string `json:"primaryPhone"`
		} `json:"phoneNumbers"`
		WebsiteURI string `json:"websiteUri"`
	}
	if err := c.getJSON(ctx, c.locationBase+"/"+locationName, &l); err != nil {
		return nil, err
	}
	return &Location{
		Name:     l.Name,
		Title:    l.Title,
		Category: l.PrimaryCategory.DisplayName,
		Address:  joinNonEmpty(l.StorefrontAddress.Locality, l.StorefrontAddress.AdministrativeArea),
		Status:   l.OpenInfo.Status,
		Phone:    l.PhoneNumbers.PrimaryPhone,
		Website:  l.WebsiteURI,
	}, nil
}

// ListReviews returns every review under the given location name.
func (c *Client) ListReviews(ctx context.Context, locationName string) ([]RawReview, error) {
	var reviews []RawReview
	token := ""
	for page := 0; ; page++ {
		if page >= maxPages {
			return reviews, ErrPageLimit
		}
		var p reviewPage
		path := "/" + locationName + "/reviews"
		if err := c.getJSON(ctx, pagedURL(c.reviewBase, path, token), &p); err != nil {
			return reviews, err
		}
		for _, r := range p.Reviews {
			reviews = append(reviews, RawReview{
				StoreID:    locationName,
				ReviewID:   r.ReviewID,
				Reviewer:   r.Reviewer.DisplayName,
				StarRating: r.StarRating,
				Comment:    r.Comment,
				CreateTime: r.CreateTime,
				UpdateTime: r.UpdateTime,
			})
		}
		if p.NextPageToken == "" {
			return reviews, nil
		}
		token = p.NextPageToken
	}
}

// CollectAll flattens the full account -> location -> review hierarchy.
// An empty account or location list is not an error. A failure partway
// through returns whatever was collected so far together with the error;
// callers decide whether a partial batch is usable.
func (c *Client) CollectAll(ctx context.Context) ([]RawReview, error) {
	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var all []RawReview
	for _, account := range accounts {
		locations, err := c.ListLocations(ctx, account.Name)
		if err != nil {
			return all, err
		}
		for _, loc := range locations {
			reviews, err := c.ListReviews(ctx, loc.Name)
			all = append(all, reviews...)
			if err != nil {
				return all, err
			}
		}
	}
	return all, nil
}

// CollectStore fetches only the reviews of one location.
func (c *Client) CollectStore(ctx context.Context, storeID string) ([]RawReview, error) {
	return c.ListReviews(ctx, storeID)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
