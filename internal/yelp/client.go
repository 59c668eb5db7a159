// Package yelp is the gateway to the Yelp Fusion business directory.
package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/munch-hunt/api/internal/cache"
	"github.com/munch-hunt/api/internal/munch"
)

const (
	defaultBaseURL = "https://api.yelp.com/v3"

	// Fixed search envelope: everything within ~40km, first 50 hits.
	searchRadiusMeters = "40000"
	searchLimit        = "50"

	// The nearby-category probe is restricted to restaurants.
	nearbyCategoryFilter = "restaurants"
)

// UpstreamError carries the provider's HTTP status for pass-through.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("yelp upstream returned status %d", e.Status)
}

// Client calls the Yelp Fusion REST API with a bearer key.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	loader      *cache.Loader
	phoneRegion string
}

// NewClient builds a Yelp client. A nil httpClient gets a sane default and a
// nil loader disables caching.
func NewClient(httpClient *http.Client, apiKey string, loader *cache.Loader) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if loader == nil {
		loader = cache.NewLoader(nil, 0)
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		loader:      loader,
		phoneRegion: "US",
	}
}

// WithBaseURL points the client at a different host, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type businessPayload struct {
	ID           string  `json:"id"`
	Alias        string  `json:"alias"`
	Name         string  `json:"name"`
	ImageURL     string  `json:"image_url"`
	URL          string  `json:"url"`
	IsClosed     bool    `json:"is_closed"`
	Phone        string  `json:"phone"`
	DisplayPhone string  `json:"display_phone"`
	Distance     float64 `json:"distance"`
	Rating       float64 `json:"rating"`
	Price        string  `json:"price"`
	Coordinates  struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Location struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	Transactions []string `json:"transactions"`
	Categories   []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`
}

type searchResponse struct {
	Businesses []businessPayload `json:"businesses"`
	Total      int               `json:"total"`
}

// SearchRestaurants returns the nearby businesses matching the cuisine term,
// reshaped into domain records. The working list for a (cuisine, location)
// pair is replaced wholesale by each call; nothing is patched in place.
func (c *Client) SearchRestaurants(ctx context.Context, food, latitude, longitude string) ([]munch.Restaurant, error) {
	body, err := c.RawSearch(ctx, food, latitude, longitude)
	if err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode business search response: %w", err)
	}

	restaurants := make([]munch.Restaurant, 0, len(payload.Businesses))
	for _, b := range payload.Businesses {
		restaurants = append(restaurants, munch.Restaurant{
			ID:             b.ID,
			Alias:          b.Alias,
			Name:           b.Name,
			DisplayAddress: strings.Join(b.Location.DisplayAddress, ", "),
			DisplayPhone:   munch.DisplayPhone(b.DisplayPhone, b.Phone, c.phoneRegion),
			Phone:          b.Phone,
			Coordinates: munch.LatLng{
				Latitude:  b.Coordinates.Latitude,
				Longitude: b.Coordinates.Longitude,
			},
			Distance:     b.Distance,
			Price:        b.Price,
			Rating:       b.Rating,
			IsClosed:     b.IsClosed,
			ImageURL:     b.ImageURL,
			URL:          b.URL,
			Transactions: b.Transactions,
		})
	}
	return restaurants, nil
}

// NearbyCategoryTitles returns the unique category titles seen across the
// restaurants near the given coordinates, in first-seen order.
func (c *Client) NearbyCategoryTitles(ctx context.Context, latitude, longitude string) ([]string, error) {
	body, err := c.RawNearbyCategories(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode category search response: %w", err)
	}

	seen := make(map[string]struct{})
	var titles []string
	for _, b := range payload.Businesses {
		for _, category := range b.Categories {
			if _, ok := seen[category.Title]; ok {
				continue
			}
			seen[category.Title] = struct{}{}
			titles = append(titles, category.Title)
		}
	}
	return titles, nil
}

type detailPayload struct {
	businessPayload
	Photos []string `json:"photos"`
	Hours  []struct {
		HoursType string `json:"hours_type"`
		IsOpenNow bool   `json:"is_open_now"`
		Open      []struct {
			Day         int    `json:"day"`
			Start       string `json:"start"`
			End         string `json:"end"`
			IsOvernight bool   `json:"is_overnight"`
		} `json:"open"`
	} `json:"hours"`
}

// GetBusiness fetches the lazy detail record for one restaurant: categories,
// photos and formatted hours by day.
func (c *Client) GetBusiness(ctx context.Context, businessID string) (munch.BusinessDetail, error) {
	body, err := c.RawBusiness(ctx, businessID)
	if err != nil {
		return munch.BusinessDetail{}, err
	}

	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return munch.BusinessDetail{}, fmt.Errorf("decode business detail response: %w", err)
	}

	detail := munch.BusinessDetail{
		ID:     payload.ID,
		Name:   payload.Name,
		URL:    payload.URL,
		Photos: payload.Photos,
	}
	for _, category := range payload.Categories {
		detail.Categories = append(detail.Categories, munch.Category{
			Alias: category.Alias,
			Title: category.Title,
		})
	}
	for _, block := range payload.Hours {
		detail.IsOpenNow = detail.IsOpenNow || block.IsOpenNow
		for _, window := range block.Open {
			detail.Hours = append(detail.Hours, munch.OpenHours{
				Day:         munch.DayName(window.Day),
				Hours:       munch.FormatTimeRange(window.Start, window.End),
				IsOvernight: window.IsOvernight,
			})
		}
	}
	return detail, nil
}

// RawSearch forwards a business search and returns the provider body
// verbatim, for the pass-through proxy endpoints.
func (c *Client) RawSearch(ctx context.Context, food, latitude, longitude string) ([]byte, error) {
	params := url.Values{}
	params.Set("term", food)
	params.Set("latitude", latitude)
	params.Set("longitude", longitude)
	params.Set("radius", searchRadiusMeters)
	params.Set("limit", searchLimit)
	return c.get(ctx, "/businesses/search", params)
}

// RawNearbyCategories forwards the fixed-category nearby search verbatim.
func (c *Client) RawNearbyCategories(ctx context.Context, latitude, longitude string) ([]byte, error) {
	params := url.Values{}
	params.Set("latitude", latitude)
	params.Set("longitude", longitude)
	params.Set("categories", nearbyCategoryFilter)
	return c.get(ctx, "/businesses/search", params)
}

// RawBusiness forwards a single-business lookup verbatim.
func (c *Client) RawBusiness(ctx context.Context, businessID string) ([]byte, error) {
	return c.get(ctx, "/businesses/"+url.PathEscape(businessID), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	uri := c.baseURL + path
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	return c.loader.Do(ctx, "yelp:"+path+"?"+params.Encode(), func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("build yelp request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("yelp request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read yelp response: %w", err)
		}
		return body, nil
	})
}
