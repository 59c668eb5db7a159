// Package maps is the gateway to the Google Maps geocoding and place
// autocomplete APIs.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/munch-hunt/api/internal/cache"
	"github.com/munch-hunt/api/internal/munch"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// ErrNoResults is returned when the provider answers successfully but finds
// nothing for the query.
var ErrNoResults = errors.New("no geocoding results for query")

// UpstreamError carries the provider's HTTP status so proxy handlers can pass
// it through verbatim.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("maps upstream returned status %d", e.Status)
}

// Client calls the Google Maps REST APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	loader     *cache.Loader
}

// NewClient builds a maps client. A nil httpClient gets a sane default and a
// nil loader disables caching.
func NewClient(httpClient *http.Client, apiKey string, loader *cache.Loader) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if loader == nil {
		loader = cache.NewLoader(nil, 0)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		loader:     loader,
	}
}

// WithBaseURL points the client at a different host, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// GeocodeResult is a resolved forward-geocode lookup.
type GeocodeResult struct {
	Coordinate       munch.Coordinate
	FormattedAddress string
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates and the provider's
// canonical formatted address.
func (c *Client) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	body, err := c.RawGeocode(ctx, params)
	if err != nil {
		return GeocodeResult{}, err
	}

	var payload geocodeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(payload.Results) == 0 {
		return GeocodeResult{}, ErrNoResults
	}

	location := payload.Results[0].Geometry.Location
	return GeocodeResult{
		Coordinate: munch.Coordinate{
			Latitude:  fmt.Sprintf("%v", location.Lat),
			Longitude: fmt.Sprintf("%v", location.Lng),
		},
		FormattedAddress: payload.Results[0].FormattedAddress,
	}, nil
}

// ReverseGeocode resolves coordinates to a human-readable address.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude string) (string, error) {
	params := url.Values{}
	params.Set("latlng", latitude+","+longitude)

	body, err := c.RawGeocode(ctx, params)
	if err != nil {
		return "", err
	}

	var payload geocodeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	if len(payload.Results) == 0 {
		return "", ErrNoResults
	}
	return payload.Results[0].FormattedAddress, nil
}

// Prediction is a single autocomplete suggestion.
type Prediction struct {
	Description string   `json:"description"`
	PlaceID     string   `json:"placeID"`
	Types       []string `json:"types"`
}

type autocompleteResponse struct {
	Predictions []struct {
		Description string   `json:"description"`
		PlaceID     string   `json:"place_id"`
		Types       []string `json:"types"`
	} `json:"predictions"`
}

// Autocomplete suggests place completions for a partial address input.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	body, err := c.RawAutocomplete(ctx, input)
	if err != nil {
		return nil, err
	}

	var payload autocompleteResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	predictions := make([]Prediction, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		predictions = append(predictions, Prediction{
			Description: p.Description,
			PlaceID:     p.PlaceID,
			Types:       p.Types,
		})
	}
	return predictions, nil
}

// RawGeocode forwards a geocode query and returns the provider body
// verbatim, for the pass-through proxy endpoints.
func (c *Client) RawGeocode(ctx context.Context, params url.Values) ([]byte, error) {
	return c.get(ctx, "/geocode/json", params)
}

// RawAutocomplete forwards an autocomplete query and returns the provider
// body verbatim.
func (c *Client) RawAutocomplete(ctx context.Context, input string) ([]byte, error) {
	params := url.Values{}
	params.Set("input", input)
	return c.get(ctx, "/place/autocomplete/json", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	key := "maps:" + path + "?" + params.Encode()

	return c.loader.Do(ctx, key, func(ctx context.Context) ([]byte, error) {
		query := url.Values{}
		for name, values := range params {
			query[name] = values
		}
		query.Set("key", c.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("build maps request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("maps request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read maps response: %w", err)
		}
		return body, nil
	})
}
