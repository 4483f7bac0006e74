// Package geo: OpenStreetMap Nominatim geocoding client.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Constants for the Nominatim client.
const (
	// DefaultNominatimBaseURL is the public Nominatim endpoint.
	DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultGeocodeTimeout bounds one geocoding request.
	DefaultGeocodeTimeout = 10 * time.Second
	// nominatimUserAgent identifies this service per the Nominatim usage policy.
	nominatimUserAgent = "hudumafinder/1.0 (tanzania-service-chatbot)"
)

// NominatimClient resolves free-text place names through the OSM Nominatim
// search API, biased toward Tanzania.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *courtesyLimiter
}

// NominatimOption configures a NominatimClient.
type NominatimOption func(*NominatimClient)

// WithNominatimBaseURL overrides the API endpoint (used in tests).
func WithNominatimBaseURL(u string) NominatimOption {
	return func(c *NominatimClient) { c.baseURL = u }
}

// WithGeocodeTimeout overrides the per-request timeout.
func WithGeocodeTimeout(d time.Duration) NominatimOption {
	return func(c *NominatimClient) { c.httpClient.Timeout = d }
}

// NewNominatimClient creates a Nominatim geocoding client.
func NewNominatimClient(opts ...NominatimOption) *NominatimClient {
	c := &NominatimClient{
		baseURL:    DefaultNominatimBaseURL,
		httpClient: &http.Client{Timeout: DefaultGeocodeTimeout},
		limiter:    newCourtesyLimiter(DefaultCourtesyInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimResult is one entry of the Nominatim search response.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a place name to coordinates. The query is biased to
// Dar es Salaam, Tanzania unless the text already names the country or
// city, mirroring how users phrase locations here.
func (c *NominatimClient) Geocode(ctx context.Context, text string) (lat, lon float64, displayName string, err error) {
	query := strings.TrimSpace(text)
	lower := strings.ToLower(query)
	if !strings.Contains(lower, "tanzania") && !strings.Contains(lower, "dar es salaam") {
		query = query + ", Dar es Salaam, Tanzania"
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "tz")
	params.Set("q", query)

	body, err := c.doRequest(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()))
	if err != nil {
		return 0, 0, "", err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, "", fmt.Errorf("failed to parse Nominatim response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, "", fmt.Errorf("no Nominatim results for %q", text)
	}

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid latitude in Nominatim response: %w", err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid longitude in Nominatim response: %w", err)
	}

	slog.Debug("Nominatim geocode succeeded", "query", text, "lat", lat, "lon", lon)
	return lat, lon, results[0].DisplayName, nil
}

// doRequest performs one rate-limited GET against the Nominatim API.
func (c *NominatimClient) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	c.limiter.Wait(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
