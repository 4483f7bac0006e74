// Package geo: Overpass API client for discovering provider-like points of
// interest near a location.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Constants for the Overpass client.
const (
	// DefaultOverpassBaseURL is the public Overpass interpreter endpoint.
	DefaultOverpassBaseURL = "https://overpass-api.de"
	// DefaultDiscoveryTimeout bounds one discovery request.
	DefaultDiscoveryTimeout = 25 * time.Second
	// MaxDiscoveredProviders caps discovery results so one query cannot
	// overwhelm the conversation.
	MaxDiscoveredProviders = 20
)

// osmTagQueries maps each service type to the OSM tag selectors that
// identify matching points of interest.
var osmTagQueries = map[models.ServiceType][]string{
	models.ServiceAutoRepair: {`["shop"="car_repair"]`, `["shop"="car"]`, `["amenity"="car_wash"]`, `["shop"="tyres"]`},
	models.ServiceMedical:    {`["amenity"="hospital"]`, `["amenity"="clinic"]`, `["amenity"="doctors"]`, `["amenity"="pharmacy"]`},
	models.ServiceHairSalon:  {`["shop"="hairdresser"]`, `["shop"="beauty"]`},
	models.ServiceRestaurant: {`["amenity"="restaurant"]`, `["amenity"="cafe"]`, `["amenity"="fast_food"]`},
	models.ServicePlumbing:   {`["craft"="plumber"]`, `["shop"="hardware"]`},
	models.ServiceElectrical: {`["craft"="electrician"]`, `["shop"="electronics"]`},
	models.ServiceCleaning:   {`["shop"="laundry"]`},
	models.ServiceTutoring:   {`["amenity"="school"]`, `["amenity"="college"]`, `["amenity"="university"]`},
}

// estimatedPriceRanges gives best-effort TZS price bands for discovered
// providers, which OSM data lacks.
var estimatedPriceRanges = map[models.ServiceType]models.PriceRange{
	models.ServiceAutoRepair: {Min: 10000, Max: 50000},
	models.ServiceMedical:    {Min: 5000, Max: 20000},
	models.ServiceHairSalon:  {Min: 3000, Max: 15000},
	models.ServiceRestaurant: {Min: 5000, Max: 25000},
	models.ServicePlumbing:   {Min: 5000, Max: 20000},
	models.ServiceElectrical: {Min: 3000, Max: 15000},
	models.ServiceCleaning:   {Min: 2000, Max: 10000},
	models.ServiceTutoring:   {Min: 5000, Max: 20000},
}

// defaultEstimatedPriceRange is used for service types without an entry.
var defaultEstimatedPriceRange = models.PriceRange{Min: 5000, Max: 20000}

// defaultDiscoveredRating is the best-effort rating for discovered
// providers; OSM carries no review data.
const defaultDiscoveredRating = 4.0

// OverpassClient discovers provider-like POIs through the Overpass API.
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *courtesyLimiter
}

// OverpassOption configures an OverpassClient.
type OverpassOption func(*OverpassClient)

// WithOverpassBaseURL overrides the API endpoint (used in tests).
func WithOverpassBaseURL(u string) OverpassOption {
	return func(c *OverpassClient) { c.baseURL = u }
}

// WithDiscoveryTimeout overrides the per-request timeout.
func WithDiscoveryTimeout(d time.Duration) OverpassOption {
	return func(c *OverpassClient) { c.httpClient.Timeout = d }
}

// NewOverpassClient creates an Overpass discovery client.
func NewOverpassClient(opts ...OverpassOption) *OverpassClient {
	c := &OverpassClient{
		baseURL:    DefaultOverpassBaseURL,
		httpClient: &http.Client{Timeout: DefaultDiscoveryTimeout},
		limiter:    newCourtesyLimiter(DefaultCourtesyInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// overpassResponse is the subset of the Overpass JSON output we consume.
type overpassResponse struct {
	Elements []struct {
		ID     int64             `json:"id"`
		Lat    float64           `json:"lat"`
		Lon    float64           `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center,omitempty"`
		Tags map[string]string `json:"tags,omitempty"`
	} `json:"elements"`
}

// Discover queries the Overpass API for POIs matching the service type
// within radiusKm of near. Provider records are synthesized with
// best-effort defaults for the fields OSM lacks (price range, rating).
// Backend failures are returned as errors for the caller's fallback path.
func (c *OverpassClient) Discover(ctx context.Context, near models.Location, serviceType models.ServiceType, radiusKm float64) ([]models.ServiceProvider, error) {
	tags, ok := osmTagQueries[serviceType]
	if !ok {
		slog.Debug("Overpass no tag mapping for service type", "service_type", serviceType)
		return nil, nil
	}

	bbox := boundingBox(near, radiusKm)
	providers := make([]models.ServiceProvider, 0, MaxDiscoveredProviders)

	for _, tag := range tags {
		if len(providers) >= MaxDiscoveredProviders {
			break
		}

		query := fmt.Sprintf(`[out:json][timeout:25];(node%s(%s);way%s(%s););out center;`, tag, bbox, tag, bbox)
		resp, err := c.runQuery(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("overpass query failed for %s: %w", serviceType, err)
		}

		for _, el := range resp.Elements {
			name, hasName := el.Tags["name"]
			if !hasName {
				continue
			}
			lat, lon := el.Lat, el.Lon
			if el.Center != nil {
				lat, lon = el.Center.Lat, el.Center.Lon
			}
			loc := models.Location{
				Latitude:  lat,
				Longitude: lon,
				AreaName:  name,
				Landmark:  landmarkFromTags(el.Tags),
			}
			dist := Distance(near, loc)
			if dist > radiusKm {
				continue
			}

			pr, ok := estimatedPriceRanges[serviceType]
			if !ok {
				pr = defaultEstimatedPriceRange
			}
			providers = append(providers, models.ServiceProvider{
				ID:             fmt.Sprintf("osm_%d", el.ID),
				Name:           name,
				ServiceType:    serviceType,
				Location:       loc,
				PriceRange:     pr,
				Rating:         defaultDiscoveredRating,
				Description:    describePOI(el.Tags, serviceType),
				Accessibility:  AccessibilityForDistance(dist),
				ContactInfo:    contactFromTags(el.Tags),
				OperatingHours: hoursFromTags(el.Tags),
			})
			if len(providers) >= MaxDiscoveredProviders {
				break
			}
		}
	}

	slog.Debug("Overpass discovery finished", "service_type", serviceType, "count", len(providers))
	return providers, nil
}

// runQuery executes one rate-limited Overpass query.
func (c *OverpassClient) runQuery(ctx context.Context, query string) (*overpassResponse, error) {
	c.limiter.Wait(ctx)

	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}
	return &parsed, nil
}

// boundingBox derives the Overpass "south,west,north,east" box around a
// point for the given radius. One degree of latitude is ~111 km; the
// longitude span widens with distance from the equator.
func boundingBox(near models.Location, radiusKm float64) string {
	latOffset := radiusKm / 111.0
	lonScale := math.Cos(near.Latitude * math.Pi / 180)
	if lonScale < 0.1 {
		lonScale = 0.1
	}
	lonOffset := radiusKm / (111.0 * lonScale)
	return fmt.Sprintf("%f,%f,%f,%f",
		near.Latitude-latOffset, near.Longitude-lonOffset,
		near.Latitude+latOffset, near.Longitude+lonOffset)
}

func landmarkFromTags(tags map[string]string) string {
	for _, key := range []string{"addr:street", "addr:suburb", "addr:neighbourhood"} {
		if v, ok := tags[key]; ok {
			return v
		}
	}
	return "Dar es Salaam"
}

func contactFromTags(tags map[string]string) string {
	if v, ok := tags["phone"]; ok {
		return v
	}
	if v, ok := tags["contact:phone"]; ok {
		return v
	}
	return "+255-XXX-XXXXXX"
}

func hoursFromTags(tags map[string]string) string {
	if v, ok := tags["opening_hours"]; ok {
		return v
	}
	return "Mon-Sat 8AM-6PM"
}

func describePOI(tags map[string]string, serviceType models.ServiceType) string {
	name := tags["name"]
	desc := fmt.Sprintf("%s - %s services", name, serviceType.Label())
	if hours, ok := tags["opening_hours"]; ok {
		desc += ". Hours: " + hours
	}
	return desc
}
