// Package geo: the geo service combining the live OSM backend with the
// static fallback, selected by runtime backend health.
package geo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Health gating constants.
const (
	// DefaultFailureThreshold is the number of consecutive backend
	// failures after which live calls are skipped.
	DefaultFailureThreshold = 3
	// DefaultBackendCooldown is how long the live backend is skipped
	// after reaching the failure threshold.
	DefaultBackendCooldown = 1 * time.Minute
)

// backendHealth tracks consecutive failures of the live backend so the
// fallback path is chosen up front instead of waiting on a dead API.
type backendHealth struct {
	mu        sync.Mutex
	failures  int
	threshold int
	cooldown  time.Duration
	downUntil time.Time
}

func newBackendHealth() *backendHealth {
	return &backendHealth{threshold: DefaultFailureThreshold, cooldown: DefaultBackendCooldown}
}

func (h *backendHealth) healthy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failures >= h.threshold {
		if time.Now().Before(h.downUntil) {
			return false
		}
		// Cooldown elapsed; allow one probe.
		h.failures = h.threshold - 1
	}
	return true
}

func (h *backendHealth) recordSuccess() {
	h.mu.Lock()
	h.failures = 0
	h.mu.Unlock()
}

func (h *backendHealth) recordFailure() {
	h.mu.Lock()
	h.failures++
	if h.failures >= h.threshold {
		h.downUntil = time.Now().Add(h.cooldown)
	}
	h.mu.Unlock()
}

// Service resolves free-text locations and discovers nearby providers.
// The live Nominatim/Overpass backends are used while healthy; geocoding
// falls back to the static gazetteer and discovery to an empty result,
// so a backend outage is never surfaced as a fatal error.
type Service struct {
	nominatim *NominatimClient
	overpass  *OverpassClient
	gazetteer *Gazetteer
	health    *backendHealth
	liveOff   bool
}

// Option configures the geo service.
type Option func(*Service)

// WithNominatim injects a configured Nominatim client.
func WithNominatim(c *NominatimClient) Option {
	return func(s *Service) { s.nominatim = c }
}

// WithOverpass injects a configured Overpass client.
func WithOverpass(c *OverpassClient) Option {
	return func(s *Service) { s.overpass = c }
}

// WithLiveBackendDisabled forces static-fallback mode (offline/console use).
func WithLiveBackendDisabled() Option {
	return func(s *Service) { s.liveOff = true }
}

// NewService creates a geo service with default live clients and the
// static gazetteer fallback.
func NewService(opts ...Option) *Service {
	s := &Service{
		nominatim: NewNominatimClient(),
		overpass:  NewOverpassClient(),
		gazetteer: NewGazetteer(),
		health:    newBackendHealth(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geocode resolves free-text user input into a Location.
//
// Coordinate-pair syntax ("lat,lon") is recognized before any name lookup.
// The live backend is only consulted while healthy; on failure or timeout
// the static gazetteer is tried, and models.ErrLocationNotFound is
// returned when nothing matches. Geocode never fails for backend reasons.
func (s *Service) Geocode(ctx context.Context, text string) (models.Location, error) {
	if loc, ok := ParseCoordinates(text); ok {
		slog.Debug("Geocode recognized coordinate pair", "lat", loc.Latitude, "lon", loc.Longitude)
		return loc, nil
	}

	// The gazetteer knows the common phrasings; checking it first avoids a
	// network round trip for the places users actually name.
	if loc, err := s.gazetteer.Geocode(text); err == nil {
		return loc, nil
	}

	if !s.liveOff && s.health.healthy() {
		lat, lon, displayName, err := s.nominatim.Geocode(ctx, text)
		if err == nil {
			s.health.recordSuccess()
			return models.Location{
				Latitude:  lat,
				Longitude: lon,
				AreaName:  titleCase(strings.TrimSpace(text)),
				Landmark:  landmarkFromAddress(displayName),
			}, nil
		}
		s.health.recordFailure()
		slog.Warn("Geocode live backend failed, using fallback", "error", err, "query", text)
	}

	return models.Location{}, models.ErrLocationNotFound
}

// RecognizeStatic reports whether the text already contains a coordinate
// pair or a known place name, without touching the network. The engine
// uses this for the WELCOME short-circuit, where an ordinary greeting must
// not trigger a backend lookup.
func (s *Service) RecognizeStatic(text string) (models.Location, bool) {
	if loc, ok := ParseCoordinates(text); ok {
		return loc, true
	}
	if loc, err := s.gazetteer.Geocode(text); err == nil {
		return loc, true
	}
	return models.Location{}, false
}

// DiscoverProviders queries the POI backend for providers near a location.
// A failed or unhealthy backend yields an empty slice; the caller falls
// back to the static catalog.
func (s *Service) DiscoverProviders(ctx context.Context, near models.Location, serviceType models.ServiceType, radiusKm float64) []models.ServiceProvider {
	if s.liveOff || !s.health.healthy() {
		slog.Debug("DiscoverProviders skipping live backend", "live_off", s.liveOff)
		return nil
	}

	providers, err := s.overpass.Discover(ctx, near, serviceType, radiusKm)
	if err != nil {
		s.health.recordFailure()
		slog.Warn("DiscoverProviders backend failed, returning empty", "error", err, "service_type", serviceType)
		return nil
	}
	s.health.recordSuccess()
	return providers
}

// landmarkFromAddress extracts a known landmark or area name from a
// geocoder display address, defaulting to the city.
func landmarkFromAddress(address string) string {
	lower := strings.ToLower(address)
	for _, table := range [][]gazetteerEntry{darLandmarks, darAreas} {
		for _, e := range table {
			if strings.Contains(lower, e.name) {
				return titleCase(e.name)
			}
		}
	}
	return "Dar es Salaam"
}
