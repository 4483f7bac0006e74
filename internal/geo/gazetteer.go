// Package geo: static Tanzanian gazetteer used as the geocoding fallback.
package geo

import (
	"log/slog"
	"strings"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// gazetteerEntry is one known place keyed by a case-insensitive name.
type gazetteerEntry struct {
	name     string
	lat, lon float64
	landmark string
}

// Major Tanzanian cities.
var tanzanianCities = []gazetteerEntry{
	{"dar es salaam", -6.7924, 39.2083, "Dar es Salaam"},
	{"dodoma", -6.1730, 35.7419, "Dodoma"},
	{"mwanza", -2.5167, 32.9000, "Mwanza"},
	{"arusha", -3.3667, 36.6833, "Arusha"},
	{"mbeya", -8.9000, 33.4500, "Mbeya"},
	{"morogoro", -6.8167, 37.6667, "Morogoro"},
	{"tanga", -5.0667, 39.1000, "Tanga"},
	{"kigoma", -4.8833, 29.6333, "Kigoma"},
	{"tabora", -5.0167, 32.8000, "Tabora"},
	{"iringa", -7.7667, 35.7000, "Iringa"},
	{"singida", -4.8167, 34.7500, "Singida"},
	{"musoma", -1.5000, 33.8000, "Musoma"},
	{"songea", -10.6833, 35.6500, "Songea"},
	{"mpanda", -6.3667, 31.0500, "Mpanda"},
}

// Dar es Salaam districts and areas.
var darAreas = []gazetteerEntry{
	{"kinondoni", -6.7667, 39.1667, "Dar es Salaam - Kinondoni"},
	{"ilala", -6.8167, 39.1833, "Dar es Salaam - Ilala"},
	{"temeke", -6.8667, 39.2500, "Dar es Salaam - Temeke"},
	{"ubungo", -6.7833, 39.2333, "Dar es Salaam - Ubungo"},
	{"kigamboni", -6.8333, 39.3167, "Dar es Salaam - Kigamboni"},
	{"masaki", -6.7333, 39.2833, "Dar es Salaam - Masaki"},
	{"msasani", -6.7467, 39.2767, "Dar es Salaam - Msasani"},
	{"oyster bay", -6.7589, 39.2850, "Dar es Salaam - Oyster Bay"},
	{"upanga", -6.8050, 39.2800, "Dar es Salaam - Upanga"},
	{"mikocheni", -6.7667, 39.2333, "Dar es Salaam - Mikocheni"},
	{"posta", -6.8167, 39.2833, "Dar es Salaam - Posta"},
	{"jamhuri", -6.8000, 39.2833, "Dar es Salaam - Jamhuri"},
	{"mnazi mmoja", -6.8167, 39.2833, "Dar es Salaam - Mnazi Mmoja"},
	{"kariakoo", -6.8167, 39.2667, "Dar es Salaam - Kariakoo"},
	{"uhuru road", -6.8167, 39.2833, "Dar es Salaam - Uhuru Road"},
	{"samora avenue", -6.8167, 39.2833, "Dar es Salaam - Samora Avenue"},
}

// Well-known Dar es Salaam landmarks.
var darLandmarks = []gazetteerEntry{
	{"julius nyerere international airport", -6.8781, 39.2026, "Julius Nyerere International Airport"},
	{"kariakoo market", -6.8167, 39.2667, "Kariakoo Market"},
	{"mlimani city", -6.7667, 39.2167, "Mlimani City Shopping Mall"},
	{"national museum", -6.8150, 39.2894, "National Museum"},
	{"state house", -6.8000, 39.2833, "State House"},
	{"uhuru monument", -6.8167, 39.2833, "Uhuru Monument"},
	{"slipway", -6.7464, 39.2711, "Slipway"},
	{"port of dar es salaam", -6.8167, 39.2833, "Port of Dar es Salaam"},
}

// Gazetteer is the static fallback geocoder. Lookup is a case-insensitive
// substring match against known cities, districts, and landmarks; areas are
// checked before cities so "Masaki, Dar es Salaam" resolves to Masaki
// rather than the city center.
type Gazetteer struct{}

// NewGazetteer creates the static fallback geocoder.
func NewGazetteer() *Gazetteer {
	return &Gazetteer{}
}

// Geocode resolves a free-text place name against the static tables.
// Returns models.ErrLocationNotFound when no entry matches; never fails
// for any other reason.
func (g *Gazetteer) Geocode(text string) (models.Location, error) {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return models.Location{}, models.ErrLocationNotFound
	}

	for _, table := range [][]gazetteerEntry{darAreas, darLandmarks, tanzanianCities} {
		for _, e := range table {
			if strings.Contains(query, e.name) || strings.Contains(query, strings.ReplaceAll(e.name, " ", "")) {
				slog.Debug("Gazetteer matched entry", "query", text, "entry", e.name)
				return models.Location{
					Latitude:  e.lat,
					Longitude: e.lon,
					AreaName:  titleCase(e.name),
					Landmark:  e.landmark,
				}, nil
			}
		}
	}

	slog.Debug("Gazetteer no match", "query", text)
	return models.Location{}, models.ErrLocationNotFound
}

// titleCase capitalizes each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
