// Package geo provides geocoding, POI discovery, and distance calculations
// for HudumaFinder.
//
// Free-text locations are resolved against the OpenStreetMap Nominatim API
// when the backend is healthy, with a static Tanzanian gazetteer as
// fallback. Nearby providers are discovered through the Overpass API.
package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle (haversine) distance between two
// locations in kilometers. Both the geo service and the ranker use this
// function so distances agree everywhere.
func Distance(a, b models.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// coordinatePattern matches "lat,lon" pairs such as "-6.79, 39.21".
var coordinatePattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// ParseCoordinates recognizes an explicit "lat,lon" pair in user text.
// Coordinate-pair syntax is checked before any name lookup is attempted.
func ParseCoordinates(text string) (models.Location, bool) {
	m := coordinatePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return models.Location{}, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return models.Location{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return models.Location{}, false
	}
	return models.Location{
		Latitude:  lat,
		Longitude: lon,
		AreaName:  "Shared location",
	}, true
}

// AccessibilityForDistance classifies how a user is expected to reach a
// point: walking within 1 km, public transport within 5 km, otherwise a
// vehicle is required.
func AccessibilityForDistance(km float64) models.Accessibility {
	switch {
	case km <= 1.0:
		return models.AccessWalking
	case km <= 5.0:
		return models.AccessPublicTransport
	default:
		return models.AccessVehicle
	}
}
