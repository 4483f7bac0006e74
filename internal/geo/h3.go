package geo

import (
	"github.com/uber/h3-go/v4"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// H3 resolution for catalog bucketing.
// See: https://h3geo.org/docs/core-library/restable
const (
	// H3ResolutionCatalog is used to bucket catalog providers (~1.2 km
	// edge, ~5.16 km² per cell), so a radius query only inspects nearby
	// buckets instead of the whole catalog.
	H3ResolutionCatalog = 7

	// h3CatalogEdgeKm is the approximate edge length at H3ResolutionCatalog,
	// used to size the k-ring for a radius.
	h3CatalogEdgeKm = 1.2
)

// CellForLocation returns the catalog-resolution H3 cell for a location,
// as a hex string suitable for map keys.
func CellForLocation(loc models.Location) string {
	cell, err := h3.LatLngToCell(h3.NewLatLng(loc.Latitude, loc.Longitude), H3ResolutionCatalog)
	if err != nil {
		return ""
	}
	return cell.String()
}

// CoveringCells returns the H3 cells whose union covers a circle of
// radiusKm around near. The k-ring is sized one ring beyond the radius so
// providers just inside the boundary are never missed.
func CoveringCells(near models.Location, radiusKm float64) []string {
	origin, err := h3.LatLngToCell(h3.NewLatLng(near.Latitude, near.Longitude), H3ResolutionCatalog)
	if err != nil {
		return nil
	}
	k := int(radiusKm/h3CatalogEdgeKm) + 2
	cells, err := origin.GridDisk(k)
	if err != nil {
		return []string{origin.String()}
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}
