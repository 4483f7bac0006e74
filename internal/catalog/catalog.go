// Package catalog holds the set of known service providers and answers
// radius/budget-filtered queries over them.
//
// Static seed data is merged with live discovery results per query;
// stored records are never mutated and every call returns a fresh slice.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/models"
)

// DefaultSearchRadiusKm is the radius used when the caller does not give one.
const DefaultSearchRadiusKm = 10.0

// WidenedSearchRadiusKm is the radius used for the automatic retry when a
// query with the default radius matches nothing.
const WidenedSearchRadiusKm = 20.0

// Discoverer is the live POI lookup capability. A failed backend yields an
// empty slice, never an error; the catalog then serves static data alone.
type Discoverer interface {
	DiscoverProviders(ctx context.Context, near models.Location, serviceType models.ServiceType, radiusKm float64) []models.ServiceProvider
}

// Catalog is the provider database: immutable seed data bucketed by H3
// cell, plus an optional live discoverer merged in per query.
type Catalog struct {
	providers  []models.ServiceProvider
	byCell     map[string][]int // H3 cell -> indexes into providers
	discoverer Discoverer
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDiscoverer attaches a live POI discoverer whose results are merged
// with static matches (discovered entries win on id conflict).
func WithDiscoverer(d Discoverer) Option {
	return func(c *Catalog) { c.discoverer = d }
}

// New builds a catalog from seed providers. Malformed seed data is a
// startup-time misconfiguration and fails construction.
func New(seed []models.ServiceProvider, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		providers: make([]models.ServiceProvider, len(seed)),
		byCell:    make(map[string][]int),
	}
	copy(c.providers, seed)

	seen := make(map[string]bool, len(seed))
	for i := range c.providers {
		p := &c.providers[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid seed provider: %w", err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate seed provider id %s", p.ID)
		}
		seen[p.ID] = true

		cell := geo.CellForLocation(p.Location)
		c.byCell[cell] = append(c.byCell[cell], i)
	}

	for _, opt := range opts {
		opt(c)
	}
	slog.Debug("Catalog loaded", "providers", len(c.providers), "cells", len(c.byCell))
	return c, nil
}

// Len returns the number of static providers.
func (c *Catalog) Len() int {
	return len(c.providers)
}

// Find returns providers of the given service type within radiusKm of
// near, optionally restricted to price ranges overlapping the budget
// bucket. Live discovery results for the same query are merged with the
// static matches, de-duplicated by id with discovered entries winning,
// before filtering. The returned slice is fresh on every call.
func (c *Catalog) Find(ctx context.Context, serviceType models.ServiceType, near models.Location, radiusKm float64, budget *models.BudgetRange) []models.ServiceProvider {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	// Static candidates: only the H3 buckets covering the radius.
	candidates := make(map[string]models.ServiceProvider)
	for _, cell := range geo.CoveringCells(near, radiusKm) {
		for _, idx := range c.byCell[cell] {
			p := c.providers[idx]
			candidates[p.ID] = p
		}
	}

	// Merge live discovery; discovered entries win on id conflict.
	if c.discoverer != nil {
		for _, p := range c.discoverer.DiscoverProviders(ctx, near, serviceType, radiusKm) {
			candidates[p.ID] = p
		}
	}

	results := make([]models.ServiceProvider, 0, len(candidates))
	for _, p := range candidates {
		if p.ServiceType != serviceType {
			continue
		}
		if geo.Distance(near, p.Location) > radiusKm {
			continue
		}
		if budget != nil && !budget.Overlaps(p.PriceRange) {
			continue
		}
		results = append(results, p)
	}

	slog.Debug("Catalog Find completed", "service_type", serviceType, "radius_km", radiusKm, "budget_set", budget != nil, "count", len(results))
	return results
}
