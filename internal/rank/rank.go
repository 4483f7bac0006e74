// Package rank orders filtered provider sets into a deterministic total
// order for display and index-based selection.
//
// Rank is a pure function over immutable inputs: the same providers,
// reference point, and budget always produce the identical sequence.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/models"
)

// Score weights. Distance dominates, then rating, then budget fit; the
// exact values are a design choice documented in DESIGN.md.
const (
	weightDistance = 0.5
	weightRating   = 0.3
	weightBudget   = 0.2
)

// Score computes the composite score of one provider against a reference
// location and optional budget bucket. Higher is better.
func Score(p models.ServiceProvider, reference models.Location, budget *models.BudgetRange) float64 {
	km := geo.Distance(reference, p.Location)
	distScore := 1.0 / (1.0 + km)
	ratingScore := p.Rating / 5.0
	return weightDistance*distScore + weightRating*ratingScore + weightBudget*budgetFit(p.PriceRange, budget)
}

// budgetFit is 1.0 when the provider's price range overlaps the requested
// bucket, and decays toward 0 with the gap to the nearest bucket bound
// relative to the bucket span. Without a bucket every provider fits.
func budgetFit(pr models.PriceRange, budget *models.BudgetRange) float64 {
	if budget == nil {
		return 1.0
	}
	if budget.Overlaps(pr) {
		return 1.0
	}

	span := float64(budget.Max - budget.Min)
	if budget.Max == 0 {
		span = float64(budget.Min)
	}
	if span <= 0 {
		span = 1
	}

	var gap float64
	if pr.Max < budget.Min {
		gap = float64(budget.Min - pr.Max)
	} else {
		gap = float64(pr.Min - budget.Max)
	}
	return math.Max(0, 1.0-gap/span)
}

// Rank orders providers by descending score, breaking ties by provider id
// ascending so the order is reproducible. The input slice is not modified.
func Rank(providers []models.ServiceProvider, reference models.Location, budget *models.BudgetRange) []models.ServiceProvider {
	ranked := make([]models.ServiceProvider, len(providers))
	copy(ranked, providers)

	scores := make(map[string]float64, len(ranked))
	for _, p := range ranked {
		scores[p.ID] = Score(p, reference, budget)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// Top truncates a ranked sequence to at most n entries without re-sorting.
func Top(ranked []models.ServiceProvider, n int) []models.ServiceProvider {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ByIndex implements 1-based user selection ("option 2") over a ranked
// sequence. Indexes outside [1, len] fail with models.ErrSelectionOutOfRange.
func ByIndex(ranked []models.ServiceProvider, i int) (models.ServiceProvider, error) {
	if i < 1 || i > len(ranked) {
		return models.ServiceProvider{}, fmt.Errorf("index %d of %d options: %w", i, len(ranked), models.ErrSelectionOutOfRange)
	}
	return ranked[i-1], nil
}
