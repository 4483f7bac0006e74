package rank

import (
	"errors"
	"testing"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

var reference = models.Location{Latitude: -6.7333, Longitude: 39.2833}

func provider(id string, lat, lon, rating float64, priceMin, priceMax int) models.ServiceProvider {
	return models.ServiceProvider{
		ID: id, Name: id, ServiceType: models.ServiceRestaurant,
		Location:   models.Location{Latitude: lat, Longitude: lon},
		PriceRange: models.PriceRange{Min: priceMin, Max: priceMax},
		Rating:     rating,
	}
}

func rankedIDs(providers []models.ServiceProvider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

func TestRankPrefersCloserProviders(t *testing.T) {
	near := provider("near", -6.7340, 39.2830, 4.0, 10000, 50000)
	far := provider("far", -6.8167, 39.2667, 4.0, 10000, 50000)

	got := Rank([]models.ServiceProvider{far, near}, reference, nil)
	if got[0].ID != "near" {
		t.Errorf("Rank() order = %v, want near first", rankedIDs(got))
	}
}

func TestRankRatingBreaksDistanceParity(t *testing.T) {
	good := provider("good", -6.7340, 39.2830, 4.8, 10000, 50000)
	poor := provider("poor", -6.7340, 39.2830, 3.1, 10000, 50000)

	got := Rank([]models.ServiceProvider{poor, good}, reference, nil)
	if got[0].ID != "good" {
		t.Errorf("Rank() order = %v, want good first", rankedIDs(got))
	}
}

func TestRankBudgetFitMatters(t *testing.T) {
	mid := models.BudgetRangeMidRange
	inBudget := provider("in_budget", -6.7340, 39.2830, 4.0, 60000, 100000)
	outOfBudget := provider("out_of_budget", -6.7340, 39.2830, 4.0, 1000, 5000)

	got := Rank([]models.ServiceProvider{outOfBudget, inBudget}, reference, &mid)
	if got[0].ID != "in_budget" {
		t.Errorf("Rank() order = %v, want in_budget first", rankedIDs(got))
	}

	if s1, s2 := Score(inBudget, reference, &mid), Score(outOfBudget, reference, &mid); s1 <= s2 {
		t.Errorf("Score(in_budget)=%v <= Score(out_of_budget)=%v", s1, s2)
	}
}

func TestRankTieBreaksByID(t *testing.T) {
	a := provider("a", -6.7340, 39.2830, 4.0, 10000, 50000)
	b := provider("b", -6.7340, 39.2830, 4.0, 10000, 50000)

	got := Rank([]models.ServiceProvider{b, a}, reference, nil)
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Rank() tie order = %v, want [a b]", rankedIDs(got))
	}
}

func TestRankIsDeterministic(t *testing.T) {
	ps := []models.ServiceProvider{
		provider("x", -6.7340, 39.2830, 4.1, 10000, 50000),
		provider("y", -6.7500, 39.2700, 4.6, 20000, 80000),
		provider("z", -6.8167, 39.2667, 3.9, 5000, 20000),
	}
	reversed := []models.ServiceProvider{ps[2], ps[1], ps[0]}

	first := rankedIDs(Rank(ps, reference, nil))
	second := rankedIDs(Rank(reversed, reference, nil))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Rank() order depends on input order: %v vs %v", first, second)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	ps := []models.ServiceProvider{
		provider("far", -6.8167, 39.2667, 4.0, 10000, 50000),
		provider("near", -6.7340, 39.2830, 4.0, 10000, 50000),
	}
	Rank(ps, reference, nil)
	if ps[0].ID != "far" || ps[1].ID != "near" {
		t.Errorf("Rank() mutated its input: %v", rankedIDs(ps))
	}
}

func TestTop(t *testing.T) {
	ps := []models.ServiceProvider{
		provider("a", -6.7340, 39.2830, 4.0, 10000, 50000),
		provider("b", -6.7500, 39.2700, 4.0, 10000, 50000),
	}
	if got := Top(ps, 1); len(got) != 1 {
		t.Errorf("Top(1) = %d entries", len(got))
	}
	if got := Top(ps, 5); len(got) != 2 {
		t.Errorf("Top(5) = %d entries, want 2", len(got))
	}
	if got := Top(ps, -1); len(got) != 0 {
		t.Errorf("Top(-1) = %d entries, want 0", len(got))
	}
}

func TestByIndex(t *testing.T) {
	ps := []models.ServiceProvider{
		provider("a", -6.7340, 39.2830, 4.0, 10000, 50000),
		provider("b", -6.7500, 39.2700, 4.0, 10000, 50000),
	}

	got, err := ByIndex(ps, 2)
	if err != nil || got.ID != "b" {
		t.Errorf("ByIndex(2) = (%v, %v), want b", got.ID, err)
	}

	for _, i := range []int{0, -1, 3} {
		if _, err := ByIndex(ps, i); !errors.Is(err, models.ErrSelectionOutOfRange) {
			t.Errorf("ByIndex(%d) error = %v, want ErrSelectionOutOfRange", i, err)
		}
	}
}

func TestScorePremiumOpenEnded(t *testing.T) {
	premium := models.BudgetRangePremium
	expensive := provider("expensive", -6.7340, 39.2830, 4.0, 200000, 500000)
	cheap := provider("cheap", -6.7340, 39.2830, 4.0, 1000, 5000)

	if s1, s2 := Score(expensive, reference, &premium), Score(cheap, reference, &premium); s1 <= s2 {
		t.Errorf("Score(expensive)=%v <= Score(cheap)=%v under premium budget", s1, s2)
	}
}
