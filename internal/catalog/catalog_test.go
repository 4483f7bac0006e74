package catalog

import (
	"context"
	"testing"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

var masaki = models.Location{Latitude: -6.7333, Longitude: 39.2833}

func newTestCatalog(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	c, err := New(SeedProviders(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func ids(providers []models.ServiceProvider) map[string]bool {
	out := make(map[string]bool, len(providers))
	for _, p := range providers {
		out[p.ID] = true
	}
	return out
}

func TestFindFiltersByTypeAndRadius(t *testing.T) {
	c := newTestCatalog(t)

	got := c.Find(context.Background(), models.ServiceRestaurant, masaki, DefaultSearchRadiusKm, nil)
	gotIDs := ids(got)

	for _, want := range []string{"tz_rest_001", "tz_rest_002", "tz_rest_003", "tz_rest_004"} {
		if !gotIDs[want] {
			t.Errorf("Find() missing %s", want)
		}
	}
	if gotIDs["tz_rest_005"] {
		t.Error("Find() returned the Mwanza restaurant for a Dar es Salaam query")
	}
	for _, p := range got {
		if p.ServiceType != models.ServiceRestaurant {
			t.Errorf("Find() returned %s of type %s", p.ID, p.ServiceType)
		}
	}
}

func TestFindBudgetFilter(t *testing.T) {
	c := newTestCatalog(t)
	mid := models.BudgetRangeMidRange

	got := c.Find(context.Background(), models.ServiceRestaurant, masaki, DefaultSearchRadiusKm, &mid)
	gotIDs := ids(got)

	if gotIDs["tz_rest_003"] {
		t.Error("Find() returned tz_rest_003 (max 20000) for a mid-range budget")
	}
	for _, want := range []string{"tz_rest_001", "tz_rest_002", "tz_rest_004"} {
		if !gotIDs[want] {
			t.Errorf("Find() missing %s for mid-range budget", want)
		}
	}
	for _, p := range got {
		if !mid.Overlaps(p.PriceRange) {
			t.Errorf("Find() returned %s with non-overlapping price range %+v", p.ID, p.PriceRange)
		}
	}
}

func TestFindReturnsFreshSlices(t *testing.T) {
	c := newTestCatalog(t)
	first := c.Find(context.Background(), models.ServiceRestaurant, masaki, DefaultSearchRadiusKm, nil)
	if len(first) == 0 {
		t.Fatal("Find() returned no results")
	}
	first[0].Name = "mutated"

	second := c.Find(context.Background(), models.ServiceRestaurant, masaki, DefaultSearchRadiusKm, nil)
	for _, p := range second {
		if p.Name == "mutated" {
			t.Error("Find() results share backing storage with earlier call")
		}
	}
}

type fakeDiscoverer struct {
	providers []models.ServiceProvider
}

func (f *fakeDiscoverer) DiscoverProviders(ctx context.Context, near models.Location, serviceType models.ServiceType, radiusKm float64) []models.ServiceProvider {
	return f.providers
}

func TestFindMergesDiscoveryResults(t *testing.T) {
	discovered := []models.ServiceProvider{
		{
			ID: "osm_1", Name: "Discovered Grill", ServiceType: models.ServiceRestaurant,
			Location:   models.Location{Latitude: -6.7340, Longitude: 39.2820, AreaName: "Masaki"},
			PriceRange: models.PriceRange{Min: 10000, Max: 30000}, Rating: 4.0,
		},
		{
			// Same id as a seed provider: the discovered record wins.
			ID: "tz_rest_001", Name: "Fresher Data", ServiceType: models.ServiceRestaurant,
			Location:   models.Location{Latitude: -6.7380, Longitude: 39.2790, AreaName: "Masaki"},
			PriceRange: models.PriceRange{Min: 25000, Max: 90000}, Rating: 4.8,
		},
		{
			// Outside the query radius: filtered out post-merge.
			ID: "osm_2", Name: "Arusha Grill", ServiceType: models.ServiceRestaurant,
			Location:   models.Location{Latitude: -3.3667, Longitude: 36.6833, AreaName: "Arusha"},
			PriceRange: models.PriceRange{Min: 10000, Max: 30000}, Rating: 4.0,
		},
	}
	c := newTestCatalog(t, WithDiscoverer(&fakeDiscoverer{providers: discovered}))

	got := c.Find(context.Background(), models.ServiceRestaurant, masaki, DefaultSearchRadiusKm, nil)
	gotIDs := ids(got)

	if !gotIDs["osm_1"] {
		t.Error("Find() missing discovered provider osm_1")
	}
	if gotIDs["osm_2"] {
		t.Error("Find() returned out-of-radius discovered provider osm_2")
	}

	var seenRest001 int
	for _, p := range got {
		if p.ID == "tz_rest_001" {
			seenRest001++
			if p.Name != "Fresher Data" {
				t.Errorf("Find() id conflict resolved to %q, want discovered record", p.Name)
			}
		}
	}
	if seenRest001 != 1 {
		t.Errorf("Find() returned tz_rest_001 %d times, want exactly 1", seenRest001)
	}
}

func TestNewRejectsBadSeedData(t *testing.T) {
	_, err := New([]models.ServiceProvider{
		{ID: "a", Name: "A", ServiceType: models.ServiceMedical, Rating: 9},
	})
	if err == nil {
		t.Error("New() accepted provider with rating 9")
	}

	dup := models.ServiceProvider{
		ID: "a", Name: "A", ServiceType: models.ServiceMedical, Rating: 4,
		PriceRange: models.PriceRange{Min: 1000, Max: 2000},
	}
	if _, err := New([]models.ServiceProvider{dup, dup}); err == nil {
		t.Error("New() accepted duplicate provider ids")
	}
}

func TestResolveServiceType(t *testing.T) {
	tests := []struct {
		input  string
		want   models.ServiceType
		wantOK bool
	}{
		{"restaurant", models.ServiceRestaurant, true},
		{"I want to eat", models.ServiceRestaurant, true},
		{"auto repair", models.ServiceAutoRepair, true},
		{"auto_repair", models.ServiceAutoRepair, true},
		{"karakana", models.ServiceAutoRepair, true},
		{"naomba daktari", models.ServiceMedical, true},
		{"fundi bomba", models.ServicePlumbing, true},
		{"fundi umeme", models.ServiceElectrical, true},
		{"saluni", models.ServiceHairSalon, true},
		{"dobi", models.ServiceCleaning, true},
		{"mwalimu wa hesabu", models.ServiceTutoring, true},
		{"HAIR SALON", models.ServiceHairSalon, true},
		{"something else entirely", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ResolveServiceType(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveServiceType(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
