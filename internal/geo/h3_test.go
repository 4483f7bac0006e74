package geo

import (
	"testing"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

func TestCellForLocation(t *testing.T) {
	masaki := models.Location{Latitude: -6.7333, Longitude: 39.2833}
	cell := CellForLocation(masaki)
	if cell == "" {
		t.Fatal("CellForLocation() returned empty cell")
	}
	if again := CellForLocation(masaki); again != cell {
		t.Errorf("CellForLocation() not stable: %s vs %s", cell, again)
	}

	kariakoo := models.Location{Latitude: -6.8167, Longitude: 39.2667}
	if CellForLocation(kariakoo) == cell {
		t.Error("distinct areas mapped to the same catalog cell")
	}
}

func TestCoveringCellsIncludeNearbyProviders(t *testing.T) {
	masaki := models.Location{Latitude: -6.7333, Longitude: 39.2833}
	cells := CoveringCells(masaki, 10)
	if len(cells) == 0 {
		t.Fatal("CoveringCells() returned no cells")
	}

	covered := make(map[string]bool, len(cells))
	for _, c := range cells {
		covered[c] = true
	}
	if !covered[CellForLocation(masaki)] {
		t.Error("covering cells miss the origin's own cell")
	}

	// Kariakoo is ~9.5 km away; a 10 km query must cover its cell.
	kariakoo := models.Location{Latitude: -6.8167, Longitude: 39.2667}
	if !covered[CellForLocation(kariakoo)] {
		t.Error("covering cells miss a provider just inside the radius")
	}
}
