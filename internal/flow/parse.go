// Package flow: free-text input parsing for the dialogue stages.
package flow

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// restartKeywords reset the whole conversation from any stage.
var restartKeywords = []string{"restart", "start over", "anza upya"}

// confirmKeywords accept the currently selected provider.
var confirmKeywords = []string{"confirm", "yes", "ndiyo", "sawa"}

var numberPattern = regexp.MustCompile(`\d+`)

// normalize lowercases and trims a message for keyword matching.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func isRestart(text string) bool {
	n := normalize(text)
	for _, kw := range restartKeywords {
		if n == kw {
			return true
		}
	}
	return false
}

func isConfirm(text string) bool {
	n := normalize(text)
	for _, kw := range confirmKeywords {
		if n == kw {
			return true
		}
	}
	return false
}

// parseSelection reads a bare 1-based option number ("2").
func parseSelection(text string) (int, bool) {
	n := normalize(text)
	if n == "" {
		return 0, false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(n)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseBudget maps free text onto a budget bucket. The return is nil for
// "no preference" answers AND for anything unparseable, so the budget stage
// always advances.
func parseBudget(text string) *models.BudgetRange {
	b, _ := parseBudgetChange(text)
	return b
}

// parseBudgetChange additionally reports whether the text was a
// recognizable budget answer at all: a named bucket, a bare maximum
// amount, or an explicit no-preference (nil, true). Named buckets are
// checked before bare amounts so "under 50000" lands in low-cost rather
// than a custom cap.
func parseBudgetChange(text string) (*models.BudgetRange, bool) {
	n := normalize(text)

	for _, kw := range []string{"no preference", "any", "skip", "doesn't matter", "hamna", "yoyote"} {
		if strings.Contains(n, kw) {
			return nil, true
		}
	}

	switch {
	case strings.Contains(n, "low") || strings.Contains(n, "under") || strings.Contains(n, "cheap") || strings.Contains(n, "nafuu"):
		b := models.BudgetRangeLowCost
		return &b, true
	case strings.Contains(n, "mid") || strings.Contains(n, "medium") || strings.Contains(n, "wastani"):
		b := models.BudgetRangeMidRange
		return &b, true
	case strings.Contains(n, "premium") || strings.Contains(n, "expensive") || strings.Contains(n, "high") || strings.Contains(n, "ghali"):
		b := models.BudgetRangePremium
		return &b, true
	}

	// A bare amount is treated as a maximum budget.
	if m := numberPattern.FindString(n); m != "" {
		max, err := strconv.Atoi(m)
		if err == nil && max > 0 {
			return &models.BudgetRange{
				Bucket: models.BucketForPrice(models.PriceRange{Min: 0, Max: max}),
				Min:    0,
				Max:    max,
			}, true
		}
	}

	return nil, false
}
