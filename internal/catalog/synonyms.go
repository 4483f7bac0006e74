// Package catalog: data-driven service-type keyword tables.
//
// Intent matching is a static mapping from keyword to canonical service
// type, checked in a fixed order, so new locales and synonyms are additive.
package catalog

import (
	"strings"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

// serviceKeywords maps each service type to the keywords (English and
// Swahili) that select it. Matching is case-insensitive substring.
var serviceKeywords = map[models.ServiceType][]string{
	models.ServiceAutoRepair: {"auto", "car", "repair", "mechanic", "vehicle", "automotive", "karakana", "gari", "fundi gari"},
	models.ServiceMedical:    {"medical", "clinic", "doctor", "health", "healthcare", "hospital", "hospitali", "daktari", "zahanati", "dawa"},
	models.ServiceHairSalon:  {"hair", "salon", "cut", "style", "barber", "beauty", "saluni", "kinyozi", "nywele"},
	models.ServiceRestaurant: {"restaurant", "food", "eat", "dining", "cafe", "diner", "mgahawa", "chakula", "mkahawa"},
	models.ServicePlumbing:   {"plumbing", "plumber", "pipes", "leak", "fundi bomba", "bomba", "maji"},
	models.ServiceElectrical: {"electrical", "electrician", "wiring", "power", "lights", "fundi umeme", "umeme"},
	models.ServiceCleaning:   {"cleaning", "cleaner", "maid", "housekeeping", "laundry", "usafi", "dobi"},
	models.ServiceTutoring:   {"tutoring", "tutor", "teaching", "lessons", "education", "masomo", "mwalimu", "shule"},
}

// ResolveServiceType matches free text against the canonical service types
// and their synonyms. Types are checked in the supported-services order so
// the result is deterministic when several keywords appear.
func ResolveServiceType(text string) (models.ServiceType, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return "", false
	}

	// Exact canonical name ("auto_repair") or label ("auto repair").
	for _, st := range models.SupportedServiceTypes {
		if lower == string(st) || lower == st.Label() {
			return st, true
		}
	}

	for _, st := range models.SupportedServiceTypes {
		for _, kw := range serviceKeywords[st] {
			if strings.Contains(lower, kw) {
				return st, true
			}
		}
	}
	return "", false
}
