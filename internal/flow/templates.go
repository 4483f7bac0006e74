// Package flow: response templates and rendering helpers.
//
// The wording here is the user-facing contract of the assistant; tests
// assert on fragments of it, so changes should be deliberate.
package flow

import (
	"fmt"
	"strings"

	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/models"
)

const welcomeMessage = `👋 Hi! I'm your location-based service finder for Tanzania.

I can help you find nearby service providers like auto repair shops, medical clinics, hair salons, restaurants, and more.

To get started, could you share your current location?
You can tell me:
• Your town/city name
• A nearby landmark
• Or GPS coordinates (latitude, longitude)

What's your location?`

const serviceOptionsList = `• Auto repair
• Medical clinic
• Hair salon
• Restaurant
• Plumbing
• Electrical
• Cleaning
• Tutoring`

const locationRetryMessage = `Sorry, I couldn't recognize that location. 📍

You can tell me:
• A city or town name (e.g. "Dar es Salaam", "Arusha")
• A well-known area or landmark (e.g. "Masaki", "Kariakoo", "Mlimani City")
• GPS coordinates like "-6.7924, 39.2083"
• Or just share your location pin on WhatsApp

Where are you?`

const noResultsMessage = `Sorry, I couldn't find any providers for that service in your area.

Would you like to:
1. Try a different service type (just name it)
2. Adjust your budget (e.g. "low-cost" or "no preference")
3. Search in a different location (type "restart")`

const resultsMenu = `Would you like to:
• Compare options (type "compare")
• Get more details about a specific option (type the number)
• See more results (type "more")
• Start a new search (type "new")

What would you like to do?`

const detailsMenu = `Would you like to:
• Call them now (type "call")
• Get directions (type "directions")
• Confirm this choice (type "confirm")
• Compare with other options (type "compare")
• Start a new search (type "new")

What would you like to do?`

const resultsHelpMessage = `Please choose:
• "compare" to compare options
• "more" to see additional results
• A number (1, 2, 3, etc.) for more details about that option
• "new" to start a new search`

const detailsHelpMessage = `Please choose:
• "call" to call the provider
• "directions" to get directions
• "confirm" to confirm this choice
• "compare" to compare with other options
• "back" to return to results
• "new" for a new search`

const tryAgainMessage = `Sorry, something went wrong on my side. Please try that again. 🙏`

func locationConfirmMessage(loc models.Location) string {
	name := loc.AreaName
	if loc.Landmark != "" && loc.Landmark != name {
		name = fmt.Sprintf("%s (near %s)", name, loc.Landmark)
	}
	return fmt.Sprintf(`✅ Got it! I understand you're near %s.

What service are you looking for? Here are some options:
%s

What service do you need?`, name, serviceOptionsList)
}

func budgetPromptMessage(st models.ServiceType) string {
	return fmt.Sprintf(`Great! You're looking for %s services.

What's your budget range? (optional - you can say "no preference")
• Low-cost: Under TZS %s
• Mid-range: TZS %s-%s
• Premium: Over TZS %s

Or tell me your maximum budget (e.g., "up to 100000")`,
		st.Label(),
		formatTZS(models.BudgetRangeLowCost.Max),
		formatTZS(models.BudgetRangeMidRange.Min), formatTZS(models.BudgetRangeMidRange.Max),
		formatTZS(models.BudgetRangePremium.Min))
}

func serviceRetryMessage() string {
	return fmt.Sprintf(`I'm not sure which service you mean. Here's what I can search for:
%s

What service do you need?`, serviceOptionsList)
}

var accessibilityNotes = map[models.Accessibility]string{
	models.AccessWalking:         "🚶 Walking distance",
	models.AccessPublicTransport: "🚇 Public transport accessible",
	models.AccessVehicle:         "🚗 Vehicle required",
}

func accessibilityGuide(a models.Accessibility, km float64) string {
	switch a {
	case models.AccessWalking:
		return fmt.Sprintf("This location is within walking distance (%.1f km).", km)
	case models.AccessPublicTransport:
		return fmt.Sprintf("Public transportation is recommended to reach this location (%.1f km away).", km)
	default:
		return fmt.Sprintf("A vehicle is required to reach this destination (%.1f km away).", km)
	}
}

// providerSummary is the short per-result block used in SHOW_RESULTS lists.
func providerSummary(p models.ServiceProvider, from models.Location) string {
	km := geo.Distance(from, p.Location)
	return fmt.Sprintf(`🏢 %s
💰 Price: %s (%s)
📏 Distance: %.1f km from your location
📍 Location: %s (near %s)
%s
⭐ Rating: %.1f/5
🕒 Hours: %s
📞 Contact: %s
📝 %s

`,
		p.Name,
		formatPriceRange(p.PriceRange), models.BucketForPrice(p.PriceRange),
		km,
		p.Location.AreaName, p.Location.Landmark,
		accessibilityNotes[geo.AccessibilityForDistance(km)],
		p.Rating,
		p.OperatingHours,
		p.ContactInfo,
		p.Description)
}

// resultsMessage renders a window of the ranked result list. start is the
// 0-based offset into results; the shown option numbers stay aligned with
// the full list so numeric selection works across "more" pages.
func resultsMessage(results []models.ServiceProvider, from models.Location, start, count int) string {
	var b strings.Builder
	if start == 0 {
		fmt.Fprintf(&b, "I found %d option(s) near you:\n\n", len(results))
	} else {
		b.WriteString("Here are more options:\n\n")
	}

	end := start + count
	if end > len(results) {
		end = len(results)
	}
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%d. %s", i+1, providerSummary(results[i], from))
	}
	if remaining := len(results) - end; remaining > 0 {
		fmt.Fprintf(&b, "...and %d more options (type \"more\").\n\n", remaining)
	}
	b.WriteString(resultsMenu)
	return b.String()
}

func comparisonMessage(results []models.ServiceProvider, from models.Location, count int) string {
	var b strings.Builder
	b.WriteString("📊 Comparing Options:\n\n")

	if count > len(results) {
		count = len(results)
	}
	for i := 0; i < count; i++ {
		p := results[i]
		km := geo.Distance(from, p.Location)
		fmt.Fprintf(&b, `Option %d: %s
• Price: %s (%s)
• Distance: %.1f km
• Rating: %.1f/5 ⭐
• Accessibility: %s

`,
			i+1, p.Name,
			formatPriceRange(p.PriceRange), models.BucketForPrice(p.PriceRange),
			km,
			p.Rating,
			accessibilityLabel(geo.AccessibilityForDistance(km)))
	}

	b.WriteString(`Which option interests you most? (type the number)
Or type "back" to return to results.`)
	return b.String()
}

func detailMessage(p models.ServiceProvider, from models.Location) string {
	km := geo.Distance(from, p.Location)
	return fmt.Sprintf(`📋 Detailed Information:

🏢 %s
💰 Price Range: %s (%s)
⭐ Rating: %.1f/5
📍 Exact Location: %s, near %s
📏 Distance: %.1f km from your location
🚶 Accessibility: %s
🕒 Operating Hours: %s
📞 Contact: %s
📝 Description: %s

%s`,
		p.Name,
		formatPriceRange(p.PriceRange), models.BucketForPrice(p.PriceRange),
		p.Rating,
		p.Location.AreaName, p.Location.Landmark,
		km,
		accessibilityGuide(geo.AccessibilityForDistance(km), km),
		p.OperatingHours,
		p.ContactInfo,
		p.Description,
		detailsMenu)
}

func callMessage(p models.ServiceProvider) string {
	return fmt.Sprintf(`📞 You can reach %s at %s.

Type "back" to return to details or "new" for a new search.`, p.Name, p.ContactInfo)
}

func mapsLink(loc models.Location) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", loc.Latitude, loc.Longitude)
}

func directionsMessage(p models.ServiceProvider, from models.Location) string {
	km := geo.Distance(from, p.Location)
	return fmt.Sprintf(`🗺️ Directions to %s:

📍 Location: %s, near %s
📏 Distance: %.1f km from your location
🚶 Accessibility: %s

🗺️ *Google Maps Link:*
%s

📱 *WhatsApp Location:* I'll send the exact location pin to your WhatsApp!

Type "back" to return to details or "new" for a new search.`,
		p.Name,
		p.Location.AreaName, p.Location.Landmark,
		km,
		accessibilityLabel(geo.AccessibilityForDistance(km)),
		mapsLink(p.Location))
}

func confirmationMessage(p *models.ServiceProvider, locationKept bool) string {
	var b strings.Builder
	if p != nil {
		fmt.Fprintf(&b, `✅ Great choice! You picked %s.

📍 %s, near %s
📞 %s
🕒 %s

`, p.Name, p.Location.AreaName, p.Location.Landmark, p.ContactInfo, p.OperatingHours)
	} else {
		b.WriteString("✅ All set!\n\n")
	}
	if locationKept {
		fmt.Fprintf(&b, `Is there anything else I can help you find nearby?
%s

What service do you need?`, serviceOptionsList)
	} else {
		b.WriteString("Where should I search next? Send a place name or share your location. 📍")
	}
	return b.String()
}

func accessibilityLabel(a models.Accessibility) string {
	words := strings.Split(string(a), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// formatPriceRange renders a provider price band; Max == 0 is open-ended.
func formatPriceRange(pr models.PriceRange) string {
	if pr.Max == 0 {
		return fmt.Sprintf("TZS %s+", formatTZS(pr.Min))
	}
	return fmt.Sprintf("TZS %s-%s", formatTZS(pr.Min), formatTZS(pr.Max))
}

// formatTZS groups thousands for readability: 150000 -> "150,000".
func formatTZS(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
