// Package models defines the core data structures for HudumaFinder.
//
// It includes the provider and location types shared across modules, the
// inbound/outbound message contracts for channel adapters, and the error
// variables used at module boundaries.
package models

import (
	"errors"
	"fmt"
)

// ServiceType identifies a category of service provider.
type ServiceType string

const (
	ServiceAutoRepair ServiceType = "auto_repair"
	ServiceMedical    ServiceType = "medical"
	ServiceHairSalon  ServiceType = "hair_salon"
	ServiceRestaurant ServiceType = "restaurant"
	ServicePlumbing   ServiceType = "plumbing"
	ServiceElectrical ServiceType = "electrical"
	ServiceCleaning   ServiceType = "cleaning"
	ServiceTutoring   ServiceType = "tutoring"
)

// SupportedServiceTypes lists every service category the assistant can search,
// in the order shown to the user.
var SupportedServiceTypes = []ServiceType{
	ServiceAutoRepair,
	ServiceMedical,
	ServiceHairSalon,
	ServiceRestaurant,
	ServicePlumbing,
	ServiceElectrical,
	ServiceCleaning,
	ServiceTutoring,
}

// IsValidServiceType checks if the given service type is supported.
func IsValidServiceType(st ServiceType) bool {
	for _, known := range SupportedServiceTypes {
		if st == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form of a service type ("auto repair").
func (st ServiceType) Label() string {
	out := make([]byte, len(st))
	for i := 0; i < len(st); i++ {
		if st[i] == '_' {
			out[i] = ' '
		} else {
			out[i] = st[i]
		}
	}
	return string(out)
}

// Accessibility describes how a user is expected to reach a provider.
type Accessibility string

const (
	AccessWalking         Accessibility = "walking"
	AccessPublicTransport Accessibility = "public_transport"
	AccessVehicle         Accessibility = "vehicle"
)

// Location is an immutable geographic point with human-readable context.
// It is used both for the user's position and for provider positions.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AreaName  string  `json:"area_name"`
	Landmark  string  `json:"landmark,omitempty"`
}

// PriceRange is a provider's price band in Tanzanian shillings. Min <= Max.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ServiceProvider is a service business entity returned as a search result.
// Providers are created at catalog load time or at discovery time and are
// never mutated afterwards.
type ServiceProvider struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	ServiceType    ServiceType   `json:"service_type"`
	Location       Location      `json:"location"`
	PriceRange     PriceRange    `json:"price_range"`
	Rating         float64       `json:"rating"` // [0, 5]
	Description    string        `json:"description"`
	Accessibility  Accessibility `json:"accessibility"`
	ContactInfo    string        `json:"contact_info"`
	OperatingHours string        `json:"operating_hours"`
}

// Validate performs startup-time validation on a ServiceProvider. Malformed
// seed data is a fatal misconfiguration, so the catalog checks every record
// at load time.
func (p *ServiceProvider) Validate() error {
	if p.ID == "" {
		return ErrEmptyProviderID
	}
	if p.Name == "" {
		return fmt.Errorf("provider %s: %w", p.ID, ErrEmptyProviderName)
	}
	if p.PriceRange.Min > p.PriceRange.Max && p.PriceRange.Max != 0 {
		return fmt.Errorf("provider %s: %w", p.ID, ErrInvalidPriceRange)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("provider %s: %w", p.ID, ErrInvalidRating)
	}
	return nil
}

// BudgetBucket names one of the three budget ranges.
type BudgetBucket string

const (
	BudgetLowCost  BudgetBucket = "low_cost"
	BudgetMidRange BudgetBucket = "mid_range"
	BudgetPremium  BudgetBucket = "premium"
)

// BudgetRange is a named budget bucket in Tanzanian shillings.
// Max == 0 means the upper bound is open-ended (premium).
type BudgetRange struct {
	Bucket BudgetBucket `json:"bucket"`
	Min    int          `json:"min"`
	Max    int          `json:"max"`
}

// Default budget buckets in Tanzanian shillings. Three ordered buckets;
// premium's upper bound is open-ended.
var (
	BudgetRangeLowCost  = BudgetRange{Bucket: BudgetLowCost, Min: 0, Max: 50000}
	BudgetRangeMidRange = BudgetRange{Bucket: BudgetMidRange, Min: 50000, Max: 150000}
	BudgetRangePremium  = BudgetRange{Bucket: BudgetPremium, Min: 150000, Max: 0}
)

// Overlaps reports whether a provider's price range intersects this bucket.
func (b BudgetRange) Overlaps(pr PriceRange) bool {
	if b.Max == 0 {
		return pr.Max >= b.Min || pr.Max == 0
	}
	return pr.Max >= b.Min && pr.Min <= b.Max
}

// Contains reports whether a single price falls inside the bucket.
func (b BudgetRange) Contains(price int) bool {
	if price < b.Min {
		return false
	}
	return b.Max == 0 || price <= b.Max
}

// BucketForPrice categorizes an average price into the bucket it falls in.
func BucketForPrice(pr PriceRange) BudgetBucket {
	avg := (pr.Min + pr.Max) / 2
	switch {
	case avg <= BudgetRangeLowCost.Max:
		return BudgetLowCost
	case avg <= BudgetRangeMidRange.Max:
		return BudgetMidRange
	default:
		return BudgetPremium
	}
}

// Error variables shared across module boundaries.
var (
	ErrEmptyProviderID      = errors.New("provider id cannot be empty")
	ErrEmptyProviderName    = errors.New("provider name cannot be empty")
	ErrInvalidPriceRange    = errors.New("price range min exceeds max")
	ErrInvalidRating        = errors.New("rating must be in [0, 5]")
	ErrLocationNotFound     = errors.New("location not found")
	ErrSelectionOutOfRange  = errors.New("selection out of range")
	ErrBackendUnavailable   = errors.New("geo backend unavailable")
	ErrEmptySessionID       = errors.New("session id cannot be empty")
	ErrSessionNotFound      = errors.New("session not found")
	ErrUnknownMessageKind   = errors.New("unknown inbound message kind")
	ErrMissingCoordinates   = errors.New("location message missing coordinates")
	ErrUnknownServiceType   = errors.New("unknown service type")
)
