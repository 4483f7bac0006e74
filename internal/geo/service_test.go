package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/models"
)

func TestServiceGeocodeCoordinatePair(t *testing.T) {
	svc := NewService(WithLiveBackendDisabled())
	loc, err := svc.Geocode(context.Background(), "-6.7333, 39.2833")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != -6.7333 || loc.Longitude != 39.2833 {
		t.Errorf("Geocode() = (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestServiceGeocodeGazetteerOffline(t *testing.T) {
	svc := NewService(WithLiveBackendDisabled())
	loc, err := svc.Geocode(context.Background(), "Masaki")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.AreaName != "Masaki" {
		t.Errorf("Geocode() area = %q, want Masaki", loc.AreaName)
	}

	if _, err := svc.Geocode(context.Background(), "nowhere special"); !errors.Is(err, models.ErrLocationNotFound) {
		t.Errorf("Geocode(unknown) error = %v, want ErrLocationNotFound", err)
	}
}

func TestServiceGeocodeLiveBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"-6.7500","lon":"39.2800","display_name":"Coco Beach, Msasani, Dar es Salaam, Tanzania"}]`))
	}))
	defer server.Close()

	svc := NewService(WithNominatim(NewNominatimClient(WithNominatimBaseURL(server.URL))))
	loc, err := svc.Geocode(context.Background(), "coco beach")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != -6.75 || loc.Longitude != 39.28 {
		t.Errorf("Geocode() = (%v, %v), want (-6.75, 39.28)", loc.Latitude, loc.Longitude)
	}
	if loc.AreaName != "Coco Beach" {
		t.Errorf("Geocode() area = %q, want Coco Beach", loc.AreaName)
	}
}

func TestServiceGeocodeBackendFailureGated(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	nom := NewNominatimClient(WithNominatimBaseURL(server.URL), WithGeocodeTimeout(2*time.Second))
	svc := NewService(WithNominatim(nom))

	// Gazetteer entries never touch the backend.
	if _, err := svc.Geocode(context.Background(), "Masaki"); err != nil {
		t.Fatalf("Geocode(Masaki) error = %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("backend hit %d times for a gazetteer entry", n)
	}

	// Unknown names fail soft, and after the failure threshold the backend
	// is skipped entirely.
	for i := 0; i < DefaultFailureThreshold+2; i++ {
		if _, err := svc.Geocode(context.Background(), "nowhere special"); !errors.Is(err, models.ErrLocationNotFound) {
			t.Fatalf("Geocode(unknown) error = %v, want ErrLocationNotFound", err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != DefaultFailureThreshold {
		t.Errorf("backend hit %d times, want %d (health gate)", n, DefaultFailureThreshold)
	}
}

func TestServiceDiscoverProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[
			{"id":42,"lat":-6.7400,"lon":39.2800,"tags":{"name":"Dobi Fresh","opening_hours":"Mo-Sa 08:00-18:00","phone":"+255-700-000-042"}},
			{"id":43,"lat":-6.7400,"lon":39.2800,"tags":{"shop":"laundry"}},
			{"id":44,"lat":-3.3667,"lon":36.6833,"tags":{"name":"Too Far Away"}}
		]}`))
	}))
	defer server.Close()

	svc := NewService(WithOverpass(NewOverpassClient(WithOverpassBaseURL(server.URL))))
	near := models.Location{Latitude: -6.7333, Longitude: 39.2833}

	got := svc.DiscoverProviders(context.Background(), near, models.ServiceCleaning, 10)
	if len(got) != 1 {
		t.Fatalf("DiscoverProviders() returned %d providers, want 1 (unnamed and out-of-radius skipped)", len(got))
	}
	p := got[0]
	if p.ID != "osm_42" {
		t.Errorf("provider id = %q, want osm_42", p.ID)
	}
	if p.Name != "Dobi Fresh" || p.ServiceType != models.ServiceCleaning {
		t.Errorf("provider = %q/%s", p.Name, p.ServiceType)
	}
	if p.ContactInfo != "+255-700-000-042" {
		t.Errorf("provider contact = %q", p.ContactInfo)
	}
	if p.Rating != defaultDiscoveredRating {
		t.Errorf("provider rating = %v, want %v", p.Rating, defaultDiscoveredRating)
	}
}

func TestServiceDiscoverProvidersFailureReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewService(WithOverpass(NewOverpassClient(WithOverpassBaseURL(server.URL))))
	near := models.Location{Latitude: -6.7333, Longitude: 39.2833}

	if got := svc.DiscoverProviders(context.Background(), near, models.ServiceCleaning, 10); len(got) != 0 {
		t.Errorf("DiscoverProviders() on failing backend = %d providers, want 0", len(got))
	}
}

func TestServiceDiscoverProvidersOffline(t *testing.T) {
	svc := NewService(WithLiveBackendDisabled())
	near := models.Location{Latitude: -6.7333, Longitude: 39.2833}
	if got := svc.DiscoverProviders(context.Background(), near, models.ServiceRestaurant, 10); got != nil {
		t.Errorf("DiscoverProviders() offline = %v, want nil", got)
	}
}

func TestServiceRecognizeStatic(t *testing.T) {
	svc := NewService(WithLiveBackendDisabled())

	if _, ok := svc.RecognizeStatic("-6.73, 39.28"); !ok {
		t.Error("RecognizeStatic(coordinates) = false, want true")
	}
	if loc, ok := svc.RecognizeStatic("kariakoo"); !ok || loc.AreaName != "Kariakoo" {
		t.Errorf("RecognizeStatic(kariakoo) = (%v, %v)", loc.AreaName, ok)
	}
	if _, ok := svc.RecognizeStatic("Hi"); ok {
		t.Error("RecognizeStatic(Hi) = true, want false")
	}
}
