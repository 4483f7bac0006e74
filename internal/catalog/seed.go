// Package catalog: static seed providers for Dar es Salaam.
//
// The seed set keeps the assistant useful when the live POI backend is
// unreachable. Prices are in Tanzanian shillings.
package catalog

import "github.com/hudumahub/HudumaFinder/internal/models"

// SeedProviders returns the built-in provider database.
func SeedProviders() []models.ServiceProvider {
	return []models.ServiceProvider{
		{
			ID: "tz_auto_001", Name: "Karakana ya Magari Msasani", ServiceType: models.ServiceAutoRepair,
			Location:      models.Location{Latitude: -6.7420, Longitude: 39.2750, AreaName: "Msasani", Landmark: "Msasani Peninsula"},
			PriceRange:    models.PriceRange{Min: 15000, Max: 80000}, Rating: 4.2,
			Description:   "Full-service garage handling engine diagnostics, brakes, and tyre work.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-754-111-001", OperatingHours: "Mon-Sat 8AM-6PM",
		},
		{
			ID: "tz_auto_002", Name: "Kariakoo Auto Clinic", ServiceType: models.ServiceAutoRepair,
			Location:      models.Location{Latitude: -6.8167, Longitude: 39.2667, AreaName: "Kariakoo", Landmark: "Kariakoo Market"},
			PriceRange:    models.PriceRange{Min: 10000, Max: 50000}, Rating: 4.0,
			Description:   "Quick repairs and spare parts next to the market.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-713-111-002", OperatingHours: "Mon-Sat 7AM-7PM",
		},
		{
			ID: "tz_med_001", Name: "Masaki Medical Centre", ServiceType: models.ServiceMedical,
			Location:      models.Location{Latitude: -6.7350, Longitude: 39.2800, AreaName: "Masaki", Landmark: "Chole Road"},
			PriceRange:    models.PriceRange{Min: 20000, Max: 100000}, Rating: 4.6,
			Description:   "Outpatient clinic with laboratory and pharmacy on site.",
			Accessibility: models.AccessWalking, ContactInfo: "+255-784-222-001", OperatingHours: "Daily 24h",
		},
		{
			ID: "tz_med_002", Name: "Mnazi Mmoja Hospital", ServiceType: models.ServiceMedical,
			Location:      models.Location{Latitude: -6.8167, Longitude: 39.2833, AreaName: "Mnazi Mmoja", Landmark: "Mnazi Mmoja Grounds"},
			PriceRange:    models.PriceRange{Min: 5000, Max: 30000}, Rating: 3.9,
			Description:   "Public hospital with emergency and general wards.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-222-222-002", OperatingHours: "Daily 24h",
		},
		{
			ID: "tz_hair_001", Name: "Saluni ya Kisasa", ServiceType: models.ServiceHairSalon,
			Location:      models.Location{Latitude: -6.7667, Longitude: 39.2333, AreaName: "Mikocheni", Landmark: "Mikocheni B"},
			PriceRange:    models.PriceRange{Min: 5000, Max: 30000}, Rating: 4.4,
			Description:   "Braiding, cuts, and styling for all hair types.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-715-333-001", OperatingHours: "Tue-Sun 9AM-8PM",
		},
		{
			ID: "tz_hair_002", Name: "Slipway Barbershop", ServiceType: models.ServiceHairSalon,
			Location:      models.Location{Latitude: -6.7464, Longitude: 39.2711, AreaName: "Msasani", Landmark: "Slipway"},
			PriceRange:    models.PriceRange{Min: 10000, Max: 40000}, Rating: 4.1,
			Description:   "Walk-in barbershop at the Slipway waterfront.",
			Accessibility: models.AccessWalking, ContactInfo: "+255-786-333-002", OperatingHours: "Daily 10AM-9PM",
		},
		{
			ID: "tz_rest_001", Name: "Mgahawa wa Pwani", ServiceType: models.ServiceRestaurant,
			Location:      models.Location{Latitude: -6.7380, Longitude: 39.2790, AreaName: "Masaki", Landmark: "Toure Drive"},
			PriceRange:    models.PriceRange{Min: 25000, Max: 90000}, Rating: 4.5,
			Description:   "Seafood grill on the peninsula with ocean views.",
			Accessibility: models.AccessWalking, ContactInfo: "+255-767-444-001", OperatingHours: "Daily 11AM-11PM",
		},
		{
			ID: "tz_rest_002", Name: "Mikocheni Garden Restaurant", ServiceType: models.ServiceRestaurant,
			Location:      models.Location{Latitude: -6.7650, Longitude: 39.2400, AreaName: "Mikocheni", Landmark: "Old Bagamoyo Road"},
			PriceRange:    models.PriceRange{Min: 40000, Max: 120000}, Rating: 4.3,
			Description:   "Garden dining with Swahili and international dishes.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-768-444-002", OperatingHours: "Daily 12PM-10PM",
		},
		{
			ID: "tz_rest_003", Name: "Kariakoo Chakula Bora", ServiceType: models.ServiceRestaurant,
			Location:      models.Location{Latitude: -6.8150, Longitude: 39.2650, AreaName: "Kariakoo", Landmark: "Msimbazi Street"},
			PriceRange:    models.PriceRange{Min: 5000, Max: 20000}, Rating: 4.0,
			Description:   "Busy local canteen serving wali, ugali, and nyama choma.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-719-444-003", OperatingHours: "Daily 7AM-9PM",
		},
		{
			ID: "tz_rest_004", Name: "Peninsula Fine Dining", ServiceType: models.ServiceRestaurant,
			Location:      models.Location{Latitude: -6.7310, Longitude: 39.2860, AreaName: "Masaki", Landmark: "Chole Road"},
			PriceRange:    models.PriceRange{Min: 80000, Max: 250000}, Rating: 4.7,
			Description:   "Upscale dining room with a tasting menu and wine list.",
			Accessibility: models.AccessWalking, ContactInfo: "+255-754-444-004", OperatingHours: "Tue-Sun 6PM-11PM",
		},
		{
			ID: "tz_plumb_001", Name: "Fundi Bomba Express", ServiceType: models.ServicePlumbing,
			Location:      models.Location{Latitude: -6.7833, Longitude: 39.2333, AreaName: "Ubungo", Landmark: "Ubungo Terminal"},
			PriceRange:    models.PriceRange{Min: 10000, Max: 60000}, Rating: 4.0,
			Description:   "Emergency plumbing, leak repair, and pipe installation.",
			Accessibility: models.AccessVehicle, ContactInfo: "+255-712-555-001", OperatingHours: "Daily 7AM-8PM",
		},
		{
			ID: "tz_elec_001", Name: "Umeme Solutions", ServiceType: models.ServiceElectrical,
			Location:      models.Location{Latitude: -6.7667, Longitude: 39.2333, AreaName: "Mikocheni", Landmark: "Mikocheni Industrial Area"},
			PriceRange:    models.PriceRange{Min: 15000, Max: 70000}, Rating: 4.2,
			Description:   "Licensed electricians for wiring, repairs, and installations.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-782-666-001", OperatingHours: "Mon-Sat 8AM-6PM",
		},
		{
			ID: "tz_clean_001", Name: "Usafi Home Services", ServiceType: models.ServiceCleaning,
			Location:      models.Location{Latitude: -6.7500, Longitude: 39.2700, AreaName: "Msasani", Landmark: "Msasani Village"},
			PriceRange:    models.PriceRange{Min: 5000, Max: 40000}, Rating: 4.3,
			Description:   "House and office cleaning crews with supplies included.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-713-777-001", OperatingHours: "Mon-Sat 8AM-5PM",
		},
		{
			ID: "tz_tutor_001", Name: "Masomo Tuition Centre", ServiceType: models.ServiceTutoring,
			Location:      models.Location{Latitude: -6.7700, Longitude: 39.2300, AreaName: "Mikocheni", Landmark: "Mlimani City"},
			PriceRange:    models.PriceRange{Min: 10000, Max: 50000}, Rating: 4.5,
			Description:   "Primary and secondary tutoring in maths, science, and English.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-765-888-001", OperatingHours: "Mon-Fri 3PM-8PM, Sat 9AM-1PM",
		},
		{
			ID: "tz_auto_003", Name: "Arusha Motors", ServiceType: models.ServiceAutoRepair,
			Location:      models.Location{Latitude: -3.3667, Longitude: 36.6833, AreaName: "Arusha", Landmark: "Arusha Clock Tower"},
			PriceRange:    models.PriceRange{Min: 20000, Max: 100000}, Rating: 4.1,
			Description:   "Garage serving safari vehicles and daily drivers.",
			Accessibility: models.AccessVehicle, ContactInfo: "+255-754-111-003", OperatingHours: "Mon-Sat 8AM-6PM",
		},
		{
			ID: "tz_rest_005", Name: "Mwanza Lakeside Grill", ServiceType: models.ServiceRestaurant,
			Location:      models.Location{Latitude: -2.5167, Longitude: 32.9000, AreaName: "Mwanza", Landmark: "Lake Victoria"},
			PriceRange:    models.PriceRange{Min: 15000, Max: 60000}, Rating: 4.2,
			Description:   "Fresh tilapia and grills by Lake Victoria.",
			Accessibility: models.AccessPublicTransport, ContactInfo: "+255-767-444-005", OperatingHours: "Daily 11AM-10PM",
		},
	}
}
