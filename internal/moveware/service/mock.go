package service

import "moveware_portal_backend/internal/moveware/transport"

// MockJobID is the sample job the static fallback dataset is keyed by. Reads
// for unconfigured tenants (or after an upstream failure) serve this record
// regardless of the requested job id so the customer flow always renders.
const MockJobID = 248132

func mockJob(branding transport.Branding) transport.Job {
	return transport.Job{
		ID:          MockJobID,
		Title:       "Mr",
		FirstName:   "Sample",
		LastName:    "Customer",
		MoveType:    "Local Move",
		MoveManager: "Alex Porter",
		Brand:       "Demo Removals",
		Branch:      "Sydney",
		Uplift: transport.Address{
			Line1:    "12 Harbour Street",
			City:     "Sydney",
			State:    "NSW",
			Postcode: "2000",
			Country:  "Australia",
		},
		Delivery: transport.Address{
			Line1:    "48 Beaumont Road",
			City:     "Melbourne",
			State:    "VIC",
			Postcode: "3000",
			Country:  "Australia",
		},
		VolumeM3: 32.5,
		WeightKg: 3900,
		Branding: branding,
	}
}

func mockOptions() []transport.Costing {
	return []transport.Costing{
		{
			ID:             "OPT-1",
			Name:           "Full Service Move",
			Category:       "Removal",
			Quantity:       1,
			NetPrice:       3181.82,
			TotalPrice:     3500,
			Currency:       "AUD",
			CurrencySymbol: "$",
			TaxInclusive:   true,
			Charges: []transport.CostingCharge{
				{ID: "CHG-1", Heading: "Removal", Quantity: 1, UnitPrice: 2800, Currency: "AUD", Sort: "010", Included: true, IsBaseCharge: true},
				{ID: "CHG-2", Heading: "Full Packing Service", Quantity: 1, UnitPrice: 700, Currency: "AUD", Sort: "020", Included: true},
			},
			RawData: transport.CostingRawData{
				Inclusions: []string{"Packing materials", "Transit protection", "Two-person crew"},
				Exclusions: []string{"Storage", "Piano handling"},
			},
		},
		{
			ID:             "OPT-2",
			Name:           "Transport Only",
			Category:       "Removal",
			Quantity:       1,
			NetPrice:       2272.73,
			TotalPrice:     2500,
			Currency:       "AUD",
			CurrencySymbol: "$",
			TaxInclusive:   true,
			Charges: []transport.CostingCharge{
				{ID: "CHG-3", Heading: "Removal", Quantity: 1, UnitPrice: 2500, Currency: "AUD", Sort: "010", Included: true, IsBaseCharge: true},
			},
			RawData: transport.CostingRawData{
				Inclusions: []string{"Transit protection"},
				Exclusions: []string{"Packing", "Storage"},
			},
		},
	}
}

func mockInventory() []transport.InventoryItem {
	return []transport.InventoryItem{
		{ID: "INV-1", Description: "3 Seater Sofa", Room: "Lounge", Quantity: 1, CubeM3: 2.1, WeightKg: 85},
		{ID: "INV-2", Description: "Queen Bed & Mattress", Room: "Bedroom 1", Quantity: 1, CubeM3: 1.8, WeightKg: 70},
		{ID: "INV-3", Description: "Dining Table", Room: "Dining", Quantity: 1, CubeM3: 1.2, WeightKg: 45},
		{ID: "INV-4", Description: "Packing Carton", Room: "General", Quantity: 40, CubeM3: 4.4, WeightKg: 480},
	}
}

func mockMeasurements() transport.Measurements {
	return transport.Measurements{VolumeM3: 32.5, WeightKg: 3900, WeightLb: 8598}
}

func mockReviews() []transport.Review {
	return []transport.Review{
		{ID: "REV-1", Rating: 5, Comments: "Crew arrived on time and nothing was damaged.", Author: "J. Mitchell", Date: "2026-05-14"},
		{ID: "REV-2", Rating: 4, Comments: "Good service, slightly late delivery.", Author: "P. Nguyen", Date: "2026-06-02"},
	}
}

func mockQuestions() []transport.Question {
	return []transport.Question{
		{ID: "Q-1", Text: "How would you rate the uplift crew?", Category: "Crew"},
		{ID: "Q-2", Text: "How would you rate communication before move day?", Category: "Service"},
	}
}
