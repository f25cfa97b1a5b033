package service

import (
	"errors"
	"testing"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
)

func suggestRequest(title string, category model.Category, listedPrice, quality float64) model.PriceSuggestRequest {
	return model.PriceSuggestRequest{
		Title:       title,
		Category:    category,
		ListedPrice: floatPtr(listedPrice),
		Quality:     quality,
	}
}

// =========================================================================
// MARKET PRICE TESTS
// =========================================================================

func TestSuggest_BaselineNoSignals(t *testing.T) {
	advisor := NewPriceAdvisor()

	resp, err := advisor.Suggest(suggestRequest("plain shirt", model.CategoryClothing, 30, 1))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	// Clothing baseline is 40, multiplier 1, quality 1.
	if resp.MarketPrice != 40 {
		t.Errorf("MarketPrice = %v, want 40", resp.MarketPrice)
	}
	if resp.FairPrice != 40 {
		t.Errorf("FairPrice = %v, want 40", resp.FairPrice)
	}
}

func TestSuggest_TitleSignals(t *testing.T) {
	advisor := NewPriceAdvisor()

	cases := []struct {
		name       string
		title      string
		wantMarket float64 // Electronics baseline 120
	}{
		{"premium signal", "Phone Pro", 168},        // 120 * 1.4
		{"budget signal", "Phone mini", 108},        // 120 * 0.9
		{"bundle signal", "Charger pack", 138},      // 120 * 1.15
		{"signals stack", "Phone Pro bundle", 186},  // 120 * 1.55
		{"case-insensitive", "PHONE ULTRA", 168},    // 120 * 1.4
		{"no signal", "Ordinary phone", 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := advisor.Suggest(suggestRequest(tc.title, model.CategoryElectronics, 100, 1))
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if resp.MarketPrice != tc.wantMarket {
				t.Errorf("MarketPrice = %v, want %v", resp.MarketPrice, tc.wantMarket)
			}
		})
	}
}

func TestSuggest_MarketPriceFloor(t *testing.T) {
	advisor := NewPriceAdvisor()

	// Books baseline 12 with a budget signal: 12 * 0.9 = 10.8 → 11,
	// still above the floor; the floor of 5 applies to anything lower.
	resp, err := advisor.Suggest(suggestRequest("basic paperback", model.CategoryBooks, 3, 1))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if resp.MarketPrice < 5 {
		t.Errorf("MarketPrice = %v, must never drop under 5", resp.MarketPrice)
	}
}

func TestSuggest_EveryCategoryHasABaseline(t *testing.T) {
	// The advisor must cover the full enum — a category with no baseline
	// would silently fall back and hide a drifted table.
	for _, category := range model.Categories() {
		if _, ok := baselineMarket[category]; !ok {
			t.Errorf("category %q has no baseline market price", category)
		}
	}
}

// =========================================================================
// QUALITY TESTS
// =========================================================================

func TestSuggest_QualityClamping(t *testing.T) {
	advisor := NewPriceAdvisor()

	cases := []struct {
		name    string
		quality float64
		want    float64
	}{
		{"zero defaults to 0.7", 0, 0.7},
		{"below floor clamps to 0.4", 0.1, 0.4},
		{"above ceiling clamps to 1", 1.5, 1},
		{"in range passes through", 0.85, 0.85},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := advisor.Suggest(suggestRequest("thing", model.CategoryOther, 10, tc.quality))
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if resp.QualityAdjusted != tc.want {
				t.Errorf("QualityAdjusted = %v, want %v", resp.QualityAdjusted, tc.want)
			}
		})
	}
}

func TestSuggest_FairPriceRounded(t *testing.T) {
	advisor := NewPriceAdvisor()

	// Other baseline 50 × quality 0.85 = 42.5 — exactly two decimals.
	resp, err := advisor.Suggest(suggestRequest("thing", model.CategoryOther, 10, 0.85))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if resp.FairPrice != 42.5 {
		t.Errorf("FairPrice = %v, want 42.5", resp.FairPrice)
	}
}

// =========================================================================
// SUSTAINABILITY TESTS
// =========================================================================

func TestSuggest_SustainabilitySavings(t *testing.T) {
	advisor := NewPriceAdvisor()

	resp, err := advisor.Suggest(suggestRequest("thing", model.CategoryOther, 100, 1))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}

	if resp.Savings.CarbonKg != 1.2 {
		t.Errorf("CarbonKg = %v, want 1.2 (10 km at 0.12 kg/km)", resp.Savings.CarbonKg)
	}
	if resp.Savings.TimeHours != 1 {
		t.Errorf("TimeHours = %v, want 1", resp.Savings.TimeHours)
	}
	// listedPrice 100 → min(2, 1) * 1.2 = 1.2
	if resp.Savings.WasteKg != 1.2 {
		t.Errorf("WasteKg = %v, want 1.2", resp.Savings.WasteKg)
	}
}

func TestSuggest_WasteCapped(t *testing.T) {
	advisor := NewPriceAdvisor()

	// A very expensive item: min(2, 10000/100) caps at 2 → 2.4 kg.
	resp, err := advisor.Suggest(suggestRequest("thing", model.CategoryOther, 10000, 1))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if resp.Savings.WasteKg != 2.4 {
		t.Errorf("WasteKg = %v, want capped 2.4", resp.Savings.WasteKg)
	}
}

// =========================================================================
// VALIDATION TESTS
// =========================================================================

func TestSuggest_MissingFields(t *testing.T) {
	advisor := NewPriceAdvisor()

	cases := []struct {
		name string
		req  model.PriceSuggestRequest
	}{
		{"missing title", model.PriceSuggestRequest{Category: model.CategoryOther, ListedPrice: floatPtr(10)}},
		{"missing category", model.PriceSuggestRequest{Title: "thing", ListedPrice: floatPtr(10)}},
		{"missing listedPrice", model.PriceSuggestRequest{Title: "thing", Category: model.CategoryOther}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := advisor.Suggest(tc.req)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Suggest() error = %v, want ErrValidation", err)
			}
		})
	}
}
