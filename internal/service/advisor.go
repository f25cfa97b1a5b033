package service

import (
	"fmt"
	"math"
	"regexp"

	"github.com/sakif/ecofinds/internal/apperror"
	"github.com/sakif/ecofinds/internal/model"
)

// PriceAdvisor estimates a fair second-hand price and the sustainability
// savings of buying used. Pure heuristics — lookup tables and title
// signals — with no external calls, so it needs no repository and no
// context.
type PriceAdvisor struct{}

// NewPriceAdvisor creates a PriceAdvisor.
func NewPriceAdvisor() *PriceAdvisor {
	return &PriceAdvisor{}
}

// baselineMarket is the assumed new-item market price per category, in
// currency units. It covers the FULL category enum — the advisor and the
// catalog share model.Category, so there is no second category set to
// drift out of sync.
var baselineMarket = map[model.Category]float64{
	model.CategoryElectronics:    120,
	model.CategoryHomeAppliances: 80,
	model.CategoryClothing:       40,
	model.CategoryFurniture:      80,
	model.CategoryBooks:          12,
	model.CategorySports:         70,
	model.CategoryBeauty:         25,
	model.CategoryGroceries:      20,
	model.CategoryAutomotive:     150,
	model.CategoryHealth:         45,
	model.CategoryToys:           35,
	model.CategoryOffice:         30,
	model.CategoryJewelry:        60,
	model.CategoryGarden:         55,
	model.CategoryOther:          50,
}

// defaultBaseline is used when the category is not in the map.
const defaultBaseline = 50

// Title signals that move the market estimate.
var (
	premiumSignal = regexp.MustCompile(`(?i)(pro|max|ultra)`)
	budgetSignal  = regexp.MustCompile(`(?i)(mini|lite|basic)`)
	bundleSignal  = regexp.MustCompile(`(?i)(bundle|set|pack)`)
)

// Sustainability constants: an average 10 km round trip to a shop at
// 0.12 kg CO2 per km, an hour of travel-and-browsing time, and avoided
// packaging waste scaled by price.
const (
	avgTripKm      = 10
	carKgPerKm     = 0.12
	avgTripHours   = 1
	wastePerUnit   = 1.2
	maxWasteFactor = 2
)

// Suggest computes the fair-price estimate for a listing.
//
// marketPrice = max(5, round(baseline × title multiplier)); the quality
// factor (defaulting to 0.7, clamped to 0.4..1) scales it down to the
// fair price, rounded to 2 decimals.
func (a *PriceAdvisor) Suggest(req model.PriceSuggestRequest) (*model.PriceSuggestResponse, error) {
	if req.Title == "" || req.Category == "" {
		return nil, apperror.ValidationFailed("title", "title, category, listedPrice required")
	}
	if req.ListedPrice == nil {
		return nil, apperror.ValidationFailed("listedPrice", "title, category, listedPrice required")
	}

	market := a.estimateMarketPrice(req.Category, req.Title)

	quality := req.Quality
	if quality == 0 {
		quality = 0.7
	}
	quality = math.Min(1, math.Max(0.4, quality))

	fair := math.Round(market*quality*100) / 100

	return &model.PriceSuggestResponse{
		FairPrice:       fair,
		MarketPrice:     market,
		QualityAdjusted: quality,
		Savings:         a.estimateSustainability(*req.ListedPrice),
		Rationale: fmt.Sprintf("Baseline %g adjusted by quality factor %g and title signals.",
			market, quality),
	}, nil
}

func (a *PriceAdvisor) estimateMarketPrice(category model.Category, title string) float64 {
	base, ok := baselineMarket[category]
	if !ok {
		base = defaultBaseline
	}

	multiplier := 1.0
	if premiumSignal.MatchString(title) {
		multiplier += 0.4
	}
	if budgetSignal.MatchString(title) {
		multiplier -= 0.1
	}
	if bundleSignal.MatchString(title) {
		multiplier += 0.15
	}

	return math.Max(5, math.Round(base*multiplier))
}

func (a *PriceAdvisor) estimateSustainability(listedPrice float64) model.SustainabilitySavings {
	carbon := math.Round(avgTripKm*carKgPerKm*100) / 100
	waste := math.Round(math.Min(maxWasteFactor, listedPrice/100)*wastePerUnit*100) / 100
	return model.SustainabilitySavings{
		CarbonKg:  carbon,
		TimeHours: avgTripHours,
		WasteKg:   waste,
	}
}
