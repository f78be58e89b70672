package sizing

import "math"

// TreesPerTonCO2 converts avoided CO2 into the illustrative tree-equivalent
// figure shown on KPI cards.
const TreesPerTonCO2 = 50

// Rating tier bounds in avoided tons of CO2 per year.
const (
	RatingAAAMinTons = 5.0
	RatingAMinTons   = 1.0
)

// RatingTier pairs a lower bound with its qualitative label.
type RatingTier struct {
	MinTons float64
	Label   string
}

// RatingTiers is walked in order; the first tier whose bound is met wins.
// The final tier has a zero bound and acts as the catch-all.
var RatingTiers = []RatingTier{
	{MinTons: RatingAAAMinTons, Label: "AAA"},
	{MinTons: RatingAMinTons, Label: "A"},
	{MinTons: 0, Label: "B"},
}

func ratingFor(tons float64) string {
	for _, t := range RatingTiers {
		if tons >= t.MinTons {
			return t.Label
		}
	}
	return RatingTiers[len(RatingTiers)-1].Label
}

// esgReport derives the avoidance KPIs from the same volumetrics that drove
// CAPEX. The extended per-vehicle and per-km figures follow ESGExtended.
func (e *Engine) esgReport(vehicles int, annualKm, annualKWh, dieselLiters float64, diesel DieselBaseline) ESGReport {
	dieselKg := dieselLiters * diesel.KgCO2PerLiter
	evKg := annualKWh * e.params.GridKgCO2PerKWh
	avoidedKg := dieselKg - evKg
	tons := avoidedKg / 1000

	trees := int(math.Floor(tons * TreesPerTonCO2))
	if trees < 0 {
		trees = 0
	}

	rep := ESGReport{
		CO2AvoidedTonsPerYear:      tons,
		DieselAvoidedLitersPerYear: dieselLiters,
		EquivalentTrees:            trees,
		Rating:                     ratingFor(tons),
	}
	if e.assumptions.ESGExtended {
		rep.CO2AvoidedKgPerVehiclePerYear = avoidedKg / float64(vehicles)
		rep.CO2AvoidedGPerKm = avoidedKg * 1000 / annualKm
	}
	return rep
}
