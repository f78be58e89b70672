package sizing

// ChargerClass identifies the hardware family used for a sizing.
type ChargerClass string

const (
	ClassAC ChargerClass = "AC"
	ClassDC ChargerClass = "DC"
)

// Decision is the binary investment-readiness outcome.
type Decision string

const (
	DecisionGo   Decision = "GO"
	DecisionNoGo Decision = "NO_GO"
)

// CostEntry holds per-unit hardware costs in EUR.
type CostEntry struct {
	AcquisitionEUR  float64 `json:"acquisition_eur" yaml:"acquisition_eur"`
	InstallationEUR float64 `json:"installation_eur" yaml:"installation_eur"`
}

// Total returns the installed cost of one unit.
func (c CostEntry) Total() float64 { return c.AcquisitionEUR + c.InstallationEUR }

// CostTable maps charger classes to their per-unit costs.
type CostTable map[ChargerClass]CostEntry

// DieselBaseline holds the constants of the diesel-equivalent comparison.
type DieselBaseline struct {
	KmPerLiter    float64 `json:"km_per_liter" yaml:"km_per_liter"`
	EURPerLiter   float64 `json:"eur_per_liter" yaml:"eur_per_liter"`
	KgCO2PerLiter float64 `json:"kg_co2_per_liter" yaml:"kg_co2_per_liter"`
}

// FleetInput describes one fleet to size. VehicleCount and
// AvgAnnualKmPerVehicle are mandatory; the remaining fields override the
// engine defaults when non-zero and are echoed back in the Result.
type FleetInput struct {
	VehicleCount          int     `json:"vehicle_count" yaml:"vehicle_count"`
	AvgAnnualKmPerVehicle float64 `json:"avg_annual_km_per_vehicle" yaml:"avg_annual_km_per_vehicle"`

	PeakFactor         float64         `json:"peak_factor,omitempty" yaml:"peak_factor"`
	WorkingDaysPerYear int             `json:"working_days_per_year,omitempty" yaml:"working_days_per_year"`
	Costs              CostTable       `json:"costs,omitempty" yaml:"costs"`
	Diesel             *DieselBaseline `json:"diesel,omitempty" yaml:"diesel"`
}

// ESGReport groups the emissions and fuel avoidance indicators.
// The per-vehicle and per-km figures are only populated when the engine runs
// with ESGExtended enabled.
type ESGReport struct {
	CO2AvoidedTonsPerYear         float64 `json:"co2_avoided_tons_per_year"`
	CO2AvoidedKgPerVehiclePerYear float64 `json:"co2_avoided_kg_per_vehicle_per_year,omitempty"`
	CO2AvoidedGPerKm              float64 `json:"co2_avoided_g_per_km,omitempty"`
	DieselAvoidedLitersPerYear    float64 `json:"diesel_avoided_liters_per_year"`
	EquivalentTrees               int     `json:"equivalent_trees"`
	Rating                        string  `json:"rating"`
}

// Result is the complete outcome of one sizing computation. It is produced
// fresh per Compute call and never mutated afterwards.
type Result struct {
	Decision      Decision     `json:"decision"`
	ChargerClass  ChargerClass `json:"charger_class"`
	UnitsRequired int          `json:"units_required"`
	CapexEUR      float64      `json:"capex_eur"`

	// PaybackYears is only meaningful when PaybackDefined is true. An
	// undefined payback is a distinct state, not zero or infinity.
	PaybackYears   float64 `json:"payback_years,omitempty"`
	PaybackDefined bool    `json:"payback_defined"`

	AvgDailyDemandKWh  float64 `json:"avg_daily_demand_kwh"`
	PeakDailyDemandKWh float64 `json:"peak_daily_demand_kwh"`

	// Assumptions echoed back so callers can display what produced the sizing.
	PeakFactor         float64 `json:"peak_factor"`
	WorkingDaysPerYear int     `json:"working_days_per_year"`

	AnnualEnergyKWh     float64 `json:"annual_energy_kwh"`
	AnnualEVCostEUR     float64 `json:"annual_ev_cost_eur"`
	AnnualDieselCostEUR float64 `json:"annual_diesel_cost_eur"`
	AnnualSavingEUR     float64 `json:"annual_saving_eur"`

	ESG ESGReport `json:"esg"`
}
