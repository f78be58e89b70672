package sizing

import (
	"fmt"
	"math"
)

// Domain constants shared by every variant of the estimator.
const (
	DefaultPeakFactor         = 1.25
	DefaultWorkingDaysPerYear = 240

	DefaultEnergyKWhPerKm      = 0.22
	DefaultChargingWindowHours = 10.0
	DefaultACPowerKW           = 11.0
	DefaultDCPowerKW           = 30.0

	DefaultTariffEURPerKWh       = 0.22
	DefaultPaybackThresholdYears = 4.0

	// dcThresholdKWhPerVehicleDay is the per-vehicle peak daily demand above
	// which AC rotation no longer fits inside the charging window (11 kW for
	// ~5 h per vehicle). Exactly 55 kWh still sizes as AC.
	dcThresholdKWhPerVehicleDay = 55.0
)

// DefaultCosts lists the installed unit costs used when the caller does not
// supply its own price list.
var DefaultCosts = CostTable{
	ClassAC: {AcquisitionEUR: 1500, InstallationEUR: 1600},
	ClassDC: {AcquisitionEUR: 8500, InstallationEUR: 7500},
}

// DefaultDiesel is the baseline for the diesel-equivalent comparison.
var DefaultDiesel = DieselBaseline{KmPerLiter: 15, EURPerLiter: 1.75, KgCO2PerLiter: 2.65}

// Assumptions are the sizing knobs the caller may tune per deployment.
type Assumptions struct {
	PeakFactor         float64 `json:"peak_factor"`
	WorkingDaysPerYear int     `json:"working_days_per_year"`
	ESGExtended        bool    `json:"esg_extended"`
}

// SetDefaults applies the documented defaults to unset fields.
func (a *Assumptions) SetDefaults() {
	if a.PeakFactor == 0 {
		a.PeakFactor = DefaultPeakFactor
	}
	if a.WorkingDaysPerYear == 0 {
		a.WorkingDaysPerYear = DefaultWorkingDaysPerYear
	}
}

// Validate checks the assumption ranges.
func (a Assumptions) Validate() error {
	if a.PeakFactor <= 0 {
		return fmt.Errorf("%w: peak_factor must be positive", ErrInvalidConfiguration)
	}
	if a.WorkingDaysPerYear <= 0 {
		return fmt.Errorf("%w: working_days_per_year must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// Params holds the physical and economic constants of the estimator.
type Params struct {
	EnergyKWhPerKm      float64 `json:"energy_kwh_per_km"`
	ChargingWindowHours float64 `json:"charging_window_hours"`
	ACPowerKW           float64 `json:"ac_power_kw"`
	DCPowerKW           float64 `json:"dc_power_kw"`

	TariffEURPerKWh       float64 `json:"tariff_eur_per_kwh"`
	PaybackThresholdYears float64 `json:"payback_threshold_years"`
	// GridKgCO2PerKWh is subtracted from the diesel emissions when computing
	// the avoided CO2 delta. Zero treats charging as carbon free.
	GridKgCO2PerKWh float64 `json:"grid_kg_co2_per_kwh"`

	Costs  CostTable      `json:"costs"`
	Diesel DieselBaseline `json:"diesel"`
}

// DefaultParams returns the estimator constants used by the demo variants.
func DefaultParams() Params {
	p := Params{}
	p.SetDefaults()
	return p
}

// SetDefaults fills unset fields with the documented defaults.
func (p *Params) SetDefaults() {
	if p.EnergyKWhPerKm == 0 {
		p.EnergyKWhPerKm = DefaultEnergyKWhPerKm
	}
	if p.ChargingWindowHours == 0 {
		p.ChargingWindowHours = DefaultChargingWindowHours
	}
	if p.ACPowerKW == 0 {
		p.ACPowerKW = DefaultACPowerKW
	}
	if p.DCPowerKW == 0 {
		p.DCPowerKW = DefaultDCPowerKW
	}
	if p.TariffEURPerKWh == 0 {
		p.TariffEURPerKWh = DefaultTariffEURPerKWh
	}
	if p.PaybackThresholdYears == 0 {
		p.PaybackThresholdYears = DefaultPaybackThresholdYears
	}
	if p.Costs == nil {
		p.Costs = DefaultCosts
	}
	if p.Diesel == (DieselBaseline{}) {
		p.Diesel = DefaultDiesel
	}
}

// Validate checks that every constant is usable.
func (p Params) Validate() error {
	switch {
	case p.EnergyKWhPerKm <= 0:
		return fmt.Errorf("%w: energy_kwh_per_km must be positive", ErrInvalidConfiguration)
	case p.ChargingWindowHours <= 0:
		return fmt.Errorf("%w: charging_window_hours must be positive", ErrInvalidConfiguration)
	case p.ACPowerKW <= 0 || p.DCPowerKW <= 0:
		return fmt.Errorf("%w: station power must be positive", ErrInvalidConfiguration)
	case p.TariffEURPerKWh <= 0:
		return fmt.Errorf("%w: tariff_eur_per_kwh must be positive", ErrInvalidConfiguration)
	case p.PaybackThresholdYears <= 0:
		return fmt.Errorf("%w: payback_threshold_years must be positive", ErrInvalidConfiguration)
	case p.Diesel.KmPerLiter <= 0:
		return fmt.Errorf("%w: diesel km_per_liter must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// Engine computes sizing estimates. It holds only configuration and is safe
// for concurrent use.
type Engine struct {
	assumptions Assumptions
	params      Params
}

// New returns an Engine with defaults applied to unset fields.
func New(a Assumptions, p Params) (*Engine, error) {
	a.SetDefaults()
	p.SetDefaults()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{assumptions: a, params: p}, nil
}

// Assumptions returns the effective assumptions of the engine.
func (e *Engine) Assumptions() Assumptions { return e.assumptions }

// Compute maps one FleetInput to a Result. It has no side effects and keeps
// no state between calls: identical input yields an identical result.
func (e *Engine) Compute(in FleetInput) (Result, error) {
	if in.VehicleCount <= 0 {
		return Result{}, fmt.Errorf("%w: vehicle_count must be positive", ErrInvalidInput)
	}
	if in.AvgAnnualKmPerVehicle <= 0 {
		return Result{}, fmt.Errorf("%w: avg_annual_km_per_vehicle must be positive", ErrInvalidInput)
	}

	peakFactor := in.PeakFactor
	if peakFactor == 0 {
		peakFactor = e.assumptions.PeakFactor
	}
	if peakFactor <= 0 {
		return Result{}, fmt.Errorf("%w: peak_factor must be positive", ErrInvalidInput)
	}
	workingDays := in.WorkingDaysPerYear
	if workingDays == 0 {
		workingDays = e.assumptions.WorkingDaysPerYear
	}
	if workingDays <= 0 {
		return Result{}, fmt.Errorf("%w: working_days_per_year must be positive", ErrInvalidInput)
	}
	costs := in.Costs
	if costs == nil {
		costs = e.params.Costs
	}
	diesel := e.params.Diesel
	if in.Diesel != nil {
		diesel = *in.Diesel
	}
	if diesel.KmPerLiter <= 0 {
		return Result{}, fmt.Errorf("%w: diesel km_per_liter must be positive", ErrInvalidInput)
	}

	annualKm := float64(in.VehicleCount) * in.AvgAnnualKmPerVehicle
	annualKWh := annualKm * e.params.EnergyKWhPerKm

	avgDaily := annualKWh / float64(workingDays)
	peakDaily := avgDaily * peakFactor
	perVehiclePeak := peakDaily / float64(in.VehicleCount)

	class := ClassAC
	if perVehiclePeak > dcThresholdKWhPerVehicleDay {
		class = ClassDC
	}

	throughput := e.stationThroughputKWhPerDay(class)
	units := int(math.Ceil(peakDaily / throughput))
	if units < 1 {
		units = 1
	}

	entry, ok := costs[class]
	if !ok {
		return Result{}, fmt.Errorf("%w: cost table has no entry for class %s", ErrInvalidConfiguration, class)
	}
	capex := float64(units) * entry.Total()

	evCost := annualKWh * e.params.TariffEURPerKWh
	dieselLiters := annualKm / diesel.KmPerLiter
	dieselCost := dieselLiters * diesel.EURPerLiter
	saving := dieselCost - evCost

	res := Result{
		ChargerClass:        class,
		UnitsRequired:       units,
		CapexEUR:            capex,
		AvgDailyDemandKWh:   avgDaily,
		PeakDailyDemandKWh:  peakDaily,
		PeakFactor:          peakFactor,
		WorkingDaysPerYear:  workingDays,
		AnnualEnergyKWh:     annualKWh,
		AnnualEVCostEUR:     evCost,
		AnnualDieselCostEUR: dieselCost,
		AnnualSavingEUR:     saving,
	}

	if saving > 0 {
		res.PaybackDefined = true
		res.PaybackYears = capex / saving
	}
	res.Decision = DecisionNoGo
	if res.PaybackDefined && res.PaybackYears <= e.params.PaybackThresholdYears {
		res.Decision = DecisionGo
	}

	res.ESG = e.esgReport(in.VehicleCount, annualKm, annualKWh, dieselLiters, diesel)
	return res, nil
}

func (e *Engine) stationThroughputKWhPerDay(class ChargerClass) float64 {
	power := e.params.ACPowerKW
	if class == ClassDC {
		power = e.params.DCPowerKW
	}
	return power * e.params.ChargingWindowHours
}
