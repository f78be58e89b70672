package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/evsize/core/scenario"
	"github.com/kilianp07/evsize/core/sizing"
)

// PaybackUndefined is written in place of a payback figure when the annual
// saving is not positive. Callers must not coerce it to zero or infinity.
const PaybackUndefined = "undefined"

// resultHeader lists the flattened columns of a sizing result.
var resultHeader = []string{
	"decision",
	"charger_class",
	"units_required",
	"capex_eur",
	"payback_years",
	"avg_daily_demand_kwh",
	"peak_daily_demand_kwh",
	"peak_factor",
	"working_days_per_year",
	"annual_energy_kwh",
	"annual_ev_cost_eur",
	"annual_diesel_cost_eur",
	"annual_saving_eur",
	"co2_avoided_tons_per_year",
	"co2_avoided_kg_per_vehicle_per_year",
	"co2_avoided_g_per_km",
	"diesel_avoided_liters_per_year",
	"equivalent_trees",
	"esg_rating",
}

func resultRow(res sizing.Result) []string {
	payback := PaybackUndefined
	if res.PaybackDefined {
		payback = f(res.PaybackYears)
	}
	return []string{
		string(res.Decision),
		string(res.ChargerClass),
		strconv.Itoa(res.UnitsRequired),
		f(res.CapexEUR),
		payback,
		f(res.AvgDailyDemandKWh),
		f(res.PeakDailyDemandKWh),
		f(res.PeakFactor),
		strconv.Itoa(res.WorkingDaysPerYear),
		f(res.AnnualEnergyKWh),
		f(res.AnnualEVCostEUR),
		f(res.AnnualDieselCostEUR),
		f(res.AnnualSavingEUR),
		f(res.ESG.CO2AvoidedTonsPerYear),
		f(res.ESG.CO2AvoidedKgPerVehiclePerYear),
		f(res.ESG.CO2AvoidedGPerKm),
		f(res.ESG.DieselAvoidedLitersPerYear),
		strconv.Itoa(res.ESG.EquivalentTrees),
		res.ESG.Rating,
	}
}

func f(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteJSON writes v to w in JSON format.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResultCSV writes one or more sizing results to w as flattened CSV rows.
func WriteResultCSV(w io.Writer, results ...sizing.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultHeader); err != nil {
		return err
	}
	for _, res := range results {
		if err := cw.Write(resultRow(res)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOutcomesCSV writes a scenario sweep to w, one row per scenario with the
// scenario name as the leading column.
func WriteOutcomesCSV(w io.Writer, outcomes []scenario.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"scenario"}, resultHeader...)); err != nil {
		return err
	}
	for _, o := range outcomes {
		if err := cw.Write(append([]string{o.Name}, resultRow(o.Result)...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
