package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evsize/core/sizing"
)

func testEngine(t *testing.T) *sizing.Engine {
	t.Helper()
	e, err := sizing.New(sizing.Assumptions{}, sizing.Params{})
	require.NoError(t, err)
	return e
}

func TestDecodeYAML(t *testing.T) {
	data := `
- name: small-depot
  fleet:
    vehicle_count: 8
    avg_annual_km_per_vehicle: 20000
- name: big-depot
  fleet:
    vehicle_count: 40
    avg_annual_km_per_vehicle: 35000
    peak_factor: 1.4
`
	scs, err := Decode(strings.NewReader(data), "yaml")
	require.NoError(t, err)
	require.Len(t, scs, 2)
	require.Equal(t, "small-depot", scs[0].Name)
	require.Equal(t, 8, scs[0].Fleet.VehicleCount)
	require.Equal(t, 1.4, scs[1].Fleet.PeakFactor)
}

func TestDecodeJSON(t *testing.T) {
	data := `[{"name":"one","fleet":{"vehicle_count":1,"avg_annual_km_per_vehicle":1}}]`
	scs, err := Decode(strings.NewReader(data), "json")
	require.NoError(t, err)
	require.Len(t, scs, 1)
}

func TestDecodeRejectsUnknownFormatAndUnnamed(t *testing.T) {
	_, err := Decode(strings.NewReader("x"), "toml")
	require.Error(t, err)

	_, err = Decode(strings.NewReader(`[{"fleet":{"vehicle_count":1,"avg_annual_km_per_vehicle":1}}]`), "json")
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.yaml")
	data := `
- name: demo
  fleet:
    vehicle_count: 11
    avg_annual_km_per_vehicle: 30000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	scs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, scs, 1)
	require.Equal(t, "demo", scs[0].Name)
}

func TestRunAbortsWithScenarioName(t *testing.T) {
	e := testEngine(t)
	scs := []Scenario{
		{Name: "valid", Fleet: sizing.FleetInput{VehicleCount: 2, AvgAnnualKmPerVehicle: 10000}},
		{Name: "broken", Fleet: sizing.FleetInput{VehicleCount: 0, AvgAnnualKmPerVehicle: 10000}},
	}
	_, err := Run(e, scs)
	require.ErrorIs(t, err, sizing.ErrInvalidInput)
	require.Contains(t, err.Error(), "broken")
}

func TestRunAndSummarize(t *testing.T) {
	e := testEngine(t)
	cheapDiesel := &sizing.DieselBaseline{KmPerLiter: 15, EURPerLiter: 0.01, KgCO2PerLiter: 2.65}
	scs := []Scenario{
		{Name: "go-1", Fleet: sizing.FleetInput{VehicleCount: 10, AvgAnnualKmPerVehicle: 20000}},
		{Name: "go-2", Fleet: sizing.FleetInput{VehicleCount: 11, AvgAnnualKmPerVehicle: 30000}},
		{Name: "no-saving", Fleet: sizing.FleetInput{VehicleCount: 5, AvgAnnualKmPerVehicle: 30000, Diesel: cheapDiesel}},
	}
	outcomes, err := Run(e, scs)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	sum := Summarize(outcomes)
	require.Equal(t, 3, sum.Scenarios)
	require.Equal(t, 2, sum.GoCount)
	require.InDelta(t, 2.0/3.0, sum.GoShare, 1e-12)
	require.Equal(t, 1, sum.UndefinedPaybacks)
	require.Positive(t, sum.TotalCapexEUR)
	require.Positive(t, sum.MeanCapexEUR)
	require.Positive(t, sum.StdDevCapexEUR)
	require.Positive(t, sum.MeanPaybackYears)
	require.Positive(t, sum.TotalCO2AvoidedTons)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	require.Zero(t, sum.Scenarios)
	require.Zero(t, sum.MeanCapexEUR)
	require.Zero(t, sum.GoShare)
}
