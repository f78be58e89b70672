package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evsize/core/scenario"
	"github.com/kilianp07/evsize/core/sizing"
)

func computedResult(t *testing.T, in sizing.FleetInput) sizing.Result {
	t.Helper()
	e, err := sizing.New(sizing.Assumptions{}, sizing.Params{})
	require.NoError(t, err)
	res, err := e.Compute(in)
	require.NoError(t, err)
	return res
}

func TestWriteResultCSV(t *testing.T) {
	res := computedResult(t, sizing.FleetInput{VehicleCount: 10, AvgAnnualKmPerVehicle: 20000})

	var buf bytes.Buffer
	require.NoError(t, WriteResultCSV(&buf, res))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, resultHeader, rows[0])
	require.Equal(t, len(resultHeader), len(rows[1]))
	require.Equal(t, "GO", rows[1][0])
	require.Equal(t, "AC", rows[1][1])
	require.Equal(t, "3", rows[1][2])
	require.Equal(t, "9300", rows[1][3])
}

func TestWriteResultCSVUndefinedPayback(t *testing.T) {
	cheapDiesel := &sizing.DieselBaseline{KmPerLiter: 15, EURPerLiter: 0.01, KgCO2PerLiter: 2.65}
	res := computedResult(t, sizing.FleetInput{VehicleCount: 5, AvgAnnualKmPerVehicle: 30000, Diesel: cheapDiesel})
	require.False(t, res.PaybackDefined)

	var buf bytes.Buffer
	require.NoError(t, WriteResultCSV(&buf, res))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, PaybackUndefined, rows[1][4])
}

func TestWriteOutcomesCSV(t *testing.T) {
	res := computedResult(t, sizing.FleetInput{VehicleCount: 1, AvgAnnualKmPerVehicle: 1})
	outcomes := []scenario.Outcome{{Name: "tiny", Result: res}}

	var buf bytes.Buffer
	require.NoError(t, WriteOutcomesCSV(&buf, outcomes))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "scenario", rows[0][0])
	require.Equal(t, "tiny", rows[1][0])
	require.Equal(t, "NO_GO", rows[1][1])
}

func TestWriteJSON(t *testing.T) {
	res := computedResult(t, sizing.FleetInput{VehicleCount: 10, AvgAnnualKmPerVehicle: 20000})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))
	out := buf.String()
	require.True(t, strings.Contains(out, `"decision": "GO"`))
	require.True(t, strings.Contains(out, `"charger_class": "AC"`))
}
