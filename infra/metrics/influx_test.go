package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/core/sizing"
)

func TestInfluxSink_RecordEstimate(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.EstimateEvent{
		RequestID:             "req-1",
		VehicleCount:          10,
		AvgAnnualKmPerVehicle: 20000,
		Result: sizing.Result{
			Decision:           sizing.DecisionGo,
			ChargerClass:       sizing.ClassAC,
			UnitsRequired:      3,
			CapexEUR:           9300,
			PaybackYears:       0.6812,
			PaybackDefined:     true,
			PeakDailyDemandKWh: 229.1667,
			ESG: sizing.ESGReport{
				CO2AvoidedTonsPerYear:      35.3333,
				DieselAvoidedLitersPerYear: 13333.3333,
				EquivalentTrees:            1766,
			},
		},
		ComputedAt: now,
	}

	if err := sink.RecordEstimate(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("sizing_estimate").
		AddTag("request_id", "req-1").
		AddTag("decision", "GO").
		AddTag("charger_class", "AC").
		AddTag("payback_defined", "true").
		AddField("vehicle_count", 10).
		AddField("avg_annual_km", 20000.0).
		AddField("units_required", 3).
		AddField("capex_eur", 9300.0).
		AddField("payback_years", 0.681).
		AddField("peak_daily_demand_kwh", 229.167).
		AddField("co2_avoided_tons_year", 35.333).
		AddField("diesel_avoided_liters_year", 13333.333).
		AddField("equivalent_trees", 1766).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.6812, 0.681},
		{229.16675, 229.167},
		{-1.2342, -1.234},
		{0, 0},
	}
	for _, c := range cases {
		if got := round3(c.in); got != c.want {
			t.Errorf("round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink on failing health check, got %T", sink)
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}

func TestNewInfluxSinkWithFallbackHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"influxdb","status":"pass"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL, "tok", "org", "bucket")
	is, ok := sink.(*InfluxSink)
	if !ok {
		t.Fatalf("expected InfluxSink on passing health check, got %T", sink)
	}
	is.Close()
}
