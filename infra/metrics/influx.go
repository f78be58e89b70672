package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/infra/logger"
)

// InfluxSink writes sizing estimates to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordEstimate writes the estimate as a single measurement point.
func (s *InfluxSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := ev.Result
	p := write.NewPointWithMeasurement("sizing_estimate").
		AddTag("request_id", ev.RequestID).
		AddTag("decision", string(res.Decision)).
		AddTag("charger_class", string(res.ChargerClass)).
		AddTag("payback_defined", strconv.FormatBool(res.PaybackDefined)).
		AddField("vehicle_count", ev.VehicleCount).
		AddField("avg_annual_km", round3(ev.AvgAnnualKmPerVehicle)).
		AddField("units_required", res.UnitsRequired).
		AddField("capex_eur", round3(res.CapexEUR)).
		AddField("payback_years", round3(res.PaybackYears)).
		AddField("peak_daily_demand_kwh", round3(res.PeakDailyDemandKWh)).
		AddField("co2_avoided_tons_year", round3(res.ESG.CO2AvoidedTonsPerYear)).
		AddField("diesel_avoided_liters_year", round3(res.ESG.DieselAvoidedLitersPerYear)).
		AddField("equivalent_trees", res.ESG.EquivalentTrees).
		SetTime(ev.ComputedAt)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
