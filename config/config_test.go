package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/evsize/core/sizing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `engine:
  assumptions:
    peak_factor: 1.3
    working_days_per_year: 250
    esg_extended: true
  params:
    tariff_eur_per_kwh: 0.25
    payback_threshold_years: 5
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9100"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  client_id: "evsize"
  topic: "fleet/estimates"
api:
  addr: ":8085"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"peak_factor", cfg.Engine.Assumptions.PeakFactor, 1.3},
		{"working_days", cfg.Engine.Assumptions.WorkingDaysPerYear, 250},
		{"esg_extended", cfg.Engine.Assumptions.ESGExtended, true},
		{"tariff", cfg.Engine.Params.TariffEURPerKWh, 0.25},
		{"payback_threshold", cfg.Engine.Params.PaybackThresholdYears, 5.0},
		{"energy_per_km_default", cfg.Engine.Params.EnergyKWhPerKm, sizing.DefaultEnergyKWhPerKm},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9100"},
		{"mqtt_enabled", cfg.MQTT.Enabled, true},
		{"mqtt_broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt_topic", cfg.MQTT.Topic, "fleet/estimates"},
		{"api_addr", cfg.API.Addr, ":8085"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EVSIZE_API__ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":9999" {
		t.Errorf("env override not applied: %s", cfg.API.Addr)
	}
}

func TestLoadRejectsUnknownExtensionAndBadEngine(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "engine:\n  params:\n    energy_kwh_per_km: -1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.Assumptions.PeakFactor != sizing.DefaultPeakFactor {
		t.Errorf("peak factor default: %v", cfg.Engine.Assumptions.PeakFactor)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api addr default: %v", cfg.API.Addr)
	}
	if cfg.Metrics.PrometheusAddr != ":9090" {
		t.Errorf("prometheus addr default: %v", cfg.Metrics.PrometheusAddr)
	}
}
