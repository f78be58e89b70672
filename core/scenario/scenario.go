// Package scenario runs the sizing engine over a named list of fleet
// scenarios and summarizes the outcomes. Scenario files are JSON or YAML.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evsize/core/sizing"
)

// Scenario names one fleet configuration to estimate.
type Scenario struct {
	Name  string            `json:"name" yaml:"name"`
	Fleet sizing.FleetInput `json:"fleet" yaml:"fleet"`
}

// Outcome pairs a scenario with its computed result.
type Outcome struct {
	Name   string        `json:"name"`
	Result sizing.Result `json:"result"`
}

// Load reads a scenario list from a JSON or YAML file.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Decode(f, ext)
}

// Decode reads from r to decode a scenario list.
func Decode(r io.Reader, format string) ([]Scenario, error) {
	var scs []Scenario
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&scs); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&scs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	for i, sc := range scs {
		if sc.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
	}
	return scs, nil
}

// Run computes every scenario in order. The first failing scenario aborts the
// sweep with its name attached to the error.
func Run(engine *sizing.Engine, scs []Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scs))
	for _, sc := range scs {
		res, err := engine.Compute(sc.Fleet)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		outcomes = append(outcomes, Outcome{Name: sc.Name, Result: res})
	}
	return outcomes, nil
}
