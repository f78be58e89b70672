package scenario

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evsize/core/sizing"
)

// Summary aggregates a sweep for reporting. Payback statistics only cover
// scenarios with a defined payback; the rest are counted separately.
type Summary struct {
	Scenarios int     `json:"scenarios"`
	GoCount   int     `json:"go_count"`
	GoShare   float64 `json:"go_share"`

	TotalCapexEUR  float64 `json:"total_capex_eur"`
	MeanCapexEUR   float64 `json:"mean_capex_eur"`
	StdDevCapexEUR float64 `json:"stddev_capex_eur"`

	MeanPaybackYears   float64 `json:"mean_payback_years"`
	StdDevPaybackYears float64 `json:"stddev_payback_years"`
	UndefinedPaybacks  int     `json:"undefined_paybacks"`

	TotalCO2AvoidedTons float64 `json:"total_co2_avoided_tons"`
}

// Summarize reduces a sweep to its headline figures.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Scenarios: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}

	capex := make([]float64, 0, len(outcomes))
	var paybacks []float64
	for _, o := range outcomes {
		r := o.Result
		capex = append(capex, r.CapexEUR)
		s.TotalCapexEUR += r.CapexEUR
		s.TotalCO2AvoidedTons += r.ESG.CO2AvoidedTonsPerYear
		if r.Decision == sizing.DecisionGo {
			s.GoCount++
		}
		if r.PaybackDefined {
			paybacks = append(paybacks, r.PaybackYears)
		} else {
			s.UndefinedPaybacks++
		}
	}
	s.GoShare = float64(s.GoCount) / float64(len(outcomes))

	s.MeanCapexEUR = stat.Mean(capex, nil)
	if len(capex) > 1 {
		s.StdDevCapexEUR = stat.StdDev(capex, nil)
	}
	if len(paybacks) > 0 {
		s.MeanPaybackYears = stat.Mean(paybacks, nil)
	}
	if len(paybacks) > 1 {
		s.StdDevPaybackYears = stat.StdDev(paybacks, nil)
	}
	return s
}
