package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/pkg/export"
)

var (
	estVehicles    int
	estKm          float64
	estPeakFactor  float64
	estWorkingDays int
	estFormat      string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute one GO/NO-GO estimate from the command line",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().IntVarP(&estVehicles, "vehicles", "n", 0, "number of vehicles in the fleet")
	estimateCmd.Flags().Float64Var(&estKm, "km", 0, "average annual km per vehicle")
	estimateCmd.Flags().Float64Var(&estPeakFactor, "peak-factor", 0, "peak factor override")
	estimateCmd.Flags().IntVar(&estWorkingDays, "working-days", 0, "working days per year override")
	estimateCmd.Flags().StringVarP(&estFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine, err := sizing.New(cfg.Engine.Assumptions, cfg.Engine.Params)
	if err != nil {
		return err
	}
	res, err := engine.Compute(sizing.FleetInput{
		VehicleCount:          estVehicles,
		AvgAnnualKmPerVehicle: estKm,
		PeakFactor:            estPeakFactor,
		WorkingDaysPerYear:    estWorkingDays,
	})
	if err != nil {
		return err
	}
	switch estFormat {
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), res)
	case "csv":
		return export.WriteResultCSV(cmd.OutOrStdout(), res)
	default:
		return fmt.Errorf("unsupported format: %s", estFormat)
	}
}
