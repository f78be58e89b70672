package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evsize/core/scenario"
	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/pkg/export"
)

var (
	sweepFile   string
	sweepFormat string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the engine over a scenario file and summarize the outcomes",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&sweepFile, "scenarios", "s", "", "scenario file (yaml or json)")
	sweepCmd.Flags().StringVarP(&sweepFormat, "format", "f", "json", "output format: json or csv")
	_ = sweepCmd.MarkFlagRequired("scenarios")
	rootCmd.AddCommand(sweepCmd)
}

// sweepReport is the JSON shape of a sweep: every outcome plus the aggregate.
type sweepReport struct {
	Outcomes []scenario.Outcome `json:"outcomes"`
	Summary  scenario.Summary   `json:"summary"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	engine, err := sizing.New(cfg.Engine.Assumptions, cfg.Engine.Params)
	if err != nil {
		return err
	}
	scs, err := scenario.Load(sweepFile)
	if err != nil {
		return fmt.Errorf("load scenarios: %w", err)
	}
	outcomes, err := scenario.Run(engine, scs)
	if err != nil {
		return err
	}
	switch sweepFormat {
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), sweepReport{
			Outcomes: outcomes,
			Summary:  scenario.Summarize(outcomes),
		})
	case "csv":
		return export.WriteOutcomesCSV(cmd.OutOrStdout(), outcomes)
	default:
		return fmt.Errorf("unsupported format: %s", sweepFormat)
	}
}
