package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ridepricer/core/model"
	"ridepricer/core/panel"
	"ridepricer/infra/logger"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Build the training panel and print bucket statistics",
	RunE:  inspectPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func inspectPanel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logg := logger.New("panel-command")

	var rows []model.PanelRow
	if cfg.Data.TripsPath == "" {
		rows = panel.GeneratePanel(cfg.Data.WeatherSeed, cfg.Data.SyntheticBuckets)
	} else {
		trips, err := panel.LoadTrips(cfg.Data.TripsPath)
		if err != nil {
			return fmt.Errorf("load trips: %w", err)
		}
		rows = panel.Build(trips, panel.SyntheticWeather(cfg.Data.WeatherSeed))
	}

	counts := make(map[model.VehicleType]int)
	demand := make(map[model.VehicleType]float64)
	for _, r := range rows {
		counts[r.Type]++
		demand[r.Type] += r.Demand
	}
	for _, t := range model.VehicleTypes {
		logg.Infof("%s: %d buckets, %.0f rides", t, counts[t], demand[t])
	}
	logg.Infof("total: %d buckets", len(rows))
	return nil
}
