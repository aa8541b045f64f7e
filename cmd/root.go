package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ridepricer/app"
	"ridepricer/config"
	"ridepricer/core/model"
	"ridepricer/infra/logger"
	"ridepricer/pkg/export"
)

var (
	cfgPath   string
	outPath   string
	outFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ridepricer",
	Short: "Pricing and fleet-allocation decision engine",
	RunE:  run,
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Fit the demand surrogates and search for the best decision",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "write the best decision to this file")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(optimizeCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	if outPath == "" {
		return nil
	}
	return writeResult(outPath, outFormat, res)
}

func writeResult(path, format string, res model.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	switch format {
	case "json":
		return export.WriteJSON(f, res)
	case "csv":
		return export.WriteCSV(f, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
