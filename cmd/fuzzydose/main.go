// Command fuzzydose recommends a drug dose from a patient temperature using
// a two-rule fuzzy controller.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *Config
)

var rootCmd = &cobra.Command{
	Use:   "fuzzydose",
	Short: "Fuzzy dose recommendation from body temperature",
	Long: `fuzzydose - two-rule fuzzy controller for dose recommendation.

Rules:
  IF temperature is LOW  THEN dose is LOW
  IF temperature is HIGH THEN dose is HIGH

Available commands:
  infer       - Recommend a dose for one temperature
  batch       - Recommend doses for many temperatures in parallel
  presets     - Show the membership tables
  plot        - Render the membership sets (and a result) as PNG
  interactive - Ask for temperature, preset and method interactively

Examples:
  fuzzydose infer 38.2
  fuzzydose infer 38.2 --preset alternative --method product
  fuzzydose batch 37 37.5 38 38.5 39
  fuzzydose plot --temp 38.2 --out ./charts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		setupLogger(cmd.ErrOrStderr(), verbosity)

		v, err := newViper(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		cfg, err = LoadConfig(v)
		if err != nil {
			return err
		}

		slog.Debug("configuration loaded",
			"preset", cfg.Preset,
			"method", cfg.Method,
			"presets_file", cfg.PresetsFile,
			"strict", cfg.Strict,
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./fuzzydose.yaml if present)")
	rootCmd.PersistentFlags().StringP("preset", "p", "default", "Membership table preset (name or menu number)")
	rootCmd.PersistentFlags().StringP("method", "m", "min-max", "Combination method: min-max or product-max")
	rootCmd.PersistentFlags().String("presets-file", "", "YAML file with additional presets")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail when no rule fires instead of recommending 0")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v for debug logs)")

	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(interactiveCmd)
}

func setupLogger(w io.Writer, verbosity int) {
	level := slog.LevelInfo
	if verbosity > 0 {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
