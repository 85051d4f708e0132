package main

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/alexshd/fuzzydose"
)

var interactivePlotDir string

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for temperature, preset and method, then recommend a dose",
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DefaultHeader.Println("Fuzzy dose recommendation")

		raw, err := pterm.DefaultInteractiveTextInput.Show("Patient temperature (°C)")
		if err != nil {
			return errors.Wrap(err, "temperature prompt")
		}
		temp, err := parseTemperature(raw)
		if err != nil {
			return err
		}

		presets, err := cfg.presets()
		if err != nil {
			return err
		}
		names := make([]string, len(presets))
		for i, p := range presets {
			names[i] = p.Name
		}
		selector := pterm.DefaultInteractiveSelect.WithOptions(names)
		if current, err := fuzzydose.FindPreset(presets, cfg.Preset); err == nil {
			selector = selector.WithDefaultOption(current.Name)
		}
		presetName, err := selector.Show("Membership tables")
		if err != nil {
			return errors.Wrap(err, "preset prompt")
		}

		methods := []string{fuzzydose.MinMax.String(), fuzzydose.ProductMax.String()}
		methodName, err := pterm.DefaultInteractiveSelect.
			WithOptions(methods).
			Show("Combination method")
		if err != nil {
			return errors.Wrap(err, "method prompt")
		}

		session := *cfg
		session.Preset = presetName
		session.Method = methodName

		ctrl, err := session.Controller(fuzzydose.WithLogger(slog.Default()))
		if err != nil {
			return err
		}
		res, err := ctrl.Infer(temp)
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), res)

		if interactivePlotDir != "" {
			return writeCharts(interactivePlotDir, ctrl.Preset(), &res)
		}
		return nil
	},
}

func init() {
	interactiveCmd.Flags().StringVar(&interactivePlotDir, "plot", "", "Also write sets.png and result.png to this directory")
}
