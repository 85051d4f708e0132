package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/alexshd/fuzzydose"
)

var inferCmd = &cobra.Command{
	Use:   "infer <temperature>",
	Short: "Recommend a dose for one temperature reading (°C)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		temp, err := parseTemperature(args[0])
		if err != nil {
			return err
		}

		ctrl, err := cfg.Controller(fuzzydose.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		res, err := ctrl.Infer(temp)
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

// parseTemperature validates raw user input before it reaches the controller.
func parseTemperature(s string) (float64, error) {
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.WithHint(
			errors.Newf("invalid temperature %q", s),
			"give the reading in °C, e.g. 38.2")
	}
	return t, nil
}

func printResult(w io.Writer, res fuzzydose.Result) {
	fmt.Fprintf(w, "Temperature: %.2f °C\n", res.Temperature)
	fmt.Fprintf(w, "Preset: %s, method: %s\n", res.Preset, res.Method)
	fmt.Fprintf(w, "Membership in T_LOW: %.2f\n", res.MuLow)
	fmt.Fprintf(w, "Membership in T_HIGH: %.2f\n", res.MuHigh)
	fmt.Fprintf(w, "Recommended dose: %.2f ml\n", res.Dose)

	if !res.Fired {
		pterm.Warning.WithWriter(w).Println("No rule fired: the reading is outside both temperature sets.")
	}
}
