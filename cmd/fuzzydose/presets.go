package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/alexshd/fuzzydose"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the membership tables of every preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := cfg.presets()
		if err != nil {
			return err
		}
		return renderPresets(cmd.OutOrStdout(), presets)
	},
}

func renderPresets(w io.Writer, presets []fuzzydose.Preset) error {
	for i, p := range presets {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Name)

		data := pterm.TableData{
			{"Set", "Control points (x: μ)"},
			{"T_LOW", formatPoints(p.TempLow)},
			{"T_HIGH", formatPoints(p.TempHigh)},
			{"D_LOW", formatPoints(p.DoseLow)},
			{"D_HIGH", formatPoints(p.DoseHigh)},
		}
		if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
			return errors.Wrapf(err, "failed to render preset %s", p.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func formatPoints(mf fuzzydose.MembershipFunction) string {
	parts := make([]string, 0, mf.Len())
	for _, pt := range mf.Points() {
		parts = append(parts, fmt.Sprintf("%g: %g", pt.X, pt.Mu))
	}
	return strings.Join(parts, ", ")
}
