package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alexshd/fuzzydose"
	"github.com/alexshd/fuzzydose/internal/chart"
)

var (
	plotOut  string
	plotTemp string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render membership sets (and optionally one inference) as PNG",
	Long: `Writes <out>/sets.png with the temperature and dose sets of the selected
preset. With --temp, also writes <out>/result.png with the combined output
curve and the crisp dose marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := cfg.Controller(fuzzydose.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		var res *fuzzydose.Result
		if plotTemp != "" {
			temp, err := parseTemperature(plotTemp)
			if err != nil {
				return err
			}
			r, err := ctrl.Infer(temp)
			if err != nil {
				return err
			}
			res = &r
		}

		return writeCharts(plotOut, ctrl.Preset(), res)
	},
}

func init() {
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", ".", "Output directory")
	plotCmd.Flags().StringVarP(&plotTemp, "temp", "t", "", "Also plot the inference for this temperature (°C)")
}

// writeCharts renders sets.png and, when res is non-nil, result.png into dir.
func writeCharts(dir string, preset fuzzydose.Preset, res *fuzzydose.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	setsPath := filepath.Join(dir, "sets.png")
	if err := chart.SaveSets(setsPath, preset, cfg.chartSize(chart.DefaultSetsSize())); err != nil {
		return err
	}
	slog.Info("chart written", "path", setsPath)

	if res == nil {
		return nil
	}

	resultPath := filepath.Join(dir, "result.png")
	if err := chart.SaveResult(resultPath, *res, cfg.chartSize(chart.DefaultResultSize())); err != nil {
		return err
	}
	slog.Info("chart written", "path", resultPath, "dose", res.Dose)
	return nil
}
