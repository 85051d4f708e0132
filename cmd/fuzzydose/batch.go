package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/alexshd/fuzzydose"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch [temperature...]",
	Short: "Recommend doses for many temperature readings in parallel",
	Long: `Evaluate many readings at once. Temperatures come from the arguments
and/or from --file (one reading per line, blank lines and # comments ignored).
Use --file - to read from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		temps, err := collectTemperatures(args, batchFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		if len(temps) == 0 {
			return errors.WithHint(errors.New("no temperatures given"),
				"pass readings as arguments or with --file")
		}

		ctrl, err := cfg.Controller(fuzzydose.WithLogger(slog.Default()))
		if err != nil {
			return err
		}

		results, err := fuzzydose.InferBatch(cmd.Context(), ctrl, temps, fuzzydose.BatchConfig{
			Concurrency: cfg.Batch.Concurrency,
		})
		if err != nil {
			return err
		}

		return renderBatch(cmd.OutOrStdout(), results)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "File with one temperature per line (- for stdin)")
}

func collectTemperatures(args []string, path string, stdin io.Reader) ([]float64, error) {
	temps := make([]float64, 0, len(args))
	for _, a := range args {
		t, err := parseTemperature(a)
		if err != nil {
			return nil, err
		}
		temps = append(temps, t)
	}

	switch path {
	case "":
		return temps, nil
	case "-":
		fromStdin, err := readTemperatures(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "stdin")
		}
		return append(temps, fromStdin...), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	fromFile, err := readTemperatures(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return append(temps, fromFile...), nil
}

func readTemperatures(r io.Reader) ([]float64, error) {
	var temps []float64

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := parseTemperature(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		temps = append(temps, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read temperatures")
	}
	return temps, nil
}

func renderBatch(w io.Writer, results []fuzzydose.Result) error {
	data := pterm.TableData{{"Temperature (°C)", "T_LOW", "T_HIGH", "Dose (ml)", "Fired"}}
	for _, r := range results {
		data = append(data, []string{
			fmt.Sprintf("%.2f", r.Temperature),
			fmt.Sprintf("%.2f", r.MuLow),
			fmt.Sprintf("%.2f", r.MuHigh),
			fmt.Sprintf("%.2f", r.Dose),
			fmt.Sprintf("%t", r.Fired),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return errors.Wrap(err, "failed to render results")
	}

	s := fuzzydose.Summarize(results)
	fmt.Fprintf(w, "\n%d readings, %d without a firing rule; dose min %.2f / mean %.2f / max %.2f ml\n",
		s.Count, s.Unfired, s.MinDose, s.MeanDose, s.MaxDose)
	return nil
}
