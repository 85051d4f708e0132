// Package chart renders fuzzy sets and inference results as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/alexshd/fuzzydose"
)

// Size is the output image size in inches.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSetsSize matches a wide two-panel figure.
func DefaultSetsSize() Size { return Size{Width: 12, Height: 4} }

// DefaultResultSize matches a single-panel figure.
func DefaultResultSize() Size { return Size{Width: 10, Height: 6} }

func (s Size) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Newf("chart size must be positive, got %gx%g in", s.Width, s.Height)
	}
	return nil
}

// WriteSets draws the temperature sets (left) and dose sets (right) of a preset.
func WriteSets(w io.Writer, preset fuzzydose.Preset, size Size) error {
	if err := size.validate(); err != nil {
		return err
	}

	temp, err := setsPlot("Temperature sets ("+preset.Name+")", "Temperature (°C)",
		"T_LOW", preset.TempLow, "T_HIGH", preset.TempHigh)
	if err != nil {
		return err
	}
	dose, err := setsPlot("Dose sets ("+preset.Name+")", "Dose (ml)",
		"D_LOW", preset.DoseLow, "D_HIGH", preset.DoseHigh)
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,

		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align([][]*plot.Plot{{temp, dose}}, tiles, dc)
	temp.Draw(canvases[0][0])
	dose.Draw(canvases[0][1])

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to encode sets chart")
	}
	return nil
}

// WriteResult draws the combined dose curve with the crisp dose marked.
func WriteResult(w io.Writer, res fuzzydose.Result, size Size) error {
	if err := size.validate(); err != nil {
		return err
	}
	if res.Curve.Len() == 0 {
		return errors.New("result has no combined curve")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Inference result: T=%.2f °C, %s", res.Temperature, res.Method)
	p.X.Label.Text = "Dose (ml)"
	p.Y.Label.Text = "Membership degree"
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	curve := make(plotter.XYs, res.Curve.Len())
	for i := range curve {
		curve[i].X = res.Curve.Domain[i]
		curve[i].Y = res.Curve.Degrees[i]
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return errors.Wrap(err, "combined curve")
	}
	line.LineStyle.Color = color.RGBA{B: 255, A: 255}
	line.LineStyle.Width = vg.Points(1.5)

	marker, err := plotter.NewLine(plotter.XYs{{X: res.Dose, Y: 0}, {X: res.Dose, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "dose marker")
	}
	marker.LineStyle.Color = color.RGBA{R: 255, A: 255}
	marker.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	p.Add(line, marker)
	p.Legend.Add("Combined output", line)
	p.Legend.Add(fmt.Sprintf("Crisp dose = %.2f ml", res.Dose), marker)

	wt, err := p.WriterTo(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "failed to render result chart")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to encode result chart")
	}
	return nil
}

// SaveSets writes WriteSets output to path.
func SaveSets(path string, preset fuzzydose.Preset, size Size) error {
	return saveTo(path, func(w io.Writer) error { return WriteSets(w, preset, size) })
}

// SaveResult writes WriteResult output to path.
func SaveResult(path string, res fuzzydose.Result, size Size) error {
	return saveTo(path, func(w io.Writer) error { return WriteResult(w, res, size) })
}

func saveTo(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()
	return write(f)
}

func setsPlot(title, xLabel, lowName string, low fuzzydose.MembershipFunction, highName string, high fuzzydose.MembershipFunction) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Membership degree"
	p.Y.Min, p.Y.Max = 0, 1.05
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, lowName, toXYs(low), highName, toXYs(high)); err != nil {
		return nil, errors.Wrapf(err, "%s/%s", lowName, highName)
	}
	return p, nil
}

func toXYs(mf fuzzydose.MembershipFunction) plotter.XYs {
	points := mf.Points()
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Mu
	}
	return xys
}
