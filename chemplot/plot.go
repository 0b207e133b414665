/*
 * plot.go, part of govqe.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package chemplot draws the convergence of the variational calculations with gonum/plot.
package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rmera/govqe/optimizer"
)

//Series in a plot, used to pick colors.
const (
	energySeries = iota
	bestSeries
	referenceSeries
	numSeries
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Evaluation"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

//pngName adds the .png extension to name if it has none.
func pngName(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".png"
	}
	return name
}

//runningBest returns, for each evaluation, the lowest value found up to it.
func runningBest(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	best := math.Inf(1)
	for i, v := range values {
		best = math.Min(best, v)
		pts[i].X = float64(i + 1)
		pts[i].Y = best
	}
	return pts
}

//ConvergencePlot draws the energy at each evaluation recorded in history, the lowest energy
//found so far, and, if reference is not NaN, a horizontal line at the reference energy.
//offset is added to every value (for instance, to plot total instead of electronic energies).
//The plot is saved in PNG format to filename (".png" is appended if it has no extension).
func ConvergencePlot(history *optimizer.History, offset, reference float64, title, filename string) error {
	if history == nil || history.Len() == 0 {
		return Error{NoData, []string{"ConvergencePlot"}, true}
	}
	values := make([]float64, history.Len())
	for i, v := range history.Values {
		values[i] = v + offset
	}
	p := basicPlot(title, "Energy (Hartree)")
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewScatter", "ConvergencePlot"}, true}
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Color = colors(energySeries, numSeries)
	best, err := plotter.NewLine(runningBest(values))
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewLine", "ConvergencePlot"}, true}
	}
	best.LineStyle.Width = vg.Points(1.5)
	best.LineStyle.Color = colors(bestSeries, numSeries)
	p.Add(s, best)
	p.Legend.Add("energy", s)
	p.Legend.Add("lowest", best)
	if !math.IsNaN(reference) {
		ref := plotter.NewFunction(func(float64) float64 { return reference })
		ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		ref.LineStyle.Color = colors(referenceSeries, numSeries)
		p.Add(ref)
		p.Legend.Add("reference", ref)
		p.Y.Min = math.Min(p.Y.Min, reference)
		p.Y.Max = math.Max(p.Y.Max, reference)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, pngName(filename)); err != nil {
		return Error{err.Error(), []string{"Save", "ConvergencePlot"}, true}
	}
	return nil
}

//ErrorPlot draws, in a logarithmic scale, the difference between the lowest energy found
//at each evaluation and the reference energy. Evaluations that reach the reference
//exactly are not drawn.
func ErrorPlot(history *optimizer.History, offset, reference float64, title, filename string) error {
	if history == nil || history.Len() == 0 {
		return Error{NoData, []string{"ErrorPlot"}, true}
	}
	if math.IsNaN(reference) {
		return Error{NoReference, []string{"ErrorPlot"}, true}
	}
	best := runningBest(history.Values)
	pts := make(plotter.XYs, 0, len(best))
	for _, b := range best {
		d := math.Abs(b.Y + offset - reference)
		if d > 0 {
			pts = append(pts, plotter.XY{X: b.X, Y: d})
		}
	}
	if len(pts) == 0 {
		return Error{fmt.Sprintf("%s: every evaluation matches the reference", NoData), []string{"ErrorPlot"}, true}
	}
	p := basicPlot(title, "|E - E_ref| (Hartree)")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), []string{"plotter.NewLine", "ErrorPlot"}, true}
	}
	l.LineStyle.Color = colors(bestSeries, numSeries)
	p.Add(l)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, pngName(filename)); err != nil {
		return Error{err.Error(), []string{"Save", "ErrorPlot"}, true}
	}
	return nil
}

//iHVS2RGB takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var r, g, b float64
	hp := math.Mod(h, 360) / 60
	i := math.Floor(hp)
	f := hp - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255))
}

//colors returns the color for series key out of steps, spreading them over the blue-to-red hues.
func colors(key, steps int) color.RGBA {
	hue := 240.0
	if steps > 1 {
		hue = 240 - 240*float64(key)/float64(steps-1)
	}
	r, g, b := iHVS2RGB(hue, 0.9, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
