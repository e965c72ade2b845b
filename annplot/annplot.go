/*
 * annplot.go, part of goaenet.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
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
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package annplot plots the training history of a potential fit to PNG
//files.
package annplot

import (
	"fmt"
	"image/color"
	"math"

	aenet "github.com/rmera/goaenet"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicCurvePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Error (eV/atom)"
	p.Add(plotter.NewGrid())
	return p
}

//points pairs the epoch indexes with one error series, leaving out the
//epochs where the metric is NaN.
func points(ns, series []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(series))
	for i, v := range series {
		if math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: ns[i], Y: v})
	}
	return xys
}

//Curve plots the four error series of a training run (MAE and RMSE over
//the training and testing splits) against the epoch number, and saves
//the plot as plotname.png. Epochs with NaN metrics are left out of their
//series.
func Curve(c *aenet.TrainingCurve, title, plotname string) error {
	errid := "annplot.Curve"
	if c == nil || c.Len() == 0 {
		return fmt.Errorf("%s: Nothing to plot", errid)
	}
	p := basicCurvePlot(title)
	ns := c.Ns()
	series := []struct {
		name string
		data []float64
		col  color.RGBA
	}{
		{"train MAE", c.TrainMAEs(), color.RGBA{R: 210, G: 90, B: 60, A: 255}},
		{"train RMSE", c.TrainRMSEs(), color.RGBA{R: 140, A: 255}},
		{"test MAE", c.TestMAEs(), color.RGBA{G: 130, B: 200, A: 255}},
		{"test RMSE", c.TestRMSEs(), color.RGBA{B: 140, A: 255}},
	}
	for _, s := range series {
		xys := points(ns, s.data)
		if len(xys) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
		l.Color = s.col
		p.Add(l)
		p.Legend.Add(s.name, l)
	}
	p.Legend.Top = true
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

//Parity plots the predicted total energies against the reference ones,
//one point per structure, plus the y=x line, and saves the plot as
//plotname.png. refs must be in the same order as the predictions.
func Parity(res aenet.Results, refs []float64, title, plotname string) error {
	errid := "annplot.Parity"
	if len(res) == 0 || len(res) != len(refs) {
		return fmt.Errorf("%s: Got %d predictions for %d reference energies", errid, len(res), len(refs))
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Reference energy (eV)"
	p.Y.Label.Text = "Predicted energy (eV)"
	p.Add(plotter.NewGrid())
	xys := make(plotter.XYs, len(res))
	for i, v := range res {
		xys[i] = plotter.XY{X: refs[i], Y: v.Energy}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	p.Add(s)
	diag := plotter.NewFunction(func(x float64) float64 { return x })
	diag.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(diag)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}
