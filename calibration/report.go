// This file is part of cgbcolour.
//
// cgbcolour is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// cgbcolour is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with cgbcolour.  If not, see <https://www.gnu.org/licenses/>.

package calibration

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jetsetilly/cgbcolour/palette"
	"github.com/jetsetilly/cgbcolour/plot"
)

// SpotCheck is the prediction of a fitted model at a single palette index.
type SpotCheck struct {
	Model    string
	Index    palette.Index
	Value    float64
	Measured float64

	// non-nil if no prediction could be made
	Err error
}

func (sc *SpotCheck) String() string {
	if sc.Err != nil {
		return fmt.Sprintf("%s at %s: %v", sc.Model, sc.Index, sc.Err)
	}
	return fmt.Sprintf("%s at %s = %.6g (measured %g)", sc.Model, sc.Index, sc.Value, sc.Measured)
}

// Report is the outcome of a calibration run.
type Report struct {
	// where the measurements came from and the measured column
	Source   string
	Column   string
	Measured []float64

	// the reference model evaluated over the palette domain
	Reference         []float64
	ReferenceGoodness Goodness

	// one entry for every candidate model, in the order they were fitted
	Fits []*FitResult

	// nil if no spot check was configured
	SpotCheck *SpotCheck
}

// Fit returns the result for the named model or nil if the model was not
// fitted.
func (rep *Report) Fit(name string) *FitResult {
	for _, fr := range rep.Fits {
		if strings.EqualFold(fr.Model.Name(), name) {
			return fr
		}
	}
	return nil
}

func (rep *Report) spotCheck(name string, idx palette.Index) *SpotCheck {
	sc := &SpotCheck{
		Model: name,
		Index: idx,
		Value: math.NaN(),
	}
	if int(idx) < len(rep.Measured) {
		sc.Measured = rep.Measured[idx]
	}

	fr := rep.Fit(name)
	switch {
	case fr == nil:
		sc.Err = fmt.Errorf("model was not fitted")
	case fr.Failed():
		sc.Err = fmt.Errorf("model could not be fitted")
	default:
		sc.Value = fr.Predict(idx)
	}

	return sc
}

// Write the report as text.
func (rep *Report) Write(output io.Writer) {
	fmt.Fprintf(output, "measurements: %s (column %s, %d rows)\n", rep.Source, rep.Column, len(rep.Measured))

	fmt.Fprintf(output, "\nreference\n")
	fmt.Fprintf(output, "  %s\n", rep.ReferenceGoodness)

	for _, fr := range rep.Fits {
		fmt.Fprintf(output, "\n%s (%d parameters)\n", fr.Model.Name(), len(fr.Model.InitialGuess()))
		fmt.Fprintf(output, "  %s\n", fr.Model.Description())

		if fr.Err != nil {
			fmt.Fprintf(output, "  * %v\n", fr.Err)
			if fr.Params == nil {
				continue // for loop
			}
		}

		lower, upper := fr.Model.ParameterBounds()
		for i, p := range fr.Params {
			se := "-"
			if i < len(fr.StdErr) && !math.IsInf(fr.StdErr[i], 0) && !math.IsNaN(fr.StdErr[i]) {
				se = fmt.Sprintf("%.4g", fr.StdErr[i])
			}
			fmt.Fprintf(output, "  p[%2d] = %14.8g  ± %-10s [%g, %g]\n", i, p, se, lower[i], upper[i])
		}

		fmt.Fprintf(output, "  %s\n", fr.Goodness)
		fmt.Fprintf(output, "  %s after %d iterations (%d evaluations)\n", fr.Status, fr.Iterations, fr.Evaluations)
	}

	if rep.SpotCheck != nil {
		fmt.Fprintf(output, "\nspot check: %s\n", rep.SpotCheck)
	}
}

// Chart returns the measurements, the reference curve and every successfully
// fitted curve as a chart.
func (rep *Report) Chart() plot.Chart {
	ch := plot.Chart{
		Title:  fmt.Sprintf("measured %s output by palette index", rep.Column),
		XLabel: "palette index",
		YLabel: rep.Column,
		Series: []plot.Series{
			{Label: "Measured", Values: rep.Measured},
			{Label: "Reference", Values: rep.Reference},
		},
	}

	for _, fr := range rep.Fits {
		if fr.Failed() {
			continue // for loop
		}
		ch.Series = append(ch.Series, plot.Series{Label: fr.Model.Name(), Values: fr.Curve})
	}

	return ch
}
