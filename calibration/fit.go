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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/leastsquares"
	"github.com/jetsetilly/cgbcolour/model"
	"github.com/jetsetilly/cgbcolour/palette"
)

// FitFailed is the error pattern for a model that could not be fitted. The
// first value is the name of the model (or models).
const FitFailed = "fit %s: %v"

// Goodness of fit between a curve and the measurements.
type Goodness struct {
	// residual sum of squares
	RSS float64

	// coefficient of determination. NaN if the measurements do not vary
	R2 float64

	// root mean squared error
	RMSE float64
}

func (g Goodness) String() string {
	return fmt.Sprintf("rss %.6g  r² %.6f  rmse %.6g", g.RSS, g.R2, g.RMSE)
}

// GoodnessOfFit compares the predicted curve with the observed values. The
// two slices must be the same length.
func GoodnessOfFit(predicted []float64, observed []float64) Goodness {
	if len(observed) == 0 || len(predicted) != len(observed) {
		return Goodness{RSS: math.NaN(), R2: math.NaN(), RMSE: math.NaN()}
	}

	d := floats.Distance(predicted, observed, 2)
	g := Goodness{
		RSS:  d * d,
		RMSE: d / math.Sqrt(float64(len(observed))),
	}

	if stat.Variance(observed, nil) == 0 {
		g.R2 = math.NaN()
	} else {
		g.R2 = stat.RSquaredFrom(predicted, observed, nil)
	}

	return g
}

// FitResult is the outcome of fitting a single model.
type FitResult struct {
	Model model.Model

	// the fitted parameters and the standard error of each. if the fit failed
	// with a Divergence error these are the best parameters found
	Params []float64
	StdErr []float64

	// estimated covariance of the fitted parameters
	Covariance *mat.SymDense

	Goodness Goodness

	// optimiser statistics
	Iterations  int
	Evaluations int
	Status      leastsquares.Status

	// the fitted model evaluated over the palette domain
	Curve []float64

	// non-nil if the fit failed
	Err error
}

// Failed returns true if the model could not be fitted.
func (fr *FitResult) Failed() bool {
	return fr.Err != nil
}

// Predict returns the value of the fitted model at the palette index.
func (fr *FitResult) Predict(idx palette.Index) float64 {
	if fr.Params == nil {
		return math.NaN()
	}
	return fr.Model.Evaluate(fr.Params, idx)
}

// Fit the model to the observed values, one value per palette index, starting
// from the model's initial guess.
func Fit(m model.Model, observed []float64, set leastsquares.Settings) *FitResult {
	return FitFrom(m, observed, m.InitialGuess(), set)
}

// FitFrom is the same as Fit but starts from the given parameters.
func FitFrom(m model.Model, observed []float64, guess []float64, set leastsquares.Settings) *FitResult {
	fr := &FitResult{Model: m}

	if len(observed) != palette.NumIndices {
		fr.Err = curated.Errorf(FitFailed, m.Name(),
			curated.Errorf(leastsquares.Dimension, fmt.Sprintf("%d observations for %d palette indices", len(observed), palette.NumIndices)))
		return fr
	}

	lower, upper := m.ParameterBounds()
	prob := leastsquares.Problem{
		Observations: palette.NumIndices,
		Residuals: func(params []float64, dst []float64) {
			for i := range dst {
				dst[i] = m.Evaluate(params, palette.Index(i)) - observed[i]
			}
		},
		Lower: lower,
		Upper: upper,
	}

	res, err := leastsquares.Solve(prob, guess, set)
	if err != nil {
		fr.Err = curated.Errorf(FitFailed, m.Name(), err)
	}

	// a divergent fit still produces a result
	if res != nil {
		fr.Params = res.Params
		fr.StdErr = res.StdErr()
		fr.Covariance = res.Covariance
		fr.Iterations = res.Iterations
		fr.Evaluations = res.Evaluations
		fr.Status = res.Status
		fr.Curve = model.Curve(m, res.Params)
		fr.Goodness = GoodnessOfFit(fr.Curve, observed)
	}

	return fr
}
