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

package calibration_test

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/cgbcolour/calibration"
	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/leastsquares"
	"github.com/jetsetilly/cgbcolour/measurement"
	"github.com/jetsetilly/cgbcolour/model"
	"github.com/jetsetilly/cgbcolour/palette"
	"github.com/jetsetilly/cgbcolour/prefs"
	"github.com/jetsetilly/cgbcolour/test"
)

// referenceTable creates a measurement table where the R column is the
// reference curve
func referenceTable(t *testing.T) *measurement.Table {
	t.Helper()

	var b strings.Builder
	b.WriteString("Index\tR\n")
	for i, v := range (model.Reference{}).Curve() {
		fmt.Fprintf(&b, "%d\t%s\n", i, fmt.Sprint(v))
	}

	tab, err := measurement.Read(strings.NewReader(b.String()), "reference")
	test.DemandSuccess(t, err)
	return tab
}

func TestDefaultConfig(t *testing.T) {
	cfg := calibration.DefaultConfig()
	test.ExpectSuccess(t, cfg.Validate())
	test.ExpectEquality(t, cfg.Column, "R")
	test.ExpectEquality(t, cfg.ExpectedRows, palette.NumIndices)
	test.ExpectEquality(t, cfg.SpotCheckModel, "powersum")
	test.ExpectEquality(t, cfg.SpotCheckIndex, palette.Index(8))

	models, err := cfg.Models()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(models), 2)
}

func TestConfigValidate(t *testing.T) {
	cfg := calibration.DefaultConfig()
	cfg.Column = " "
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), calibration.InvalidConfig))

	cfg = calibration.DefaultConfig()
	cfg.ExpectedRows = 100
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), calibration.InvalidConfig))

	cfg = calibration.DefaultConfig()
	cfg.SpotCheckIndex = 512
	test.ExpectFailure(t, cfg.Validate())

	cfg = calibration.DefaultConfig()
	cfg.Candidates = []string{"nested", "nosuchmodel"}
	err := cfg.Validate()
	test.ExpectSuccess(t, curated.Has(err, model.UnknownModel))

	cfg = calibration.DefaultConfig()
	cfg.SpotCheckModel = "nosuchmodel"
	test.ExpectFailure(t, cfg.Validate())

	_, err = calibration.NewEngine(cfg)
	test.ExpectFailure(t, err)
}

func TestParseCandidates(t *testing.T) {
	c := calibration.ParseCandidates(" Nested, ,powersum,")
	test.DemandEquality(t, len(c), 2)
	test.ExpectEquality(t, c[0], "nested")
	test.ExpectEquality(t, c[1], "powersum")

	test.ExpectEquality(t, len(calibration.ParseCandidates("")), 0)

	cfg := calibration.DefaultConfig()
	cfg.Candidates = []string{"powersum", "POWERSUM"}
	models, err := cfg.Models()
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(models), 1)
	test.ExpectEquality(t, models[0].Name(), "powersum")
}

func TestGoodnessOfFit(t *testing.T) {
	obs := []float64{1, 2, 3, 4}

	g := calibration.GoodnessOfFit(obs, obs)
	test.ExpectEquality(t, g.RSS, 0.0)
	test.ExpectEquality(t, g.RMSE, 0.0)
	test.ExpectApproximate(t, g.R2, 1.0, 1e-12)

	g = calibration.GoodnessOfFit([]float64{2, 2, 3, 3}, obs)
	test.ExpectApproximate(t, g.RSS, 2.0, 1e-12)
	test.ExpectApproximate(t, g.RMSE, math.Sqrt(0.5), 1e-12)
	test.ExpectApproximate(t, g.R2, 1-2.0/5.0, 1e-12)

	// constant measurements have no meaningful r²
	g = calibration.GoodnessOfFit([]float64{1, 1}, []float64{2, 2})
	test.ExpectSuccess(t, math.IsNaN(g.R2))
	test.ExpectApproximate(t, g.RSS, 2.0, 1e-12)

	g = calibration.GoodnessOfFit([]float64{1}, obs)
	test.ExpectSuccess(t, math.IsNaN(g.RSS))
}

func TestFitReference(t *testing.T) {
	tab := referenceTable(t)
	observed, err := tab.Column("R")
	test.DemandSuccess(t, err)

	fr := calibration.Fit(model.Nested{}, observed, leastsquares.DefaultSettings())
	test.DemandSuccess(t, fr.Err)
	test.DemandEquality(t, len(fr.Params), len(model.ReferenceConstants))

	for i, p := range fr.Params {
		test.ExpectApproximate(t, p, model.ReferenceConstants[i], 1e-3, i)
	}
	test.ExpectApproximate(t, fr.Goodness.RSS, 0.0, 1e-6)
	test.ExpectApproximate(t, fr.Predict(300), 125.34159273273781, 1e-6)
}

func TestFitWithinBounds(t *testing.T) {
	tab, err := measurement.Builtin()
	test.DemandSuccess(t, err)
	observed, err := tab.Column("R")
	test.DemandSuccess(t, err)

	set := leastsquares.DefaultSettings()
	set.MaxEvaluations = 50

	for _, m := range model.Candidates() {
		fr := calibration.Fit(m, observed, set)
		if fr.Err != nil {
			// a small budget may not be enough for convergence but the best
			// parameters found are still reported
			test.ExpectSuccess(t, curated.Has(fr.Err, leastsquares.Divergence), m.Name())
		}
		test.DemandEquality(t, len(fr.Params), len(m.InitialGuess()), m.Name())

		lower, upper := m.ParameterBounds()
		for i, p := range fr.Params {
			test.ExpectSuccess(t, p >= lower[i] && p <= upper[i], m.Name(), i)
		}
		test.ExpectEquality(t, len(fr.Curve), palette.NumIndices)
	}
}

func TestFitInfeasibleGuess(t *testing.T) {
	observed := (model.Reference{}).Curve()

	guess := model.Nested{}.InitialGuess()
	guess[0] = -1

	fr := calibration.FitFrom(model.Nested{}, observed, guess, leastsquares.DefaultSettings())
	test.ExpectSuccess(t, fr.Failed())
	test.ExpectSuccess(t, curated.Is(fr.Err, calibration.FitFailed))
	test.ExpectSuccess(t, curated.Has(fr.Err, leastsquares.InfeasibleStart))
	test.ExpectSuccess(t, fr.Params == nil)
	test.ExpectSuccess(t, math.IsNaN(fr.Predict(8)))
}

func TestFitDimension(t *testing.T) {
	fr := calibration.Fit(model.Nested{}, []float64{1, 2, 3}, leastsquares.DefaultSettings())
	test.ExpectSuccess(t, curated.Has(fr.Err, leastsquares.Dimension))
}

func TestEngineShape(t *testing.T) {
	eng, err := calibration.NewEngine(calibration.DefaultConfig())
	test.DemandSuccess(t, err)

	tab, err := measurement.Read(strings.NewReader("Index\tG\n0\t1\n"), "short")
	test.DemandSuccess(t, err)

	rep, err := eng.Run(tab)
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))
	test.ExpectSuccess(t, rep == nil)

	// the right number of rows but no R column
	var b strings.Builder
	b.WriteString("Index\tG\n")
	for i := range palette.NumIndices {
		fmt.Fprintf(&b, "%d\t0\n", i)
	}
	tab, err = measurement.Read(strings.NewReader(b.String()), "no red")
	test.DemandSuccess(t, err)

	_, err = eng.Run(tab)
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))

	cfg := calibration.DefaultConfig()
	cfg.Dataset = filepath.Join(t.TempDir(), "missing.tsv")
	eng, err = calibration.NewEngine(cfg)
	test.DemandSuccess(t, err)
	_, err = eng.Load()
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))
}

func TestEngineLoadBuiltin(t *testing.T) {
	eng, err := calibration.NewEngine(calibration.DefaultConfig())
	test.DemandSuccess(t, err)

	tab, err := eng.Load()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab.Source, measurement.BuiltinSource)
	test.ExpectEquality(t, tab.Rows(), palette.NumIndices)
}

func TestEngineRun(t *testing.T) {
	cfg := calibration.DefaultConfig()
	cfg.Candidates = []string{"nested"}
	cfg.SpotCheckModel = "nested"
	cfg.SpotCheckIndex = 300

	eng, err := calibration.NewEngine(cfg)
	test.DemandSuccess(t, err)

	rep, err := eng.Run(referenceTable(t))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(rep.Fits), 1)

	test.ExpectApproximate(t, rep.ReferenceGoodness.RSS, 0.0, 1e-9)
	test.ExpectSuccess(t, rep.Fit("NESTED") != nil)
	test.ExpectSuccess(t, rep.Fit("powersum") == nil)

	test.DemandSuccess(t, rep.SpotCheck != nil)
	test.ExpectSuccess(t, rep.SpotCheck.Err)
	test.ExpectApproximate(t, rep.SpotCheck.Value, 125.34159273273781, 1e-6)

	ch := rep.Chart()
	test.ExpectSuccess(t, ch.Validate())
	test.DemandEquality(t, len(ch.Series), 3)
	test.ExpectEquality(t, ch.Series[0].Label, "Measured")
	test.ExpectEquality(t, ch.Series[1].Label, "Reference")
	test.ExpectEquality(t, ch.Series[2].Label, "nested")
	test.ExpectEquality(t, ch.Len(), palette.NumIndices)

	var out bytes.Buffer
	rep.Write(&out)
	s := out.String()
	test.ExpectSuccess(t, strings.Contains(s, "measurements: reference (column R, 512 rows)"))
	test.ExpectSuccess(t, strings.Contains(s, "nested (13 parameters)"))
	test.ExpectSuccess(t, strings.Contains(s, "p[12]"))
	test.ExpectSuccess(t, strings.Contains(s, "spot check: nested at 300"))
}

func TestEngineFitFailed(t *testing.T) {
	cfg := calibration.DefaultConfig()
	cfg.Fit.MaxEvaluations = 1

	eng, err := calibration.NewEngine(cfg)
	test.DemandSuccess(t, err)

	tab, err := eng.Load()
	test.DemandSuccess(t, err)

	// neither model can converge in a single evaluation but both are
	// attempted and both are reported
	rep, err := eng.Run(tab)
	test.DemandSuccess(t, rep != nil)
	test.ExpectSuccess(t, curated.Is(err, calibration.FitFailed))
	test.ExpectSuccess(t, curated.Has(err, leastsquares.Divergence))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "nested, powersum"))
	test.ExpectEquality(t, len(rep.Fits), 2)

	// failed fits are not charted
	test.ExpectEquality(t, len(rep.Chart().Series), 2)

	test.DemandSuccess(t, rep.SpotCheck != nil)
	test.ExpectFailure(t, rep.SpotCheck.Err)
	test.ExpectSuccess(t, math.IsNaN(rep.SpotCheck.Value))

	var out bytes.Buffer
	rep.Write(&out)
	test.ExpectSuccess(t, strings.Contains(out.String(), "* fit nested: divergence"))
}

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := calibration.NewPreferences(pth)
	test.DemandSuccess(t, err)

	cfg := p.Config()
	def := calibration.DefaultConfig()
	test.ExpectEquality(t, cfg.Column, def.Column)
	test.ExpectEquality(t, cfg.SpotCheckIndex, def.SpotCheckIndex)
	test.ExpectEquality(t, cfg.Fit.FTol, def.Fit.FTol)
	test.ExpectEquality(t, cfg.Fit.DiffStep, def.Fit.DiffStep)
	test.ExpectEquality(t, p.Backend.String(), calibration.BackendSDL)

	test.ExpectFailure(t, p.Backend.Set("opengl"))
	test.ExpectFailure(t, p.SpotCheckIndex.Set(1000))

	test.DemandSuccess(t, p.Candidates.Set("powersum"))
	test.DemandSuccess(t, p.FTol.Set(1e-10))
	test.DemandSuccess(t, p.Backend.Set(calibration.BackendPNG))
	test.DemandSuccess(t, p.Save())

	p, err = calibration.NewPreferences(pth)
	test.DemandSuccess(t, err)
	cfg = p.Config()
	test.DemandEquality(t, len(cfg.Candidates), 1)
	test.ExpectEquality(t, cfg.Candidates[0], "powersum")
	test.ExpectEquality(t, cfg.Fit.FTol, 1e-10)
	test.ExpectEquality(t, p.Backend.String(), calibration.BackendPNG)
}

func TestPreferencesCommandLine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	prefs.PushCommandLineStack("calibration.column::G; plot.width::800")
	defer prefs.PopCommandLineStack()

	p, err := calibration.NewPreferences(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Config().Column, "G")
	test.ExpectEquality(t, p.Width.Get().(int), 800)
}
