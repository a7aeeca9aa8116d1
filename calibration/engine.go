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
	"strings"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/logger"
	"github.com/jetsetilly/cgbcolour/measurement"
	"github.com/jetsetilly/cgbcolour/model"
)

// Engine performs a calibration run.
type Engine struct {
	cfg    Config
	models []model.Model
}

// NewEngine creates a new engine. An error is returned if the configuration
// does not validate.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	models, err := cfg.Models()
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:    cfg,
		models: models,
	}, nil
}

// Config returns the configuration the engine was created with.
func (eng *Engine) Config() Config {
	return eng.cfg
}

// Load the measurement table named in the configuration and check that it
// has the expected shape.
func (eng *Engine) Load() (*measurement.Table, error) {
	tab, err := measurement.Load(eng.cfg.Dataset)
	if err != nil {
		return nil, err
	}
	if err := eng.checkShape(tab); err != nil {
		return nil, err
	}
	return tab, nil
}

func (eng *Engine) checkShape(tab *measurement.Table) error {
	if err := tab.RequireRows(eng.cfg.ExpectedRows); err != nil {
		return err
	}
	if _, err := tab.Column(eng.cfg.Column); err != nil {
		return err
	}
	return nil
}

// Run the calibration with the measurement table. Every candidate model is
// fitted, even if an earlier fit fails. If any fit failed then the report is
// returned along with a FitFailed error naming the failed models.
//
// A DataShapeError is returned, with no report, if the table does not have
// the expected shape.
func (eng *Engine) Run(tab *measurement.Table) (*Report, error) {
	if err := eng.checkShape(tab); err != nil {
		return nil, err
	}

	observed, err := tab.Column(eng.cfg.Column)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Source:    tab.Source,
		Column:    eng.cfg.Column,
		Measured:  observed,
		Reference: model.Reference{}.Curve(),
	}
	rep.ReferenceGoodness = GoodnessOfFit(rep.Reference, observed)
	logger.Logf(logger.Allow, "calibration", "reference: %s", rep.ReferenceGoodness)

	var failed []string
	var errs []any

	for _, m := range eng.models {
		logger.Logf(logger.Allow, "calibration", "fitting %s (%d parameters)", m.Name(), len(m.InitialGuess()))

		fr := Fit(m, observed, eng.cfg.Fit)
		rep.Fits = append(rep.Fits, fr)

		if fr.Failed() {
			logger.Log(logger.Allow, "calibration", fr.Err)
			failed = append(failed, m.Name())
			errs = append(errs, fr.Err)
			continue // for loop
		}

		logger.Logf(logger.Allow, "calibration", "%s: %s", m.Name(), fr.Goodness)
	}

	if eng.cfg.SpotCheckModel != "" {
		rep.SpotCheck = rep.spotCheck(eng.cfg.SpotCheckModel, eng.cfg.SpotCheckIndex)
	}

	switch len(failed) {
	case 0:
		return rep, nil
	case 1:
		return rep, errs[0].(error)
	}

	joined := curated.Errorf(strings.Repeat("%v; ", len(errs)-1)+"%v", errs...)
	return rep, curated.Errorf(FitFailed, strings.Join(failed, ", "), joined)
}
