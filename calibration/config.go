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
	"strings"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/leastsquares"
	"github.com/jetsetilly/cgbcolour/model"
	"github.com/jetsetilly/cgbcolour/palette"
)

// InvalidConfig is the error pattern for configuration values that cannot be
// used to run a calibration.
const InvalidConfig = "invalid configuration: %v"

// Config for the calibration engine.
type Config struct {
	// path to the measurement file. the built-in measurements are used if the
	// path is empty
	Dataset string

	// the number of rows the measurement table must have
	ExpectedRows int

	// the measured column the models are fitted to
	Column string

	// names of the models to fit. all registered candidates are fitted if the
	// list is empty
	Candidates []string

	// the fitted model and palette index used for the spot check prediction.
	// no spot check is made if SpotCheckModel is empty
	SpotCheckModel string
	SpotCheckIndex palette.Index

	// optimiser settings used for every fit
	Fit leastsquares.Settings
}

// DefaultConfig returns the configuration that reproduces the calibration of
// the red channel with the built-in measurements.
func DefaultConfig() Config {
	return Config{
		ExpectedRows:   palette.NumIndices,
		Column:         "R",
		SpotCheckModel: model.PowerSum{}.Name(),
		SpotCheckIndex: 8,
		Fit:            leastsquares.DefaultSettings(),
	}
}

// Models returns the candidate models named in the configuration, in the
// order they are named. All registered candidates are returned if no names
// have been configured.
func (cfg Config) Models() ([]model.Model, error) {
	if len(cfg.Candidates) == 0 {
		return model.Candidates(), nil
	}

	var models []model.Model
	seen := make(map[string]bool)
	for _, n := range cfg.Candidates {
		m, err := model.Lookup(n)
		if err != nil {
			return nil, err
		}
		if seen[m.Name()] {
			continue // for loop
		}
		seen[m.Name()] = true
		models = append(models, m)
	}
	return models, nil
}

// Validate returns an error if the configuration cannot be used.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Column) == "" {
		return curated.Errorf(InvalidConfig, "no measurement column")
	}
	if cfg.ExpectedRows != palette.NumIndices {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("models are defined for %d rows not %d", palette.NumIndices, cfg.ExpectedRows))
	}
	if !cfg.SpotCheckIndex.Valid() {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("spot check index %d is not a palette index", cfg.SpotCheckIndex))
	}
	if cfg.Fit.MaxEvaluations < 0 {
		return curated.Errorf(InvalidConfig, "negative evaluation budget")
	}
	if _, err := cfg.Models(); err != nil {
		return curated.Errorf(InvalidConfig, err)
	}
	if cfg.SpotCheckModel != "" {
		if _, err := model.Lookup(cfg.SpotCheckModel); err != nil {
			return curated.Errorf(InvalidConfig, fmt.Sprintf("spot check: %v", err))
		}
	}
	return nil
}

// ParseCandidates splits a comma separated list of model names. Empty names
// are ignored.
func ParseCandidates(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
