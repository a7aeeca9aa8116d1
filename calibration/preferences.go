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
	"slices"
	"strings"

	"github.com/jetsetilly/cgbcolour/palette"
	"github.com/jetsetilly/cgbcolour/prefs"
)

// List of plot backends that can be selected with the plot.backend
// preference.
const (
	BackendSDL  = "sdl"
	BackendHTML = "html"
	BackendTerm = "term"
	BackendPNG  = "png"
	BackendNone = "none"
)

// Backends lists every valid plot backend.
var Backends = []string{BackendSDL, BackendHTML, BackendTerm, BackendPNG, BackendNone}

// Preferences for the calibration engine and for the presentation of the
// report.
type Preferences struct {
	dsk *prefs.Disk

	Dataset        prefs.String
	ExpectedRows   prefs.Int
	Column         prefs.String
	Candidates     prefs.String
	SpotCheckModel prefs.String
	SpotCheckIndex prefs.Int

	MaxEvaluations prefs.Int
	FTol           prefs.Float
	XTol           prefs.Float
	GTol           prefs.Float
	DiffStep       prefs.Float
	Trace          prefs.Bool

	Backend prefs.String
	Width   prefs.Int
	Height  prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The values are loaded from the preferences file at path,
// which is created if it does not exist.
//
// Values in the current prefs command line group take precedence over the
// values in the file.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	p.Backend.SetHookPre(func(v prefs.Value) error {
		if !slices.Contains(Backends, strings.ToLower(v.(string))) {
			return fmt.Errorf("plot backend must be one of %s", strings.Join(Backends, ", "))
		}
		return nil
	})

	p.SpotCheckIndex.SetHookPre(func(v prefs.Value) error {
		if !palette.Index(v.(int)).Valid() {
			return fmt.Errorf("spot check index %d is not a palette index", v.(int))
		}
		return nil
	})

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   interface {
			String() string
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
		}
	}{
		{key: "calibration.dataset", p: &p.Dataset},
		{key: "calibration.rows", p: &p.ExpectedRows},
		{key: "calibration.column", p: &p.Column},
		{key: "calibration.models", p: &p.Candidates},
		{key: "calibration.spotcheck.model", p: &p.SpotCheckModel},
		{key: "calibration.spotcheck.index", p: &p.SpotCheckIndex},
		{key: "fit.maxEvaluations", p: &p.MaxEvaluations},
		{key: "fit.ftol", p: &p.FTol},
		{key: "fit.xtol", p: &p.XTol},
		{key: "fit.gtol", p: &p.GTol},
		{key: "fit.diffStep", p: &p.DiffStep},
		{key: "fit.trace", p: &p.Trace},
		{key: "plot.backend", p: &p.Backend},
		{key: "plot.width", p: &p.Width},
		{key: "plot.height", p: &p.Height},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	cfg := DefaultConfig()
	_ = p.Dataset.Set(cfg.Dataset)
	_ = p.ExpectedRows.Set(cfg.ExpectedRows)
	_ = p.Column.Set(cfg.Column)
	_ = p.Candidates.Set(strings.Join(cfg.Candidates, ","))
	_ = p.SpotCheckModel.Set(cfg.SpotCheckModel)
	_ = p.SpotCheckIndex.Set(int(cfg.SpotCheckIndex))
	_ = p.MaxEvaluations.Set(cfg.Fit.MaxEvaluations)
	_ = p.FTol.Set(cfg.Fit.FTol)
	_ = p.XTol.Set(cfg.Fit.XTol)
	_ = p.GTol.Set(cfg.Fit.GTol)
	_ = p.DiffStep.Set(cfg.Fit.DiffStep)
	_ = p.Trace.Set(cfg.Fit.Trace)
	_ = p.Backend.Set(BackendSDL)
	_ = p.Width.Set(1024)
	_ = p.Height.Set(640)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Config returns the calibration configuration described by the current
// preference values.
func (p *Preferences) Config() Config {
	cfg := DefaultConfig()
	cfg.Dataset = p.Dataset.Get().(string)
	cfg.ExpectedRows = p.ExpectedRows.Get().(int)
	cfg.Column = p.Column.Get().(string)
	cfg.Candidates = ParseCandidates(p.Candidates.Get().(string))
	cfg.SpotCheckModel = p.SpotCheckModel.Get().(string)
	cfg.SpotCheckIndex = palette.Index(p.SpotCheckIndex.Get().(int))
	cfg.Fit.MaxEvaluations = p.MaxEvaluations.Get().(int)
	cfg.Fit.FTol = p.FTol.Get().(float64)
	cfg.Fit.XTol = p.XTol.Get().(float64)
	cfg.Fit.GTol = p.GTol.Get().(float64)
	cfg.Fit.DiffStep = p.DiffStep.Get().(float64)
	cfg.Fit.Trace = p.Trace.Get().(bool)
	return cfg
}
