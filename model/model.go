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

// Package model contains the parametric models of the red channel output of
// the Game Boy Color display. Every model is a function of the palette index,
// with the index decomposed into its red, green and blue components.
//
// The Reference model is a hand-tuned closed form approximation with fixed
// constants. Candidate models have free parameters that are fitted to measured
// data. The candidates are:
//
//	nested    13 parameters, the Reference model with every constant free
//	powersum  17 parameters, a sum of power terms with cross terms
//
// Further candidates can be added with Register().
package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/palette"
)

// UnknownModel is the pattern for errors returned by Lookup().
const UnknownModel = "unknown model: %v"

// Model is implemented by every candidate model.
type Model interface {
	// short, lower-case name used to select the model
	Name() string

	// the formula of the model
	Description() string

	// Evaluate the model for the palette index with the given parameters.
	// the length of params must be the same as the length of the vectors
	// returned by ParameterBounds() and InitialGuess()
	Evaluate(params []float64, idx palette.Index) float64

	// the bounds of each parameter
	ParameterBounds() (lower, upper []float64)

	// the starting point for fitting
	InitialGuess() []float64
}

// Curve evaluates the model for every index in the palette domain.
func Curve(m Model, params []float64) []float64 {
	c := make([]float64, palette.NumIndices)
	for _, idx := range palette.Domain() {
		c[idx] = m.Evaluate(params, idx)
	}
	return c
}

// registry of candidate models in registration order.
var registry struct {
	crit   sync.Mutex
	models []Model
}

func init() {
	registry.models = []Model{Nested{}, PowerSum{}}
}

// Candidates returns all registered candidate models in the order they were
// registered.
func Candidates() []Model {
	registry.crit.Lock()
	defer registry.crit.Unlock()
	c := make([]Model, len(registry.models))
	copy(c, registry.models)
	return c
}

// Lookup the named model. The comparison is case insensitive.
func Lookup(name string) (Model, error) {
	registry.crit.Lock()
	defer registry.crit.Unlock()
	name = strings.TrimSpace(name)
	for _, m := range registry.models {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
	}
	return nil, curated.Errorf(UnknownModel, name)
}

// Register a new candidate model. The name must not be the same as an
// existing model and the bounds and initial guess must be the same length.
func Register(m Model) error {
	lower, upper := m.ParameterBounds()
	if len(lower) != len(upper) || len(lower) != len(m.InitialGuess()) {
		return fmt.Errorf("model: %s: inconsistent number of parameters", m.Name())
	}

	registry.crit.Lock()
	defer registry.crit.Unlock()
	for _, e := range registry.models {
		if strings.EqualFold(e.Name(), m.Name()) {
			return fmt.Errorf("model: %s: already registered", m.Name())
		}
	}
	registry.models = append(registry.models, m)
	return nil
}
