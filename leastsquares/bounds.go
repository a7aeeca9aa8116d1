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

package leastsquares

import (
	"fmt"
	"math"

	"github.com/jetsetilly/cgbcolour/curated"
)

// ParameterBounds is the closed interval a single parameter must be in.
type ParameterBounds struct {
	Min, Max float64
}

func (b ParameterBounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Min, b.Max)
}

// Contains returns true if v is within the bounds.
func (b ParameterBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp returns v limited to the bounds.
func (b ParameterBounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Bounds combines separate lower and upper vectors into a slice of
// ParameterBounds.
func Bounds(lower, upper []float64) ([]ParameterBounds, error) {
	if len(lower) != len(upper) {
		return nil, curated.Errorf(Dimension, fmt.Sprintf("%d lower bounds and %d upper bounds", len(lower), len(upper)))
	}

	bounds := make([]ParameterBounds, len(lower))
	for i := range lower {
		if math.IsNaN(lower[i]) || math.IsNaN(upper[i]) || lower[i] > upper[i] {
			return nil, curated.Errorf(InfeasibleStart, fmt.Sprintf("parameter %d: inconsistent bounds [%g, %g]", i, lower[i], upper[i]))
		}
		bounds[i] = ParameterBounds{Min: lower[i], Max: upper[i]}
	}

	return bounds, nil
}

// Clamp returns a copy of x with every value limited to the corresponding
// bounds. Values without a corresponding bound are copied unchanged.
func Clamp(x []float64, bounds []ParameterBounds) []float64 {
	c := make([]float64, len(x))
	for i, v := range x {
		if i < len(bounds) {
			c[i] = bounds[i].Clamp(v)
		} else {
			c[i] = v
		}
	}
	return c
}
