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

package model

import (
	"math"

	"github.com/jetsetilly/cgbcolour/palette"
)

// ReferenceConstants are the hand-tuned constants of the Reference model in
// the parameter order of the Nested model.
var ReferenceConstants = [...]float64{0.74, 1, 0.34, 4, 8, 1, 3, 3, 4.4, 1, 1.1, 0.01, 32}

// Reference is the hand-tuned approximation of the red channel:
//
//	(r*0.74 + max(1, (r/8+0.34)^4) * (g/8)^(1+min(r,3)/3) * 4.4*(1-(r/8)^1.1) + b*0.01) * 32
type Reference struct{}

// Name of the reference model.
func (Reference) Name() string {
	return "reference"
}

// Description of the reference model.
func (Reference) Description() string {
	return "(r*0.74 + max(1, (r/8+0.34)^4) * (g/8)^(1+min(r,3)/3) * 4.4*(1-(r/8)^1.1) + b*0.01) * 32"
}

// Evaluate the reference model for the palette index.
func (Reference) Evaluate(idx palette.Index) float64 {
	return nested(ReferenceConstants[:], idx)
}

// Curve evaluates the reference model for every index in the palette domain.
func (ref Reference) Curve() []float64 {
	c := make([]float64, palette.NumIndices)
	for _, idx := range palette.Domain() {
		c[idx] = ref.Evaluate(idx)
	}
	return c
}

// Nested is the reference model with every constant replaced by a free
// parameter.
type Nested struct{}

// Name implements the Model interface.
func (Nested) Name() string {
	return "nested"
}

// Description implements the Model interface.
func (Nested) Description() string {
	return "(r*p0 + max(p1, (r/8+p2)^p3) * (g/p4)^(p5+min(r,p6)/p7) * p8*(p9-(r/8)^p10) + b*p11) * p12"
}

// Evaluate implements the Model interface.
func (Nested) Evaluate(params []float64, idx palette.Index) float64 {
	return nested(params, idx)
}

// ParameterBounds implements the Model interface. Every parameter is in the
// range 0 to 100.
func (Nested) ParameterBounds() (lower, upper []float64) {
	lower = make([]float64, len(ReferenceConstants))
	upper = make([]float64, len(ReferenceConstants))
	for i := range upper {
		upper[i] = 100
	}
	return lower, upper
}

// InitialGuess implements the Model interface. The guess is the reference
// constants.
func (Nested) InitialGuess() []float64 {
	g := make([]float64, len(ReferenceConstants))
	copy(g, ReferenceConstants[:])
	return g
}

func nested(p []float64, idx palette.Index) float64 {
	ri, gi, bi := idx.Components()
	r, g, b := float64(ri), float64(gi), float64(bi)

	scale := math.Max(p[1], math.Pow(r/8+p[2], p[3]))
	green := math.Pow(g/p[4], p[5]+math.Min(r, p[6])/p[7])
	falloff := p[8] * (p[9] - math.Pow(r/8, p[10]))

	return (r*p[0] + scale*green*falloff + b*p[11]) * p[12]
}
