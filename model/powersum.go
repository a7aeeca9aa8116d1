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

// PowerSum is a sum of power terms of the palette components, including
// terms for the interaction of green with red and of all three components.
type PowerSum struct{}

// Name implements the Model interface.
func (PowerSum) Name() string {
	return "powersum"
}

// Description implements the Model interface.
func (PowerSum) Description() string {
	return "p0*r^p1 + p13*g^p14 + p15*g^p16 + p2*(r^p3+p4)*g^p5 + p6*(r^p7+p8)*(g^p9+p10)*(b^p11+p12)"
}

// the exponents applied directly to a palette component. these must not be
// negative because a component can be zero
var powerSumExponents = map[int]bool{1: true, 3: true, 5: true, 7: true, 9: true, 11: true, 14: true, 16: true}

const powerSumParams = 17

// ParameterBounds implements the Model interface. Exponents are in the range 0
// to 100 and all other parameters are in the range -100 to 100.
func (PowerSum) ParameterBounds() (lower, upper []float64) {
	lower = make([]float64, powerSumParams)
	upper = make([]float64, powerSumParams)
	for i := range upper {
		if !powerSumExponents[i] {
			lower[i] = -100
		}
		upper[i] = 100
	}
	return lower, upper
}

// InitialGuess implements the Model interface. Every parameter starts at one.
func (PowerSum) InitialGuess() []float64 {
	g := make([]float64, powerSumParams)
	for i := range g {
		g[i] = 1
	}
	return g
}

// Evaluate implements the Model interface.
func (PowerSum) Evaluate(p []float64, idx palette.Index) float64 {
	ri, gi, bi := idx.Components()
	r, g, b := float64(ri), float64(gi), float64(bi)

	red := p[0] * math.Pow(r, p[1])
	green := p[13]*math.Pow(g, p[14]) + p[15]*math.Pow(g, p[16])
	redGreen := p[2] * (math.Pow(r, p[3]) + p[4]) * math.Pow(g, p[5])
	all := p[6] * (math.Pow(r, p[7]) + p[8]) * (math.Pow(g, p[9]) + p[10]) * (math.Pow(b, p[11]) + p[12])

	return red + green + redGreen + all
}
