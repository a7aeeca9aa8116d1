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
	"math"

	"gonum.org/v1/gonum/mat"
)

// jacobian returns the forward difference approximation of the Jacobian of
// the residuals at x. r must be the residuals at x. if a forward step would
// leave the bounds then a backward step is used instead. non-finite
// derivatives are replaced with zero
func (s *solver) jacobian(x []float64, r []float64) *mat.Dense {
	J := mat.NewDense(s.m, s.n, nil)

	xt := make([]float64, s.n)
	copy(xt, x)
	rt := make([]float64, s.m)

	for j := range s.n {
		bnd := s.bounds[j]

		h := s.set.DiffStep * math.Max(1.0, math.Abs(x[j]))
		if x[j]+h > bnd.Max {
			h = -h
			if x[j]+h < bnd.Min {
				// interval is narrower than the step. use the larger side
				if bnd.Max-x[j] >= x[j]-bnd.Min {
					h = bnd.Max - x[j]
				} else {
					h = bnd.Min - x[j]
				}
			}
		}

		xt[j] = x[j] + h
		h = xt[j] - x[j]
		if h == 0 {
			xt[j] = x[j]
			continue // for loop
		}

		s.prob.Residuals(xt, rt)
		s.jacEvaluations++

		for i := range s.m {
			d := (rt[i] - r[i]) / h
			if !finite(d) {
				d = 0
			}
			J.Set(i, j, d)
		}

		xt[j] = x[j]
	}

	return J
}
