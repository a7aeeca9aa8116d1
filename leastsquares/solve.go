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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/logger"
)

// Problem describes the function being fitted.
type Problem struct {
	// the number of residuals produced by the Residuals function
	Observations int

	// Residuals writes the difference between the model (with the given
	// parameters) and each observation to dst. The length of dst is equal to
	// Observations. The params slice must not be modified
	Residuals func(params []float64, dst []float64)

	// the bounds of each parameter. a parameter can be fixed by setting the
	// lower and upper bound to the same value
	Lower []float64
	Upper []float64
}

// Result of the Solve() function.
type Result struct {
	// the fitted parameters and the residuals for those parameters
	Params    []float64
	Residuals []float64

	// estimated covariance of the fitted parameters. if the covariance cannot
	// be estimated every entry is +Inf
	Covariance *mat.SymDense

	// half the sum of squared residuals
	Cost float64

	// sum of squared residuals
	RSS float64

	// number of accepted steps
	Iterations int

	// number of evaluations of the Residuals function, not counting those
	// made for the Jacobian approximation
	Evaluations int

	// number of evaluations made for the Jacobian approximation
	JacobianEvaluations int

	Status Status
}

// StdErr returns the standard error of each parameter, which is the square
// root of the diagonal of the covariance matrix.
func (res *Result) StdErr() []float64 {
	n, _ := res.Covariance.Dims()
	e := make([]float64, n)
	for i := range e {
		e[i] = math.Sqrt(res.Covariance.At(i, i))
	}
	return e
}

func (res *Result) String() string {
	return fmt.Sprintf("%s after %d iterations (%d evaluations), rss %g", res.Status, res.Iterations, res.Evaluations, res.RSS)
}

// damping of the Levenberg-Marquardt step
const (
	initialDamping  = 1e-3
	minDamping      = 1e-12
	maxDamping      = 1e16
	increaseDamping = 4.0
	decreaseDamping = 3.0
)

type solver struct {
	prob   Problem
	set    Settings
	bounds []ParameterBounds
	n, m   int

	evaluations    int
	jacEvaluations int
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// half the sum of squares. the result is NaN if any residual is not finite
func cost(r []float64) float64 {
	var c float64
	for _, v := range r {
		if !finite(v) {
			return math.NaN()
		}
		c += v * v
	}
	return 0.5 * c
}

func (s *solver) evaluate(x []float64, dst []float64) float64 {
	s.prob.Residuals(x, dst)
	s.evaluations++
	return cost(dst)
}

// Solve the bounded least squares problem starting from x0. The x0 slice is
// not modified.
//
// If the evaluation budget is exhausted then a Divergence error is returned
// along with the Result for the best parameters found.
func Solve(prob Problem, x0 []float64, set Settings) (*Result, error) {
	n := len(x0)
	m := prob.Observations

	if n == 0 {
		return nil, curated.Errorf(Dimension, "no parameters")
	}
	if m <= 0 {
		return nil, curated.Errorf(Dimension, "no observations")
	}
	if len(prob.Lower) != n || len(prob.Upper) != n {
		return nil, curated.Errorf(Dimension, fmt.Sprintf("%d parameters but %d lower and %d upper bounds", n, len(prob.Lower), len(prob.Upper)))
	}
	if prob.Residuals == nil {
		return nil, fmt.Errorf("leastsquares: no residual function")
	}

	bounds, err := Bounds(prob.Lower, prob.Upper)
	if err != nil {
		return nil, err
	}

	for i, v := range x0 {
		if math.IsNaN(v) || !bounds[i].Contains(v) {
			return nil, curated.Errorf(InfeasibleStart, fmt.Sprintf("parameter %d (%g) is outside bounds %s", i, v, bounds[i]))
		}
	}

	s := &solver{
		prob:   prob,
		set:    set.withDefaults(n),
		bounds: bounds,
		n:      n,
		m:      m,
	}

	x := make([]float64, n)
	copy(x, x0)
	r := make([]float64, m)

	c := s.evaluate(x, r)
	if !finite(c) {
		return nil, curated.Errorf(NonFiniteStart, "residuals at initial parameters are not finite")
	}

	status, iterations := s.iterate(x, r, &c)

	res := &Result{
		Params:              x,
		Residuals:           r,
		Covariance:          s.covariance(x, r, c),
		Cost:                c,
		RSS:                 2 * c,
		Iterations:          iterations,
		Evaluations:         s.evaluations,
		JacobianEvaluations: s.jacEvaluations,
		Status:              status,
	}

	logger.Log(logger.Allow, "leastsquares", res)

	if status == Exhausted {
		return res, curated.Errorf(Divergence, fmt.Sprintf("no convergence after %d evaluations (rss %g)", s.evaluations, res.RSS))
	}

	return res, nil
}

// iterate from x until convergence or until the evaluation budget is spent. x,
// r and c are updated with every accepted step
func (s *solver) iterate(x []float64, r []float64, c *float64) (Status, int) {
	var iterations int

	lambda := initialDamping
	diag := make([]float64, s.n)

	xt := make([]float64, s.n)
	rt := make([]float64, s.m)
	free := make([]int, 0, s.n)

	for {
		J := s.jacobian(x, r)

		var g mat.VecDense
		g.MulVec(J.T(), mat.NewVecDense(s.m, r))

		var jtj mat.SymDense
		jtj.SymOuterK(1, J.T())

		// parameters that are held at a bound by the gradient, or which have
		// no effect on the residuals, are frozen for this iteration
		free = free[:0]
		var gnorm float64
		for i := range s.n {
			gi := g.AtVec(i)
			if x[i] <= s.bounds[i].Min && gi > 0 {
				continue
			}
			if x[i] >= s.bounds[i].Max && gi < 0 {
				continue
			}
			if jtj.At(i, i) == 0 {
				continue
			}
			free = append(free, i)
			gnorm = math.Max(gnorm, math.Abs(gi))
		}

		if len(free) == 0 || gnorm < s.set.GTol {
			return GradientConvergence, iterations
		}

		for i := range s.n {
			diag[i] = math.Max(diag[i], jtj.At(i, i))
		}

		k := len(free)
		A := mat.NewSymDense(k, nil)
		b := mat.NewVecDense(k, nil)

		for {
			for p, fp := range free {
				b.SetVec(p, -g.AtVec(fp))
				for q := p; q < k; q++ {
					A.SetSym(p, q, jtj.At(fp, free[q]))
				}
				A.SetSym(p, p, jtj.At(fp, fp)+lambda*diag[fp])
			}

			var ch mat.Cholesky
			var dx mat.VecDense
			ok := ch.Factorize(A)
			if ok {
				if err := ch.SolveVecTo(&dx, b); err != nil {
					if _, cond := err.(mat.Condition); !cond {
						ok = false
					}
				}
			}

			if !ok {
				lambda *= increaseDamping
				if lambda > maxDamping {
					return StepConvergence, iterations
				}
				continue // for loop
			}

			copy(xt, x)
			for p, fp := range free {
				xt[fp] = s.bounds[fp].Clamp(x[fp] + dx.AtVec(p))
			}

			step := floats.Distance(xt, x, 2)
			if step <= s.set.XTol*(s.set.XTol+floats.Norm(x, 2)) {
				return StepConvergence, iterations
			}

			if s.evaluations >= s.set.MaxEvaluations {
				return Exhausted, iterations
			}

			ct := s.evaluate(xt, rt)
			if !finite(ct) || ct >= *c {
				lambda *= increaseDamping
				if lambda > maxDamping {
					return StepConvergence, iterations
				}
				continue // for loop
			}

			reduction := *c - ct
			copy(x, xt)
			copy(r, rt)
			*c = ct
			iterations++
			lambda = math.Max(lambda/decreaseDamping, minDamping)

			logger.Logf(logger.When(s.set.Trace), "leastsquares", "step %d: cost %g, damping %g, %d free parameters", iterations, ct, lambda, k)

			if reduction <= s.set.FTol*(*c+reduction) {
				return FunctionConvergence, iterations
			}

			break // for loop
		}
	}
}

// the covariance is the inverse of JᵀJ scaled by the residual variance
func (s *solver) covariance(x []float64, r []float64, c float64) *mat.SymDense {
	cov := mat.NewSymDense(s.n, nil)

	J := s.jacobian(x, r)
	var jtj mat.SymDense
	jtj.SymOuterK(1, J.T())

	var ch mat.Cholesky
	ok := s.m > s.n && ch.Factorize(&jtj)
	if ok {
		if err := ch.InverseTo(cov); err != nil {
			if _, cond := err.(mat.Condition); !cond {
				ok = false
			}
		}
	}

	if !ok {
		for i := range s.n {
			for j := i; j < s.n; j++ {
				cov.SetSym(i, j, math.Inf(1))
			}
		}
		return cov
	}

	cov.ScaleSym(2*c/float64(s.m-s.n), cov)
	return cov
}
