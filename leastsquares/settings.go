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

import "math"

// list of error patterns returned by Solve().
const (
	Dimension       = "dimension: %v"
	InfeasibleStart = "infeasible start: %v"
	NonFiniteStart  = "non-finite start: %v"
	Divergence      = "divergence: %v"
)

// Settings for the Solve() function. A zero value for any field is replaced
// by the corresponding value from DefaultSettings().
type Settings struct {
	// maximum number of residual evaluations at trial points. evaluations
	// made while approximating the Jacobian are not counted. a zero value
	// means 200 times the number of parameters
	MaxEvaluations int

	// convergence is reached when the relative reduction in cost of an
	// accepted step is less than FTol
	FTol float64

	// convergence is reached when the length of the step is less than XTol
	// relative to the length of the parameter vector
	XTol float64

	// convergence is reached when the infinity norm of the projected gradient
	// is less than GTol
	GTol float64

	// the relative step used for the finite difference approximation of the
	// Jacobian
	DiffStep float64

	// log every accepted step
	Trace bool
}

// DefaultSettings returns the settings used by Solve() for any field left
// at zero.
func DefaultSettings() Settings {
	return Settings{
		FTol:     1e-8,
		XTol:     1e-8,
		GTol:     1e-8,
		DiffStep: math.Sqrt(epsilon),
	}
}

// machine epsilon for float64
const epsilon = 2.220446049250313e-16

func (set Settings) withDefaults(n int) Settings {
	def := DefaultSettings()
	if set.MaxEvaluations <= 0 {
		set.MaxEvaluations = 200 * n
	}
	if set.FTol <= 0 {
		set.FTol = def.FTol
	}
	if set.XTol <= 0 {
		set.XTol = def.XTol
	}
	if set.GTol <= 0 {
		set.GTol = def.GTol
	}
	if set.DiffStep <= 0 {
		set.DiffStep = def.DiffStep
	}
	return set
}

// Status describes why Solve() stopped.
type Status int

// List of valid Status values.
const (
	// the evaluation budget was spent
	Exhausted Status = iota

	// the projected gradient is smaller than GTol
	GradientConvergence

	// the relative cost reduction is smaller than FTol
	FunctionConvergence

	// the step is smaller than XTol or no smaller cost could be found
	StepConvergence
)

func (s Status) String() string {
	switch s {
	case Exhausted:
		return "evaluation budget exhausted"
	case GradientConvergence:
		return "gradient tolerance reached"
	case FunctionConvergence:
		return "function tolerance reached"
	case StepConvergence:
		return "step tolerance reached"
	}
	return "unknown status"
}
