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

// Package leastsquares fits the parameters of a nonlinear function to a set
// of observations by minimising the sum of squared residuals, with every
// parameter constrained to a closed interval.
//
// The method is a Levenberg-Marquardt iteration with Marquardt's diagonal
// scaling. Box constraints are handled by an active set: a parameter that is
// held at one of its bounds by the gradient is frozen for that iteration, and
// every trial point is projected back into the box. The Jacobian is
// approximated by finite differences.
//
// Solve() reports failure with curated errors. The patterns are:
//
//	Dimension        the lengths of the parameter and bounds vectors differ
//	InfeasibleStart  the bounds are inconsistent or the start is outside them
//	NonFiniteStart   the residuals at the start are NaN or infinite
//	Divergence       the evaluation budget was spent before convergence
//
// The parameters of any returned Result are always within the bounds.
package leastsquares
