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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function, which is used in the same way as fmt.Errorf().
//
// The pattern string given to Errorf() identifies the error. Patterns that
// callers need to test for should be declared as exported constants in the
// package that produces them. For example, the measurement package declares:
//
//	const DataShapeError = "data shape: %v"
//
// and callers can test for it with the Is() function:
//
//	if curated.Is(err, measurement.DataShapeError) {
//		...
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain. This is useful when an error has been wrapped
// by a higher level stage:
//
//	e := curated.Errorf(leastsquares.Divergence, 1700)
//	f := curated.Errorf(calibration.FitFailed, "powersum", e)
//
//	curated.Is(f, leastsquares.Divergence)   // false
//	curated.Has(f, leastsquares.Divergence)  // true
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference as being between 'expected' and
// 'unexpected' errors.
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts, where parts are separated by the sub-string ": ". This means
// that a function need not worry about whether its caller has already
// prefixed the message with the same context:
//
//	fit: fit: no convergence
//
// is printed as:
//
//	fit: no convergence
package curated
