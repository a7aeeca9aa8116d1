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

// Package test contains helper functions to remove common boilerplate to make
// testing easier. It is intended to be used alongside the standard go test
// harness.
//
// The Expect*() functions report a test error but allow the test to continue.
// The Demand*() functions are fatal to the test. Demands are useful when the
// value being tested is used in further tests and so must be correct. For
// example, testing that the length of a parameter vector is correct before
// iterating over it.
//
// ExpectSuccess() and ExpectFailure() test for generic success and failure
// conditions. The documentation for those functions describe the supported
// types. Note that nil is considered a success because of how errors work in
// Go.
//
// ExpectApproximate() compares floating point values with a tolerance. It
// should be preferred to ExpectEquality() for any value produced by
// arithmetic.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The Compare() function can then be used to test
// for equality.
package test
