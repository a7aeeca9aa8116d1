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

package packed

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RoundTripError returns the perceptual distance (CIEDE2000) between the
// colour and the colour after being encoded and decoded.
//
// The value is on the go-colorful scale, in which the distance between black
// and white is about 1.0.
func RoundTripError(c RGB24) float64 {
	a, _ := colorful.MakeColor(c)
	b, _ := colorful.MakeColor(Decode(Encode(c)))
	return a.DistanceCIEDE2000(b)
}
