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

// Package palette defines the index of a 3-bit per channel palette colour.
// There are 512 such colours and every calibration model is a function over
// exactly this domain.
//
// An index is made up of three 3-bit fields:
//
//	bits 6-8  red
//	bits 3-5  green
//	bits 0-2  blue
package palette

import "fmt"

// NumIndices is the number of distinct palette indices.
const NumIndices = 512

// Index is a palette index in the range 0 to 511.
type Index int

// FromComponents returns the index for the three channel values. Each value
// is masked to three bits.
func FromComponents(r, g, b int) Index {
	return Index((r&0x07)<<6 | (g&0x07)<<3 | b&0x07)
}

// Components returns the red, green and blue values of the index, each in the
// range 0 to 7.
func (idx Index) Components() (r, g, b int) {
	r = int(idx) / 64
	g = (int(idx) / 8) % 8
	b = int(idx) % 8
	return r, g, b
}

// Valid returns true if the index is in the range 0 to 511.
func (idx Index) Valid() bool {
	return idx >= 0 && idx < NumIndices
}

func (idx Index) String() string {
	r, g, b := idx.Components()
	return fmt.Sprintf("%03d (r%d g%d b%d)", int(idx), r, g, b)
}

// Domain returns every palette index in order.
func Domain() []Index {
	d := make([]Index, NumIndices)
	for i := range d {
		d[i] = Index(i)
	}
	return d
}
