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
	"strconv"
	"strings"

	"github.com/jetsetilly/cgbcolour/curated"
)

// InvalidInputFormat is the pattern for errors returned by the parsing
// functions.
const InvalidInputFormat = "invalid input format: %v"

// remove one of the accepted hexadecimal prefixes
func trimHexPrefix(s string) string {
	for _, p := range []string{"0x", "0X", "$", "#"} {
		if strings.HasPrefix(s, p) {
			return s[len(p):]
		}
	}
	return s
}

// ParseRGB24 parses a hexadecimal 24-bit colour. The value can be prefixed
// with 0x, $ or # or have no prefix at all.
func ParseRGB24(s string) (RGB24, error) {
	h := trimHexPrefix(strings.TrimSpace(s))
	if h == "" {
		return 0, curated.Errorf(InvalidInputFormat, "empty colour value")
	}
	if len(h) > 6 {
		return 0, curated.Errorf(InvalidInputFormat, "colour value too large: "+s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidInputFormat, "not a hexadecimal colour: "+s)
	}
	return RGB24(v), nil
}

func parseByte(s string) (uint8, error) {
	h := trimHexPrefix(strings.TrimSpace(s))
	if h == "" {
		return 0, curated.Errorf(InvalidInputFormat, "empty byte value")
	}
	v, err := strconv.ParseUint(h, 16, 8)
	if err != nil {
		return 0, curated.Errorf(InvalidInputFormat, "not a hexadecimal byte: "+strings.TrimSpace(s))
	}
	return uint8(v), nil
}

// ParseBytePair parses a packed colour given as two comma separated bytes,
// low byte first. Each byte is hexadecimal with an optional $ or 0x prefix.
// For example:
//
//	$1f,$00
//
// Bit 7 of the high byte must not be set.
func ParseBytePair(s string) (Packed, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Packed{}, curated.Errorf(InvalidInputFormat, "expected two bytes: "+s)
	}

	lo, err := parseByte(parts[0])
	if err != nil {
		return Packed{}, err
	}

	hi, err := parseByte(parts[1])
	if err != nil {
		return Packed{}, err
	}

	if hi&0x80 != 0 {
		return Packed{}, curated.Errorf(InvalidInputFormat, "bit 7 of high byte is set: "+s)
	}

	return Packed{Lo: lo, Hi: hi}, nil
}
