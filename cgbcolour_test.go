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

package main

import (
	"strings"
	"testing"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/modalflag"
	"github.com/jetsetilly/cgbcolour/packed"
	"github.com/jetsetilly/cgbcolour/test"
)

// topLevel parses the arguments in the same way as launch()
func topLevel(t *testing.T, tw *test.CompareWriter, args ...string) *modalflag.Modes {
	t.Helper()
	md := &modalflag.Modes{Output: tw}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("CALIBRATE", "ENCODE", "DECODE", "MODELS", "VERSION")
	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)
	return md
}

func TestEncodeMode(t *testing.T) {
	tw := &test.CompareWriter{}

	md := topLevel(t, tw, "ENCODE", "0xFF0000", "#ffffff")
	test.DemandEquality(t, md.Mode(), "ENCODE")
	test.ExpectSuccess(t, encode(md, tw))
	test.ExpectEquality(t, tw.String(), "  db $1f, $00\n  db $ff, $7f\n")

	tw.Clear()
	md = topLevel(t, tw, "encode", "-verbose", "000000")
	test.ExpectSuccess(t, encode(md, tw))
	test.ExpectSuccess(t, strings.HasPrefix(tw.String(), "  db $00, $00\t; 0x000000 -> 0x000000"))

	tw.Clear()
	md = topLevel(t, tw, "ENCODE", "0x1000000")
	err := encode(md, tw)
	test.ExpectSuccess(t, curated.Is(err, packed.InvalidInputFormat))

	md = topLevel(t, tw, "ENCODE")
	test.ExpectFailure(t, encode(md, tw))
}

func TestDecodeMode(t *testing.T) {
	tw := &test.CompareWriter{}

	md := topLevel(t, tw, "DECODE", "$1f,$00", "$ff,$7f")
	test.DemandEquality(t, md.Mode(), "DECODE")
	test.ExpectSuccess(t, decode(md, tw))
	test.ExpectEquality(t, tw.String(), "0xff0000\n0xffffff\n")

	md = topLevel(t, tw, "DECODE", "$1f")
	err := decode(md, tw)
	test.ExpectSuccess(t, curated.Is(err, packed.InvalidInputFormat))
}

func TestModelsMode(t *testing.T) {
	tw := &test.CompareWriter{}

	md := topLevel(t, tw, "MODELS")
	test.ExpectSuccess(t, models(md, tw))

	s := tw.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, "reference\n"))
	test.ExpectSuccess(t, strings.Contains(s, "\nnested\n"))
	test.ExpectSuccess(t, strings.Contains(s, "\npowersum\n"))
	test.ExpectSuccess(t, strings.Contains(s, "p[16]"))
}

func TestDefaultMode(t *testing.T) {
	tw := &test.CompareWriter{}

	// an unknown flag at the top level selects the calibration mode
	md := topLevel(t, tw, "-plot", "none")
	test.ExpectEquality(t, md.Mode(), "CALIBRATE")

	md = topLevel(t, tw)
	test.ExpectEquality(t, md.Mode(), "CALIBRATE")
}
