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

// Package packed converts between 24-bit RGB colours and the packed 15-bit
// colour format used by the Game Boy Color.
//
// The packed format has five bits per channel stored little-endian in two
// bytes:
//
//	lo: g2 g1 g0 r4 r3 r2 r1 r0
//	hi: -- b4 b3 b2 b1 b0 g4 g3
//
// Conversion to and from eight bits per channel is by scaling and rounding,
// which means that the conversion is lossy. However, a colour that has been
// through one round trip will not change on subsequent round trips.
//
// Packed values are presented as RGBDS data directives, for example:
//
//	db $1f, $00
package packed

import (
	"fmt"
	"image/color"
	"math"
)

// RGB24 is a colour with eight bits per channel, stored as 0xRRGGBB.
type RGB24 uint32

// NewRGB24 returns the RGB24 value for the three channels.
func NewRGB24(r, g, b uint8) RGB24 {
	return RGB24(r)<<16 | RGB24(g)<<8 | RGB24(b)
}

// Channels returns the red, green and blue channels.
func (c RGB24) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c RGB24) String() string {
	return fmt.Sprintf("0x%06x", uint32(c)&0xffffff)
}

// RGBA implements the color.Color interface.
func (c RGB24) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}.RGBA()
}

// Packed is the two byte representation of a 15-bit colour.
type Packed struct {
	Lo uint8
	Hi uint8
}

// Word returns the packed colour as a 15-bit value.
func (p Packed) Word() uint16 {
	return (uint16(p.Lo) | uint16(p.Hi)<<8) & 0x7fff
}

func (p Packed) String() string {
	return fmt.Sprintf("$%02x, $%02x", p.Lo, p.Hi)
}

// Directive returns the packed colour as an RGBDS data directive.
func (p Packed) Directive() string {
	return fmt.Sprintf("db %s", p.String())
}

// RGBA implements the color.Color interface.
func (p Packed) RGBA() (r, g, b, a uint32) {
	return Decode(p).RGBA()
}

// Model converts any color.Color to a Packed value.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if p, ok := c.(Packed); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Encode(NewRGB24(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
})

const (
	mask5 = 0x1f
	max5  = 31.0
	max8  = 255.0
)

func to5(c uint8) uint16 {
	return uint16(math.Round(float64(c) / max8 * max5))
}

func to8(c uint16) uint8 {
	return uint8(math.Round(float64(c&mask5) / max5 * max8))
}

// Encode an RGB24 colour as a packed colour.
func Encode(c RGB24) Packed {
	r, g, b := c.Channels()
	r5, g5, b5 := to5(r), to5(g), to5(b)
	return Packed{
		Lo: uint8((g5&0x07)<<5 | r5),
		Hi: uint8(b5<<2 | g5>>3),
	}
}

// Decode a packed colour as an RGB24 colour. Bit 15 of the packed value is
// ignored.
func Decode(p Packed) RGB24 {
	w := p.Word()
	return NewRGB24(to8(w), to8(w>>5), to8(w>>10))
}
