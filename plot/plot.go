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

// Package plot describes a line chart independently of how it is drawn. The
// chart is rendered by one of the sub-packages:
//
//	raster     image.RGBA and PNG files
//	htmlchart  interactive HTML page
//	sdlview    SDL window
//	termview   terminal
//
// Every series in a chart is plotted against its index, which for calibration
// charts is the palette index.
package plot

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Series is a single named line in a chart.
type Series struct {
	Label  string
	Values []float64
}

// Chart is a collection of series with a title and axis labels.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

// Len returns the number of values in the longest series.
func (ch Chart) Len() int {
	var n int
	for _, s := range ch.Series {
		n = max(n, len(s.Values))
	}
	return n
}

// Range returns the smallest and largest finite value of all series. If there
// are no finite values the range is 0 to 1. If all values are the same the
// range is widened by one either side.
func (ch Chart) Range() (lo float64, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, s := range ch.Series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// Validate returns an error if the chart has nothing to plot.
func (ch Chart) Validate() error {
	if len(ch.Series) == 0 {
		return fmt.Errorf("plot: %s: no series", ch.Title)
	}
	if ch.Len() < 2 {
		return fmt.Errorf("plot: %s: not enough values", ch.Title)
	}
	return nil
}

// SeriesColours returns n colours, evenly spaced around the HCL hue circle
// with constant chroma and luminance. The first colour is always a dark grey
// so that measured data stands apart from the model curves.
func SeriesColours(n int) []color.RGBA {
	cols := make([]color.RGBA, 0, n)
	if n <= 0 {
		return cols
	}

	cols = append(cols, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff})

	for i := 1; i < n; i++ {
		h := 360.0 * float64(i-1) / float64(n-1)
		cols = append(cols, toRGBA(colorful.Hcl(h+30, 0.7, 0.55).Clamped()))
	}

	return cols
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex returns the colour as a CSS hex string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Ticks returns about n evenly spaced values between lo and hi, rounded to a
// "nice" step of 1, 2 or 5 times a power of ten.
func Ticks(lo float64, hi float64, n int) []float64 {
	if n < 1 || hi <= lo {
		return []float64{lo}
	}

	raw := (hi - lo) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, f := range []float64{1, 2, 5, 10} {
		step = f * mag
		if step >= raw {
			break // for loop
		}
	}

	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}
