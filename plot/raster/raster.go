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

// Package raster draws a plot.Chart to an image. Curves are anti-aliased and
// text is drawn with a fixed 7x13 pixel font.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/jetsetilly/cgbcolour/plot"
)

// space around the plot area for labels
const (
	marginLeft   = 64
	marginRight  = 16
	marginTop    = 40
	marginBottom = 40
)

const strokeWidth = 1.5

var (
	textColour = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	axisColour = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	gridColour = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
)

var face = basicfont.Face7x13

// mapping of chart values to image coordinates
type layout struct {
	area   image.Rectangle
	lo, hi float64
	n      int
}

func (l layout) x(i float64) float32 {
	return float32(l.area.Min.X) + float32(i/float64(l.n-1)*float64(l.area.Dx()-1))
}

func (l layout) y(v float64) float32 {
	return float32(l.area.Max.Y-1) - float32((v-l.lo)/(l.hi-l.lo)*float64(l.area.Dy()-1))
}

// Render the chart to a new image of the given size. If the size is too small
// for the chart or the chart is not valid then the image will be blank.
func Render(ch plot.Chart, width int, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	if width-marginLeft-marginRight < 32 || height-marginTop-marginBottom < 32 || ch.Validate() != nil {
		return img
	}
	area := image.Rect(marginLeft, marginTop, width-marginRight, height-marginBottom)

	lo, hi := ch.Range()
	l := layout{area: area, lo: lo, hi: hi, n: ch.Len()}

	drawGrid(img, l)

	cols := plot.SeriesColours(len(ch.Series))
	for i, s := range ch.Series {
		drawSeries(img, l, s.Values, cols[i])
	}

	drawLegend(img, l, ch, cols)

	// title and axis labels
	drawText(img, (width-textWidth(ch.Title))/2, 16, ch.Title, textColour)
	drawText(img, 4, marginTop-8, ch.YLabel, textColour)
	drawText(img, area.Min.X+(area.Dx()-textWidth(ch.XLabel))/2, height-6, ch.XLabel, textColour)

	return img
}

// draw grid lines, axes and tick labels
func drawGrid(img *image.RGBA, l layout) {
	for _, v := range plot.Ticks(l.lo, l.hi, 6) {
		y := int(math.Round(float64(l.y(v))))
		fill(img, image.Rect(l.area.Min.X, y, l.area.Max.X, y+1), gridColour)
		s := formatTick(v)
		drawText(img, l.area.Min.X-6-textWidth(s), y+4, s, textColour)
	}

	for _, v := range plot.Ticks(0, float64(l.n-1), 8) {
		x := int(math.Round(float64(l.x(v))))
		fill(img, image.Rect(x, l.area.Min.Y, x+1, l.area.Max.Y), gridColour)
		s := formatTick(v)
		drawText(img, x-textWidth(s)/2, l.area.Max.Y+16, s, textColour)
	}

	fill(img, image.Rect(l.area.Min.X-1, l.area.Min.Y, l.area.Min.X, l.area.Max.Y+1), axisColour)
	fill(img, image.Rect(l.area.Min.X-1, l.area.Max.Y, l.area.Max.X, l.area.Max.Y+1), axisColour)
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.4g", v)
}

// draw the series as a polyline. the line is broken at non-finite values
func drawSeries(img *image.RGBA, l layout, values []float64, col color.RGBA) {
	var line [][2]float32

	flush := func() {
		stroke(img, line, strokeWidth, col)
		line = line[:0]
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			flush()
			continue // for loop
		}
		line = append(line, [2]float32{l.x(float64(i)), l.y(v)})
	}
	flush()
}

// stroke a polyline by filling a quadrilateral for each segment
func stroke(img *image.RGBA, pts [][2]float32, width float32, col color.Color) {
	if len(pts) < 2 {
		return
	}

	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	hw := width / 2

	for i := 1; i < len(pts); i++ {
		x0, y0 := pts[i-1][0], pts[i-1][1]
		x1, y1 := pts[i][0], pts[i][1]
		dx, dy := x1-x0, y1-y0
		d := float32(math.Hypot(float64(dx), float64(dy)))
		if d == 0 {
			continue // for loop
		}
		nx, ny := -dy/d*hw, dx/d*hw

		z.MoveTo(x0+nx, y0+ny)
		z.LineTo(x1+nx, y1+ny)
		z.LineTo(x1-nx, y1-ny)
		z.LineTo(x0-nx, y0-ny)
		z.ClosePath()
	}

	z.Draw(img, b, image.NewUniform(col), image.Point{})
}

// legend in the top left corner of the plot area
func drawLegend(img *image.RGBA, l layout, ch plot.Chart, cols []color.RGBA) {
	const swatch = 16
	const lineHeight = 15

	var w int
	for _, s := range ch.Series {
		w = max(w, textWidth(s.Label))
	}

	box := image.Rect(0, 0, w+swatch+16, len(ch.Series)*lineHeight+8).Add(l.area.Min.Add(image.Pt(8, 8)))
	fill(img, box, axisColour)
	fill(img, box.Inset(1), image.White)

	for i, s := range ch.Series {
		y := box.Min.Y + 4 + i*lineHeight
		fill(img, image.Rect(box.Min.X+4, y+6, box.Min.X+4+swatch, y+9), cols[i])
		drawText(img, box.Min.X+swatch+10, y+11, s.Label, textColour)
	}
}

func fill(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func drawText(img draw.Image, x int, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// WritePNG renders the chart and writes it to the io.Writer as a PNG image.
func WritePNG(w io.Writer, ch plot.Chart, width int, height int) error {
	if err := png.Encode(w, Render(ch, width, height)); err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	return nil
}

// SavePNG renders the chart and saves it to the named file as a PNG image.
func SavePNG(ch plot.Chart, path string, width int, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}

	err = WritePNG(f, ch, width, height)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("raster: %w", cerr)
	}

	return err
}
