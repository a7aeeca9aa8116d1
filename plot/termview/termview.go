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

// Package termview draws a plot.Chart as text in a terminal using tcell.
//
// Layout() is independent of the terminal and produces a Canvas of cells. Each
// cell records the rune to draw and the series it belongs to, if any. Draw()
// copies a canvas to a tcell.Screen and Show() runs a simple event loop that
// redraws on resize and quits on any key press.
package termview

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/jetsetilly/cgbcolour/plot"
)

// NoSeries is the Series value of cells that are not part of a plotted line.
const NoSeries = -1

// width of the column reserved for the y-axis labels
const labelWidth = 8

// smallest canvas that Layout() will draw a chart in
const (
	MinWidth  = labelWidth + 12
	MinHeight = 6
)

const (
	pointRune = '•'
	vertRune  = '│'
	horizRune = '─'
	tickRune  = '┬'
	axisRune  = '└'
	keyRune   = '■'
)

// Cell is a single character position on the canvas.
type Cell struct {
	Rune   rune
	Series int
}

// Canvas is a grid of cells, stored row by row.
type Canvas struct {
	Width  int
	Height int
	Cells  []Cell
}

func newCanvas(width int, height int) Canvas {
	width = max(width, 0)
	height = max(height, 0)
	cv := Canvas{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for i := range cv.Cells {
		cv.Cells[i] = Cell{Rune: ' ', Series: NoSeries}
	}
	return cv
}

// At returns the cell at the x/y coordinate. Coordinates outside the canvas
// return a blank cell.
func (cv Canvas) At(x int, y int) Cell {
	if x < 0 || y < 0 || x >= cv.Width || y >= cv.Height {
		return Cell{Rune: ' ', Series: NoSeries}
	}
	return cv.Cells[y*cv.Width+x]
}

func (cv *Canvas) set(x int, y int, r rune, series int) {
	if x < 0 || y < 0 || x >= cv.Width || y >= cv.Height {
		return
	}
	cv.Cells[y*cv.Width+x] = Cell{Rune: r, Series: series}
}

// text writes s starting at x/y. Runes beyond the right edge are dropped.
// Returns the x coordinate after the last rune.
func (cv *Canvas) text(x int, y int, s string, series int) int {
	for _, r := range s {
		cv.set(x, y, r, series)
		x++
	}
	return x
}

// Row returns the runes of row y as a string. Useful for testing and for
// writing a canvas to a plain text stream.
func (cv Canvas) Row(y int) string {
	if y < 0 || y >= cv.Height {
		return ""
	}
	b := make([]byte, 0, cv.Width)
	for x := range cv.Width {
		b = utf8.AppendRune(b, cv.At(x, y).Rune)
	}
	return string(b)
}

// Layout arranges the chart on a canvas of the given size. The title and the
// legend occupy the top two rows, y-axis labels the left-most columns, and the
// x-axis and its labels the bottom two rows. A chart that does not validate
// or a canvas that is too small results in a blank canvas.
func Layout(ch plot.Chart, width int, height int) Canvas {
	cv := newCanvas(width, height)

	if width < MinWidth || height < MinHeight {
		return cv
	}
	if ch.Validate() != nil {
		return cv
	}

	cv.text(0, 0, ch.Title, NoSeries)

	// legend
	x := 0
	for i, s := range ch.Series {
		cv.set(x, 1, keyRune, i)
		x = cv.text(x+2, 1, s.Label, NoSeries) + 2
	}

	left := labelWidth + 1
	top := 2
	plotW := width - left
	plotH := height - top - 2
	axisRow := top + plotH

	lo, hi := ch.Range()
	n := ch.Len()

	row := func(v float64) int {
		return top + int(math.Round((hi-v)/(hi-lo)*float64(plotH-1)))
	}
	col := func(i float64) int {
		return left + int(math.Round(i/float64(n-1)*float64(plotW-1)))
	}

	// axes
	for y := top; y < axisRow; y++ {
		cv.set(labelWidth, y, vertRune, NoSeries)
	}
	cv.set(labelWidth, axisRow, axisRune, NoSeries)
	for x := left; x < width; x++ {
		cv.set(x, axisRow, horizRune, NoSeries)
	}

	// y labels
	for _, v := range plot.Ticks(lo, hi, max(plotH/3, 1)) {
		s := fmt.Sprintf("%*.4g", labelWidth-1, v)
		if len(s) >= labelWidth {
			continue // for loop
		}
		cv.text(0, row(v), s, NoSeries)
	}

	// x labels. labels that would overlap the previous label are skipped
	next := 0
	for _, v := range plot.Ticks(0, float64(n-1), max(plotW/10, 1)) {
		c := col(v)
		cv.set(c, axisRow, tickRune, NoSeries)
		s := fmt.Sprintf("%g", v)
		start := c - len(s)/2
		if start < next || start+len(s) > width {
			continue // for loop
		}
		next = cv.text(start, axisRow+1, s, NoSeries) + 1
	}

	// series are drawn in order so later series overwrite earlier ones
	for si, s := range ch.Series {
		if len(s.Values) == 0 {
			continue // for loop
		}
		for c := range plotW {
			i := int(math.Round(float64(c) * float64(n-1) / float64(plotW-1)))
			if i >= len(s.Values) {
				break // for loop
			}
			v := s.Values[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue // for loop
			}
			cv.set(left+c, row(v), pointRune, si)
		}
	}

	return cv
}

// Styles returns the tcell style for each series in the chart, using the
// colours from plot.SeriesColours().
func Styles(ch plot.Chart) []tcell.Style {
	cols := plot.SeriesColours(len(ch.Series))
	styles := make([]tcell.Style, len(cols))
	for i, c := range cols {
		styles[i] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return styles
}

// Draw lays out the chart to fill the screen and shows it.
func Draw(screen tcell.Screen, ch plot.Chart) {
	width, height := screen.Size()
	cv := Layout(ch, width, height)
	styles := Styles(ch)

	screen.Clear()
	for y := range cv.Height {
		for x := range cv.Width {
			c := cv.At(x, y)
			style := tcell.StyleDefault
			if c.Series >= 0 && c.Series < len(styles) {
				style = styles[c.Series]
			}
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}

// Show draws the chart on the terminal and waits for a key press. The chart
// is redrawn whenever the terminal is resized.
func Show(ch plot.Chart) error {
	if err := ch.Validate(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("termview: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termview: %w", err)
	}
	defer screen.Fini()

	return run(screen, ch)
}

// run is the event loop for an initialised screen
func run(screen tcell.Screen, ch plot.Chart) error {
	Draw(screen, ch)
	for {
		switch screen.PollEvent().(type) {
		case nil:
			// screen has been finalised
			return nil
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, ch)
		case *tcell.EventKey:
			return nil
		}
	}
}
