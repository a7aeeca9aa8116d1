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

// Package htmlchart renders a plot.Chart as an interactive HTML page using
// go-echarts. The page can be written to a file or served locally so that it
// can be viewed in a browser.
package htmlchart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jetsetilly/cgbcolour/logger"
	"github.com/jetsetilly/cgbcolour/plot"
)

// DefaultAddress for the Serve() function.
const DefaultAddress = "localhost:12601"

// echarts treats this value as a gap in the line
const missing = "-"

func newLine(ch plot.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: ch.Title,
			Width:     "1200px",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{Title: ch.Title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Right: "10%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: ch.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: ch.YLabel}),
	)

	x := make([]int, ch.Len())
	for i := range x {
		x[i] = i
	}
	line.SetXAxis(x)

	cols := plot.SeriesColours(len(ch.Series))
	for i, s := range ch.Series {
		data := make([]opts.LineData, len(s.Values))
		for j, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				data[j] = opts.LineData{Value: missing}
			} else {
				data[j] = opts.LineData{Value: v}
			}
		}

		hex := plot.Hex(cols[i])
		line.AddSeries(s.Label, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex, Width: 1.5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}

	return line
}

// Render the chart as an HTML page to the io.Writer.
func Render(ch plot.Chart, w io.Writer) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	if err := newLine(ch).Render(w); err != nil {
		return fmt.Errorf("htmlchart: %w", err)
	}
	return nil
}

// Save the chart as an HTML page to the named file.
func Save(ch plot.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("htmlchart: %w", err)
	}

	err = Render(ch, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("htmlchart: %w", cerr)
	}

	return err
}

// Handler returns a http.Handler that responds with the chart page.
func Handler(ch plot.Chart) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Render(ch, w); err != nil {
			logger.Log(logger.Allow, "htmlchart", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// Serve the chart on the address until the context is cancelled. The URL of
// the chart is written to output once the server is listening.
func Serve(ctx context.Context, ch plot.Chart, addr string, output io.Writer) error {
	if err := ch.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("htmlchart: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", Handler(ch))
	srv := &http.Server{Handler: mux}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = srv.Shutdown(context.Background())
		case <-done:
		}
	}()

	fmt.Fprintf(output, "chart available at http://%s/ (ctrl-c to end)\n", ln.Addr())
	logger.Logf(logger.Allow, "htmlchart", "serving on %s", ln.Addr())

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("htmlchart: %w", err)
}
