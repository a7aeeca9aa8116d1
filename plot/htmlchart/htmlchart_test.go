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

package htmlchart_test

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/cgbcolour/plot"
	"github.com/jetsetilly/cgbcolour/plot/htmlchart"
	"github.com/jetsetilly/cgbcolour/test"
)

func chart() plot.Chart {
	return plot.Chart{
		Title:  "red channel",
		XLabel: "palette index",
		YLabel: "R",
		Series: []plot.Series{
			{Label: "Measured", Values: []float64{0, 10, 20, 30}},
			{Label: "nested", Values: []float64{1, math.NaN(), 19, 31}},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	test.DemandSuccess(t, htmlchart.Render(chart(), &buf))

	s := buf.String()
	test.ExpectSuccess(t, strings.Contains(s, "echarts"))
	test.ExpectSuccess(t, strings.Contains(s, "red channel"))
	test.ExpectSuccess(t, strings.Contains(s, "Measured"))
	test.ExpectSuccess(t, strings.Contains(s, "nested"))
	test.ExpectFailure(t, strings.Contains(s, "NaN"))

	test.ExpectFailure(t, htmlchart.Render(plot.Chart{}, &buf))
}

func TestSave(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "chart.html")
	test.DemandSuccess(t, htmlchart.Save(chart(), pth))
	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Contains(data, []byte("Measured")))
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	htmlchart.Handler(chart()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.ExpectEquality(t, rec.Code, http.StatusOK)
	test.ExpectSuccess(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	test.ExpectSuccess(t, strings.Contains(rec.Body.String(), "nested"))

	rec = httptest.NewRecorder()
	htmlchart.Handler(plot.Chart{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	test.ExpectEquality(t, rec.Code, http.StatusInternalServerError)
}

// syncWriter signals when the first write has been made
type syncWriter struct {
	bytes.Buffer
	written chan bool
}

func (w *syncWriter) Write(p []byte) (int, error) {
	n, err := w.Buffer.Write(p)
	select {
	case w.written <- true:
	default:
	}
	return n, err
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &syncWriter{written: make(chan bool, 1)}

	done := make(chan error)
	go func() {
		done <- htmlchart.Serve(ctx, chart(), "127.0.0.1:0", w)
	}()

	select {
	case <-w.written:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	// extract the URL from the message
	msg := w.String()
	start := strings.Index(msg, "http://")
	test.DemandSuccess(t, start >= 0)
	url := strings.Fields(msg[start:])[0]

	resp, err := http.Get(url)
	test.DemandSuccess(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, bytes.Contains(body, []byte("Measured")))

	cancel()
	test.ExpectSuccess(t, <-done)
}
