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

// Package measurement loads tables of measured colour output. A table has one
// row per palette index and one column per measured channel. The first line
// of the source names the columns. Fields are separated by tabs:
//
//	Index	R	G	B
//	0	0	0	0
//	1	1	15	22
//
// Lines beginning with # are ignored.
//
// The measurements of the Game Boy Color display are built into the package
// and are used when no other source is given.
package measurement

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/logger"
)

// DataShapeError is the pattern for all errors caused by a measurement source
// that is unreadable or which does not have the expected shape.
const DataShapeError = "data shape: %v"

// BuiltinSource is the name given to the built-in measurements.
const BuiltinSource = "built-in"

//go:embed colours.tsv
var builtin string

// Table of measurements. Row i of every column is the measurement for
// palette index i.
type Table struct {
	// the name of the source the table was read from
	Source string

	names   []string
	columns map[string][]float64
	rows    int
}

// Rows returns the number of rows in the table.
func (tab *Table) Rows() int {
	return tab.rows
}

// Columns returns the column names in the order they appear in the source.
func (tab *Table) Columns() []string {
	return tab.names
}

// Column returns the values of the named column. Column names are case
// sensitive.
func (tab *Table) Column(name string) ([]float64, error) {
	c, ok := tab.columns[name]
	if !ok {
		return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: no column named %q", tab.Source, name))
	}
	return c, nil
}

// RequireRows returns an error if the number of rows in the table is not
// exactly n.
func (tab *Table) RequireRows(n int) error {
	if tab.rows != n {
		return curated.Errorf(DataShapeError, fmt.Sprintf("%s: expected %d rows, found %d", tab.Source, n, tab.rows))
	}
	return nil
}

// Read a table from the io.Reader. The source argument is used to identify the
// table in error messages.
func Read(r io.Reader, source string) (*Table, error) {
	rd := csv.NewReader(r)
	rd.Comma = '\t'
	rd.Comment = '#'

	header, err := rd.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: no header", source))
		}
		return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: %v", source, err))
	}

	tab := &Table{
		Source:  source,
		columns: make(map[string][]float64),
	}

	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: empty column name", source))
		}
		if _, ok := tab.columns[h]; ok {
			return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: duplicate column %q", source, h))
		}
		tab.names = append(tab.names, h)
		tab.columns[h] = []float64{}
	}

	for {
		rec, err := rd.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // for loop
			}
			return nil, curated.Errorf(DataShapeError, fmt.Sprintf("%s: %v", source, err))
		}

		for i, f := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				line, _ := rd.FieldPos(i)
				return nil, curated.Errorf(DataShapeError,
					fmt.Sprintf("%s: line %d: column %s: not a number (%s)", source, line, tab.names[i], f))
			}
			tab.columns[tab.names[i]] = append(tab.columns[tab.names[i]], v)
		}
		tab.rows++
	}

	logger.Logf(logger.Allow, "measurement", "%d rows, columns %s, from %s", tab.rows, strings.Join(tab.names, ","), source)

	return tab, nil
}

// Load a table from the file at path. The built-in measurements are returned
// if path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Builtin()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(DataShapeError, err)
	}
	defer f.Close()

	return Read(f, path)
}

// Builtin returns the table of built-in measurements.
func Builtin() (*Table, error) {
	return Read(strings.NewReader(builtin), BuiltinSource)
}
