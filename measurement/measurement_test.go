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

package measurement_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/cgbcolour/curated"
	"github.com/jetsetilly/cgbcolour/measurement"
	"github.com/jetsetilly/cgbcolour/test"
)

func TestBuiltin(t *testing.T) {
	tab, err := measurement.Builtin()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab.Source, measurement.BuiltinSource)
	test.ExpectEquality(t, tab.Rows(), 512)
	test.ExpectSuccess(t, tab.RequireRows(512))
	test.ExpectEquality(t, strings.Join(tab.Columns(), " "), "Index R G B")

	idx, err := tab.Column("Index")
	test.DemandSuccess(t, err)
	for i, v := range idx {
		test.ExpectEquality(t, v, float64(i))
	}

	// palette index 8 is green 1 with red and blue at zero
	r, err := tab.Column("R")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r[0], 0.0)
	test.ExpectEquality(t, r[8], 13.0)

	tab2, err := measurement.Load("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab2.Rows(), tab.Rows())
}

func TestRead(t *testing.T) {
	src := "# comment\nIndex\tR\n0\t1.5\n1\t 2\n"
	tab, err := measurement.Read(strings.NewReader(src), "test")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab.Rows(), 2)

	r, err := tab.Column("R")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(r), 2)
	test.ExpectEquality(t, r[0], 1.5)
	test.ExpectEquality(t, r[1], 2.0)
}

func TestShapeErrors(t *testing.T) {
	tab, err := measurement.Read(strings.NewReader("Index\tG\tB\n0\t0\t0\n"), "test")
	test.DemandSuccess(t, err)

	// missing column
	_, err = tab.Column("R")
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))

	// wrong row count
	err = tab.RequireRows(512)
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))
	test.ExpectEquality(t, err.Error(), "data shape: test: expected 512 rows, found 1")

	for _, src := range []string{
		"",
		"Index\tR\n0\t1\t2\n",
		"Index\tR\n0\tbright\n",
		"Index\tR\tR\n0\t1\t1\n",
		"Index\t\tR\n0\t1\t1\n",
	} {
		_, err := measurement.Read(strings.NewReader(src), "test")
		test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError), src)
	}
}

func TestLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "measured.tsv")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("Index\tR\n0\t10\n1\t20\n"), 0600))

	tab, err := measurement.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tab.Source, pth)
	test.ExpectEquality(t, tab.Rows(), 2)

	_, err = measurement.Load(filepath.Join(t.TempDir(), "missing.tsv"))
	test.ExpectSuccess(t, curated.Is(err, measurement.DataShapeError))
}
