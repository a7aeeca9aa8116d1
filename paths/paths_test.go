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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/cgbcolour/paths"
	"github.com/jetsetilly/cgbcolour/test"
)

func TestPaths(t *testing.T) {
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".cgbcolour", "foo", "bar", "baz"))

	// the directory has been created but not the file
	_, err = os.Stat(filepath.Join(".cgbcolour", "foo", "bar"))
	test.ExpectSuccess(t, err)
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".cgbcolour", "preferences"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".cgbcolour")
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	test.ExpectEquality(t, paths.UniqueFilenameAt(n, "chart", "", "png"), "chart_20240307_090503.png")
	test.ExpectEquality(t, paths.UniqueFilenameAt(n, "chart", "red fit", ".html"), "chart_red_fit_20240307_090503.html")
	test.ExpectEquality(t, paths.UniqueFilenameAt(n, "report", "", ""), "report_20240307_090503")
}
