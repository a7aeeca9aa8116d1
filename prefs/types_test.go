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

package prefs_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/cgbcolour/prefs"
	"github.com/jetsetilly/cgbcolour/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.Get().(bool), false)

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectEquality(t, b.String(), "true")

	test.ExpectSuccess(t, b.Set(" TRUE "))
	test.ExpectEquality(t, b.Get().(bool), true)

	test.ExpectSuccess(t, b.Set("yes"))
	test.ExpectEquality(t, b.Get().(bool), false)

	test.ExpectFailure(t, b.Set(10))
}

func TestString(t *testing.T) {
	var s prefs.String
	test.ExpectEquality(t, s.Get().(string), "")

	test.ExpectSuccess(t, s.Set("powersum"))
	test.ExpectEquality(t, s.String(), "powersum")

	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "power")

	test.ExpectSuccess(t, s.Set("nested,powersum"))
	test.ExpectEquality(t, s.String(), "neste")

	test.ExpectSuccess(t, s.Reset())
	test.ExpectEquality(t, s.String(), "")
}

func TestInt(t *testing.T) {
	var i prefs.Int
	test.ExpectSuccess(t, i.Set(512))
	test.ExpectEquality(t, i.Get().(int), 512)

	test.ExpectSuccess(t, i.Set(" 8 "))
	test.ExpectEquality(t, i.Get().(int), 8)

	test.ExpectFailure(t, i.Set("eight"))
	test.ExpectEquality(t, i.Get().(int), 8)
}

func TestFloat(t *testing.T) {
	var f prefs.Float
	test.ExpectSuccess(t, f.Set("1e-8"))
	test.ExpectEquality(t, f.Get().(float64), 1e-8)

	// full precision is preserved in the string representation
	test.ExpectEquality(t, f.String(), "1e-08")

	test.ExpectSuccess(t, f.Set(3))
	test.ExpectEquality(t, f.Get().(float64), 3.0)

	test.ExpectFailure(t, f.Set(true))
}

func TestHooks(t *testing.T) {
	var i prefs.Int
	var post int

	i.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	i.SetHookPost(func(v prefs.Value) error {
		post = v.(int)
		return nil
	})

	test.ExpectSuccess(t, i.Set(100))
	test.ExpectEquality(t, post, 100)

	// pre-hook error prevents the value from changing
	test.ExpectFailure(t, i.Set(-1))
	test.ExpectEquality(t, i.Get().(int), 100)
	test.ExpectEquality(t, post, 100)
}
