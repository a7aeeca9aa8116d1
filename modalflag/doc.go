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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Unlike flag.FlagSet, the arguments are given to NewArgs() and Parse() is
// called without arguments. This allows the same argument list to be parsed
// over several layers of modes:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CALIBRATE", "ENCODE", "DECODE", "MODELS")
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "ENCODE":
//		md.NewMode()
//		verbose := md.AddBool("verbose", false, "report round trip error")
//		...
//	}
//
// The first sub-mode is the default and is selected when the first argument
// is not the name of a sub-mode. Sub-mode names are case insensitive.
//
// Flags with a fixed set of acceptable values can be added with AddChoice().
// The value is checked during Parse() and an error returned if it is not one
// of the choices.
//
// Non-flag arguments are available after Parse() through RemainingArgs() and
// GetArg().
package modalflag
