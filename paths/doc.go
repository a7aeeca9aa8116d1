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

// Package paths contains functions to prepare paths to cgbcolour resources,
// such as the preferences file.
//
// The ResourcePath() function joins the sub-path and filename onto the base
// resource directory. The base directory is created if it does not exist.
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// For development builds the base directory is ".cgbcolour" in the current
// directory. When built with the "release" build tag the base directory is
// "cgbcolour" in the user's configuration directory, as reported by
// os.UserConfigDir(). On a modern Linux system that would be:
//
//	/home/user/.config/cgbcolour/preferences
package paths
