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

// Package calibration fits the candidate models to measured channel output
// and reports how well each model explains the measurements.
//
// An Engine is created from a Config. The measurement table is loaded with
// Engine.Load() and the fits are performed by Engine.Run(). Each candidate
// model is fitted independently and a failure to fit one model does not
// prevent the other models from being fitted.
//
// The resulting Report can be printed with Report.Write() and plotted by any
// of the plot backends using the chart returned by Report.Chart().
//
// Configuration is normally taken from the preferences file, with the
// Preferences type providing the translation between the prefs values and
// the Config type.
package calibration
