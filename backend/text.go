// seehuhn.de/go/plot - a 2D/3D plotting library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package backend

import (
	"strings"

	"seehuhn.de/go/plot/font"
	"seehuhn.de/go/plot/internal/logging"
)

// selectFont is used by every context, both for painting and for
// measuring, so that both always see the same face.
func selectFont(prop font.Properties) (*font.Face, error) {
	f, err := font.Resolve(prop)
	if err != nil {
		logging.Get().Warn("cannot select font", "family", prop.Family,
			"style", prop.Style, "weight", prop.Weight, "error", err)
		return nil, err
	}
	return f, nil
}

// plainText returns the characters of s which are drawn.  Mathematical
// text is set as plain text, without the dollar sign delimiters.
func plainText(s string, isMath bool) string {
	if !isMath {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			if r != '$' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '$':
			// delimiter
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}
