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

package plot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContractViolation is the common cause of all errors which are due to
// inconsistent input from the caller.  Use errors.Is to test for it.
var ErrContractViolation = errors.New("contract violation")

var (
	// ErrMismatchedVertices indicates coordinate arrays of different lengths.
	ErrMismatchedVertices = fmt.Errorf("%w: coordinate arrays differ in length", ErrContractViolation)

	// ErrInvalidColorSpec indicates a color list whose length is neither 1
	// nor the number of primitives, or a color string which cannot be parsed.
	ErrInvalidColorSpec = fmt.Errorf("%w: invalid color specification", ErrContractViolation)
)

// CheckLengths returns ErrMismatchedVertices unless all arguments have the
// same length.
func CheckLengths(n int, others ...int) error {
	for _, m := range others {
		if m != n {
			return fmt.Errorf("%w (%d != %d)", ErrMismatchedVertices, m, n)
		}
	}
	return nil
}

// UnsupportedFormatError is returned when a figure is saved in an output
// format which no surface is registered for.
type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("format %q is not supported (supported formats: %s)",
		e.Format, strings.Join(e.Supported, ", "))
}

// StyleValueError reports an unknown value for an enumerated style
// property, such as a line cap.  The property keeps its previous value.
type StyleValueError struct {
	Property string
	Value    string
	Allowed  []string
}

func (e *StyleValueError) Error() string {
	return fmt.Sprintf("unrecognized %s %q, expected one of %s",
		e.Property, e.Value, strings.Join(e.Allowed, ", "))
}
