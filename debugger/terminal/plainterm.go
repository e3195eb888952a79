// This file is part of Go6502.
//
// Go6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Go6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Go6502.  If not, see <https://www.gnu.org/licenses/>.

package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// PlainTerminal implements the Terminal interface with no frills. It
// works over any reader and writer pair, which also makes it the
// terminal of choice for scripted sessions and for tests.
type PlainTerminal struct {
	input   *bufio.Scanner
	output  io.Writer
	silence bool
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	return &PlainTerminal{
		input:  bufio.NewScanner(input),
		output: output,
	}
}

// Silence stops the terminal echoing its prompt. Useful when input is
// coming from a script rather than a person.
func (pt *PlainTerminal) Silence(silence bool) {
	pt.silence = silence
}

// Initialise implements the Terminal interface.
func (pt *PlainTerminal) Initialise() error {
	return nil
}

// CleanUp implements the Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}

// UserRead implements the Terminal interface.
func (pt *PlainTerminal) UserRead(prompt string) (string, error) {
	if !pt.silence {
		fmt.Fprint(pt.output, prompt)
	}

	if !pt.input.Scan() {
		if err := pt.input.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return pt.input.Text(), nil
}

// Print implements the Terminal interface.
func (pt *PlainTerminal) Print(style Style, format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	if style == StyleError {
		s = fmt.Sprintf("* %s", s)
	}
	fmt.Fprintln(pt.output, s)
}
