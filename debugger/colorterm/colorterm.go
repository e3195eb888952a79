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

// Package colorterm implements the debugger's terminal interface for
// posix terminals. Output is coloured according to print style and
// input is read in raw mode so the prompt can offer simple line
// editing. Terminal attributes are handled by the termios wrappers in
// "github.com/pkg/term".
package colorterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"github.com/samuwen/go6502/debugger/terminal"
	"golang.org/x/sys/unix"
)

// ColorTerminal implements the terminal.Terminal interface.
type ColorTerminal struct {
	input  *os.File
	output *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
}

// Initialise implements the terminal.Terminal interface. The terminal
// stays in canonical mode between calls to UserRead().
func (ct *ColorTerminal) Initialise() error {
	ct.input = os.Stdin
	ct.output = os.Stdout

	// prepare the attributes for the two modes we switch between. raw
	// mode is only entered for the duration of a UserRead()
	termios.Tcgetattr(ct.input.Fd(), &ct.canAttr)
	ct.rawAttr = ct.canAttr
	termios.Cfmakeraw(&ct.rawAttr)

	return nil
}

// CleanUp implements the terminal.Terminal interface.
func (ct *ColorTerminal) CleanUp() {
	ct.canonicalMode()
	ct.print(ansiNormal)
}

// Print implements the terminal.Terminal interface.
func (ct *ColorTerminal) Print(style terminal.Style, format string, args ...interface{}) {
	p := pen(style)
	s := fmt.Sprintf(format, args...)

	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	if p == "" {
		ct.print("%s\n", s)
	} else {
		ct.print("%s%s%s\n", p, s, ansiNormal)
	}
}

func (ct *ColorTerminal) print(format string, args ...interface{}) {
	ct.output.WriteString(fmt.Sprintf(format, args...))
	ct.output.Sync()
}

func (ct *ColorTerminal) canonicalMode() {
	termios.Tcsetattr(ct.input.Fd(), termios.TCIFLUSH, &ct.canAttr)
}

func (ct *ColorTerminal) rawMode() {
	termios.Tcsetattr(ct.input.Fd(), termios.TCIFLUSH, &ct.rawAttr)
}
