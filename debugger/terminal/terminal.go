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

// Package terminal defines the operations required of a debugging
// terminal. The debugger talks to the user exclusively through this
// interface so the actual terminal can be swapped out; the colorterm
// package provides a full ANSI implementation and PlainTerminal is the
// fallback for dumb terminals and scripted input.
package terminal

// Style is used to hint at how a line of output should be presented.
// Implementations are free to ignore the hint.
type Style int

const (
	// the default style for responses to commands
	StyleFeedback Style = iota

	// disassembly and other views of the machine language program
	StyleCPUStep

	// register and memory views
	StyleMachineInfo

	// command errors
	StyleError

	// the help text
	StyleHelp
)

// Terminal is the interface the debugger requires of its user-facing
// input and output.
type Terminal interface {
	// Initialise is called once before the first UserRead()
	Initialise() error

	// CleanUp is called when the debugger session has finished. the
	// terminal should be left how Initialise() found it.
	CleanUp()

	// UserRead presents the prompt and returns one line of user input,
	// without the line terminator. returns io.EOF when the input source
	// is exhausted.
	UserRead(prompt string) (string, error)

	// Print a single line of output. implementations add the line
	// terminator themselves.
	Print(style Style, format string, args ...interface{})
}
