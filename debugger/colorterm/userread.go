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

package colorterm

import "io"

// control bytes we respond to while reading a line in raw mode
const (
	keyInterrupt = 0x03
	keyEndOfFile = 0x04
	keyBackspace = 0x7f
	keyEscape    = 0x1b
	keyCarRet    = 0x0d
	keyNewline   = 0x0a
)

// UserRead implements the terminal.Terminal interface. The terminal is
// in raw mode for the duration of the call so we do our own echoing and
// line editing.
func (ct *ColorTerminal) UserRead(prompt string) (string, error) {
	ct.rawMode()
	defer ct.canonicalMode()

	ct.print("%s%s%s", pens["bold"], prompt, ansiNormal)

	line := make([]byte, 0, 32)
	buf := make([]byte, 1)

	for {
		n, err := ct.input.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}

		switch buf[0] {
		case keyInterrupt:
			// ctrl-c abandons the line
			ct.print("\r\n")
			return "", nil

		case keyEndOfFile:
			ct.print("\r\n")
			return "", io.EOF

		case keyCarRet, keyNewline:
			ct.print("\r\n")
			return string(line), nil

		case keyBackspace, 0x08:
			if len(line) > 0 {
				line = line[:len(line)-1]
				ct.print("\b \b")
			}

		case keyEscape:
			// swallow escape sequences from cursor and function keys
			if err := ct.discardEscapeSequence(); err != nil {
				return "", err
			}

		default:
			if buf[0] >= 0x20 && buf[0] < 0x7f {
				line = append(line, buf[0])
				ct.print("%c", buf[0])
			}
		}
	}
}

// discardEscapeSequence reads bytes until the sequence terminator. CSI
// sequences end with a byte in the range 0x40 to 0x7e, anything else is
// a two byte sequence.
func (ct *ColorTerminal) discardEscapeSequence() error {
	buf := make([]byte, 1)

	if _, err := ct.input.Read(buf); err != nil {
		return err
	}
	if buf[0] != '[' {
		return nil
	}

	for {
		if _, err := ct.input.Read(buf); err != nil {
			return err
		}
		if buf[0] >= 0x40 && buf[0] <= 0x7e {
			return nil
		}
	}
}
