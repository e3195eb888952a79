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

package logger

import (
	"strings"
	"testing"

	"github.com/samuwen/go6502/test"
)

func TestRepeats(t *testing.T) {
	l := newLogger(16)

	l.log("CPU", "halted")
	l.log("CPU", "halted")
	l.log("CPU", "halted")

	s := strings.Builder{}
	l.write(&s)
	test.Equate(t, s.String(), "CPU: halted (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)

	l.log("tag", "one")
	l.log("tag", "two")
	l.log("tag", "three")

	s := strings.Builder{}
	l.write(&s)
	test.Equate(t, s.String(), "tag: two\ntag: three\n")
}

func TestTail(t *testing.T) {
	l := newLogger(16)

	l.log("tag", "one")
	l.log("tag", "two")
	l.log("tag", "three")

	s := strings.Builder{}
	l.tail(&s, 1)
	test.Equate(t, s.String(), "tag: three\n")

	// tail longer than the log is capped
	s.Reset()
	l.tail(&s, 100)
	test.Equate(t, s.String(), "tag: one\ntag: two\ntag: three\n")
}
