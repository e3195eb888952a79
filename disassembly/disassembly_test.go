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

package disassembly_test

import (
	"testing"

	"github.com/samuwen/go6502/disassembly"
	"github.com/samuwen/go6502/test"
)

func TestFromImage(t *testing.T) {
	image := []uint8{
		0xa9, 0x05, // LDA #$05
		0x8d, 0x00, 0x03, // STA $0300
		0xd0, 0xfb, // BNE (back to the STA)
		0x02,             // undocumented
		0x4c, 0x00, 0x40, // JMP $4000
	}

	entries := disassembly.FromImage(image, 0x4000)
	test.Equate(t, len(entries), 5)

	test.Equate(t, entries[0], "4000  a9 05     LDA #$05")
	test.Equate(t, entries[1], "4002  8d 00 03  STA $0300")
	test.Equate(t, entries[2], "4005  d0 fb     BNE $4002")
	test.Equate(t, entries[3], "4007  02        .byte $02")
	test.Equate(t, entries[4], "400a  4c 00 40  JMP $4000")
}

func TestOperandModes(t *testing.T) {
	image := []uint8{
		0xb1, 0x80, // LDA ($80),Y
		0xa1, 0x80, // LDA ($80,X)
		0x6c, 0x00, 0x02, // JMP ($0200)
		0x0a,       // ASL A
		0xb5, 0x10, // LDA $10,X
		0xb9, 0x00, 0x03, // LDA $0300,Y
	}

	entries := disassembly.FromImage(image, 0x1000)
	test.Equate(t, len(entries), 6)

	test.Equate(t, entries[0], "1000  b1 80     LDA ($80),Y")
	test.Equate(t, entries[1], "1002  a1 80     LDA ($80,X)")
	test.Equate(t, entries[2], "1004  6c 00 02  JMP ($0200)")
	test.Equate(t, entries[3], "1007  0a        ASL A")
	test.Equate(t, entries[4], "1008  b5 10     LDA $10,X")
	test.Equate(t, entries[5], "100a  b9 00 03  LDA $0300,Y")
}
