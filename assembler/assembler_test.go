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

package assembler_test

import (
	"testing"

	"github.com/samuwen/go6502/assembler"
	"github.com/samuwen/go6502/test"
)

func equateImage(t *testing.T, image []uint8, expected []uint8) {
	t.Helper()
	test.Equate(t, len(image), len(expected))
	for i := range expected {
		if i < len(image) {
			test.Equate(t, image[i], expected[i])
		}
	}
}

func TestAssemble(t *testing.T) {
	prog, err := assembler.Assemble(`
	.org $4000
start:	lda #$10	; load a value
	clc
	adc #$25
	sta $0300
loop:	dex
	bne loop
	jmp start
`)
	test.ExpectSuccess(t, err)
	test.Equate(t, prog.Origin, 0x4000)

	equateImage(t, prog.Image, []uint8{
		0xa9, 0x10,
		0x18,
		0x69, 0x25,
		0x8d, 0x00, 0x03,
		0xca,
		0xd0, 0xfd,
		0x4c, 0x00, 0x40,
	})
}

func TestZeroPageSelection(t *testing.T) {
	prog, err := assembler.Assemble(`
	lda $10
	lda $0300
	lda $10,x
	sta $0300,y
	ldx $10,y
`)
	test.ExpectSuccess(t, err)
	test.Equate(t, prog.Origin, assembler.DefaultOrigin)

	equateImage(t, prog.Image, []uint8{
		0xa5, 0x10,
		0xad, 0x00, 0x03,
		0xb5, 0x10,
		0x99, 0x00, 0x03,
		0xb6, 0x10,
	})
}

func TestAddressingModes(t *testing.T) {
	prog, err := assembler.Assemble(`
	lda ($80),y
	lda ($80,x)
	jmp ($0200)
	asl a
	asl
	lda #%00001111
	ldy #42
`)
	test.ExpectSuccess(t, err)

	equateImage(t, prog.Image, []uint8{
		0xb1, 0x80,
		0xa1, 0x80,
		0x6c, 0x00, 0x02,
		0x0a,
		0x0a,
		0xa9, 0x0f,
		0xa0, 0x2a,
	})
}

func TestDirectives(t *testing.T) {
	prog, err := assembler.Assemble(`
	.org $0600
	jmp code
data:	.byte $01, $02, %00000011
vector:	.word code
code:	rts
`)
	test.ExpectSuccess(t, err)
	test.Equate(t, prog.Origin, 0x0600)

	// code follows three data bytes and a two byte vector
	equateImage(t, prog.Image, []uint8{
		0x4c, 0x08, 0x06,
		0x01, 0x02, 0x03,
		0x08, 0x06,
		0x60,
	})
}

func TestErrors(t *testing.T) {
	_, err := assembler.Assemble("xyz #$10")
	test.ExpectFailure(t, err)

	_, err = assembler.Assemble("lda #$100")
	test.ExpectFailure(t, err)

	_, err = assembler.Assemble("jmp nowhere")
	test.ExpectFailure(t, err)

	_, err = assembler.Assemble("a:\na:\n")
	test.ExpectFailure(t, err)

	// .org after code has started
	_, err = assembler.Assemble(`
start:	nop
	.org $4000
`)
	test.ExpectFailure(t, err)

	_, err = assembler.Assemble(`
	sta #$10
`)
	test.ExpectFailure(t, err)
}
