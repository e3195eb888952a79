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

package instructions

// GetDefinitions returns the table of instruction definitions for the 6502.
// The table is indexed by opcode. Opcodes with no definition (a nil entry)
// are not part of the documented instruction set.
func GetDefinitions() []*Definition {
	defs := make([]*Definition, 256)

	add := func(opcode uint8, operator Operator, bytes int, cycles int, mode AddressingMode, pageSensitive bool, effect EffectCategory) {
		defs[opcode] = &Definition{
			OpCode:         opcode,
			Operator:       operator,
			Bytes:          bytes,
			Cycles:         cycles,
			AddressingMode: mode,
			PageSensitive:  pageSensitive,
			Effect:         effect,
		}
	}

	// arithmetic
	add(0x69, Adc, 2, 2, Immediate, false, Read)
	add(0x65, Adc, 2, 3, ZeroPage, false, Read)
	add(0x75, Adc, 2, 4, ZeroPageIndexedX, false, Read)
	add(0x6d, Adc, 3, 4, Absolute, false, Read)
	add(0x7d, Adc, 3, 4, AbsoluteIndexedX, true, Read)
	add(0x79, Adc, 3, 4, AbsoluteIndexedY, true, Read)
	add(0x61, Adc, 2, 6, IndexedIndirect, false, Read)
	add(0x71, Adc, 2, 5, IndirectIndexed, true, Read)

	add(0xe9, Sbc, 2, 2, Immediate, false, Read)
	add(0xe5, Sbc, 2, 3, ZeroPage, false, Read)
	add(0xf5, Sbc, 2, 4, ZeroPageIndexedX, false, Read)
	add(0xed, Sbc, 3, 4, Absolute, false, Read)
	add(0xfd, Sbc, 3, 4, AbsoluteIndexedX, true, Read)
	add(0xf9, Sbc, 3, 4, AbsoluteIndexedY, true, Read)
	add(0xe1, Sbc, 2, 6, IndexedIndirect, false, Read)
	add(0xf1, Sbc, 2, 5, IndirectIndexed, true, Read)

	// logical
	add(0x29, And, 2, 2, Immediate, false, Read)
	add(0x25, And, 2, 3, ZeroPage, false, Read)
	add(0x35, And, 2, 4, ZeroPageIndexedX, false, Read)
	add(0x2d, And, 3, 4, Absolute, false, Read)
	add(0x3d, And, 3, 4, AbsoluteIndexedX, true, Read)
	add(0x39, And, 3, 4, AbsoluteIndexedY, true, Read)
	add(0x21, And, 2, 6, IndexedIndirect, false, Read)
	add(0x31, And, 2, 5, IndirectIndexed, true, Read)

	add(0x49, Eor, 2, 2, Immediate, false, Read)
	add(0x45, Eor, 2, 3, ZeroPage, false, Read)
	add(0x55, Eor, 2, 4, ZeroPageIndexedX, false, Read)
	add(0x4d, Eor, 3, 4, Absolute, false, Read)
	add(0x5d, Eor, 3, 4, AbsoluteIndexedX, true, Read)
	add(0x59, Eor, 3, 4, AbsoluteIndexedY, true, Read)
	add(0x41, Eor, 2, 6, IndexedIndirect, false, Read)
	add(0x51, Eor, 2, 5, IndirectIndexed, true, Read)

	add(0x09, Ora, 2, 2, Immediate, false, Read)
	add(0x05, Ora, 2, 3, ZeroPage, false, Read)
	add(0x15, Ora, 2, 4, ZeroPageIndexedX, false, Read)
	add(0x0d, Ora, 3, 4, Absolute, false, Read)
	add(0x1d, Ora, 3, 4, AbsoluteIndexedX, true, Read)
	add(0x19, Ora, 3, 4, AbsoluteIndexedY, true, Read)
	add(0x01, Ora, 2, 6, IndexedIndirect, false, Read)
	add(0x11, Ora, 2, 5, IndirectIndexed, true, Read)

	add(0x24, Bit, 2, 3, ZeroPage, false, Read)
	add(0x2c, Bit, 3, 4, Absolute, false, Read)

	// comparison
	add(0xc9, Cmp, 2, 2, Immediate, false, Read)
	add(0xc5, Cmp, 2, 3, ZeroPage, false, Read)
	add(0xd5, Cmp, 2, 4, ZeroPageIndexedX, false, Read)
	add(0xcd, Cmp, 3, 4, Absolute, false, Read)
	add(0xdd, Cmp, 3, 4, AbsoluteIndexedX, true, Read)
	add(0xd9, Cmp, 3, 4, AbsoluteIndexedY, true, Read)
	add(0xc1, Cmp, 2, 6, IndexedIndirect, false, Read)
	add(0xd1, Cmp, 2, 5, IndirectIndexed, true, Read)

	add(0xe0, Cpx, 2, 2, Immediate, false, Read)
	add(0xe4, Cpx, 2, 3, ZeroPage, false, Read)
	add(0xec, Cpx, 3, 4, Absolute, false, Read)

	add(0xc0, Cpy, 2, 2, Immediate, false, Read)
	add(0xc4, Cpy, 2, 3, ZeroPage, false, Read)
	add(0xcc, Cpy, 3, 4, Absolute, false, Read)

	// loads
	add(0xa9, Lda, 2, 2, Immediate, false, Read)
	add(0xa5, Lda, 2, 3, ZeroPage, false, Read)
	add(0xb5, Lda, 2, 4, ZeroPageIndexedX, false, Read)
	add(0xad, Lda, 3, 4, Absolute, false, Read)
	add(0xbd, Lda, 3, 4, AbsoluteIndexedX, true, Read)
	add(0xb9, Lda, 3, 4, AbsoluteIndexedY, true, Read)
	add(0xa1, Lda, 2, 6, IndexedIndirect, false, Read)
	add(0xb1, Lda, 2, 5, IndirectIndexed, true, Read)

	add(0xa2, Ldx, 2, 2, Immediate, false, Read)
	add(0xa6, Ldx, 2, 3, ZeroPage, false, Read)
	add(0xb6, Ldx, 2, 4, ZeroPageIndexedY, false, Read)
	add(0xae, Ldx, 3, 4, Absolute, false, Read)
	add(0xbe, Ldx, 3, 4, AbsoluteIndexedY, true, Read)

	add(0xa0, Ldy, 2, 2, Immediate, false, Read)
	add(0xa4, Ldy, 2, 3, ZeroPage, false, Read)
	add(0xb4, Ldy, 2, 4, ZeroPageIndexedX, false, Read)
	add(0xac, Ldy, 3, 4, Absolute, false, Read)
	add(0xbc, Ldy, 3, 4, AbsoluteIndexedX, true, Read)

	// stores. indexed stores are never page sensitive, the address fixup
	// cycle always happens
	add(0x85, Sta, 2, 3, ZeroPage, false, Write)
	add(0x95, Sta, 2, 4, ZeroPageIndexedX, false, Write)
	add(0x8d, Sta, 3, 4, Absolute, false, Write)
	add(0x9d, Sta, 3, 5, AbsoluteIndexedX, false, Write)
	add(0x99, Sta, 3, 5, AbsoluteIndexedY, false, Write)
	add(0x81, Sta, 2, 6, IndexedIndirect, false, Write)
	add(0x91, Sta, 2, 6, IndirectIndexed, false, Write)

	add(0x86, Stx, 2, 3, ZeroPage, false, Write)
	add(0x96, Stx, 2, 4, ZeroPageIndexedY, false, Write)
	add(0x8e, Stx, 3, 4, Absolute, false, Write)

	add(0x84, Sty, 2, 3, ZeroPage, false, Write)
	add(0x94, Sty, 2, 4, ZeroPageIndexedX, false, Write)
	add(0x8c, Sty, 3, 4, Absolute, false, Write)

	// shifts and rotates
	add(0x0a, Asl, 1, 2, Accumulator, false, RMW)
	add(0x06, Asl, 2, 5, ZeroPage, false, RMW)
	add(0x16, Asl, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0x0e, Asl, 3, 6, Absolute, false, RMW)
	add(0x1e, Asl, 3, 7, AbsoluteIndexedX, false, RMW)

	add(0x4a, Lsr, 1, 2, Accumulator, false, RMW)
	add(0x46, Lsr, 2, 5, ZeroPage, false, RMW)
	add(0x56, Lsr, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0x4e, Lsr, 3, 6, Absolute, false, RMW)
	add(0x5e, Lsr, 3, 7, AbsoluteIndexedX, false, RMW)

	add(0x2a, Rol, 1, 2, Accumulator, false, RMW)
	add(0x26, Rol, 2, 5, ZeroPage, false, RMW)
	add(0x36, Rol, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0x2e, Rol, 3, 6, Absolute, false, RMW)
	add(0x3e, Rol, 3, 7, AbsoluteIndexedX, false, RMW)

	add(0x6a, Ror, 1, 2, Accumulator, false, RMW)
	add(0x66, Ror, 2, 5, ZeroPage, false, RMW)
	add(0x76, Ror, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0x6e, Ror, 3, 6, Absolute, false, RMW)
	add(0x7e, Ror, 3, 7, AbsoluteIndexedX, false, RMW)

	// increment and decrement
	add(0xe6, Inc, 2, 5, ZeroPage, false, RMW)
	add(0xf6, Inc, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0xee, Inc, 3, 6, Absolute, false, RMW)
	add(0xfe, Inc, 3, 7, AbsoluteIndexedX, false, RMW)

	add(0xc6, Dec, 2, 5, ZeroPage, false, RMW)
	add(0xd6, Dec, 2, 6, ZeroPageIndexedX, false, RMW)
	add(0xce, Dec, 3, 6, Absolute, false, RMW)
	add(0xde, Dec, 3, 7, AbsoluteIndexedX, false, RMW)

	add(0xe8, Inx, 1, 2, Implied, false, Read)
	add(0xc8, Iny, 1, 2, Implied, false, Read)
	add(0xca, Dex, 1, 2, Implied, false, Read)
	add(0x88, Dey, 1, 2, Implied, false, Read)

	// branches. cycle count is for the branch-not-taken case; a taken branch
	// consumes one more cycle and another if the new program counter is on a
	// different page
	add(0x90, Bcc, 2, 2, Relative, true, Flow)
	add(0xb0, Bcs, 2, 2, Relative, true, Flow)
	add(0xf0, Beq, 2, 2, Relative, true, Flow)
	add(0x30, Bmi, 2, 2, Relative, true, Flow)
	add(0xd0, Bne, 2, 2, Relative, true, Flow)
	add(0x10, Bpl, 2, 2, Relative, true, Flow)
	add(0x50, Bvc, 2, 2, Relative, true, Flow)
	add(0x70, Bvs, 2, 2, Relative, true, Flow)

	// jumps and subroutines
	add(0x4c, Jmp, 3, 3, Absolute, false, Flow)
	add(0x6c, Jmp, 3, 5, Indirect, false, Flow)
	add(0x20, Jsr, 3, 6, Absolute, false, Subroutine)
	add(0x60, Rts, 1, 6, Implied, false, Subroutine)

	// interrupts
	add(0x00, Brk, 1, 7, Implied, false, Interrupt)
	add(0x40, Rti, 1, 6, Implied, false, Interrupt)

	// status flags
	add(0x18, Clc, 1, 2, Implied, false, Read)
	add(0x38, Sec, 1, 2, Implied, false, Read)
	add(0x58, Cli, 1, 2, Implied, false, Read)
	add(0x78, Sei, 1, 2, Implied, false, Read)
	add(0xb8, Clv, 1, 2, Implied, false, Read)
	add(0xd8, Cld, 1, 2, Implied, false, Read)
	add(0xf8, Sed, 1, 2, Implied, false, Read)

	// stack
	add(0x48, Pha, 1, 3, Implied, false, Write)
	add(0x08, Php, 1, 3, Implied, false, Write)
	add(0x68, Pla, 1, 4, Implied, false, Read)
	add(0x28, Plp, 1, 4, Implied, false, Read)

	// register transfers
	add(0xaa, Tax, 1, 2, Implied, false, Read)
	add(0xa8, Tay, 1, 2, Implied, false, Read)
	add(0xba, Tsx, 1, 2, Implied, false, Read)
	add(0x8a, Txa, 1, 2, Implied, false, Read)
	add(0x9a, Txs, 1, 2, Implied, false, Read)
	add(0x98, Tya, 1, 2, Implied, false, Read)

	add(0xea, Nop, 1, 2, Implied, false, Read)

	return defs
}
