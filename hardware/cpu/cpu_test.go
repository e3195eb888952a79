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

package cpu_test

import (
	"errors"
	"testing"

	"github.com/samuwen/go6502/hardware/cpu"
	"github.com/samuwen/go6502/hardware/cpu/execution"
	"github.com/samuwen/go6502/hardware/memory/cpubus"
	"github.com/samuwen/go6502/test"
)

func TestNOP(t *testing.T) {
	mc, mem := startCPU(t)
	mem.putInstructions(testOrigin, 0xea)

	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 2)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestLoadAndStatus(t *testing.T) {
	mc, mem := startCPU(t)

	// LDA #$ff; LDA #$00; LDX #$80; LDY #$01
	mem.putInstructions(testOrigin, 0xa9, 0xff, 0xa9, 0x00, 0xa2, 0x80, 0xa0, 0x01)

	step(t, mc) // LDA #$ff
	test.Equate(t, mc.A, "ff")
	test.Equate(t, mc.Status, "Sv-bdIzc")

	step(t, mc) // LDA #$00
	test.Equate(t, mc.A, "00")
	test.Equate(t, mc.Status, "sv-bdIZc")

	step(t, mc) // LDX #$80
	test.Equate(t, mc.X, "80")
	test.Equate(t, mc.Status, "Sv-bdIzc")

	step(t, mc) // LDY #$01
	test.Equate(t, mc.Y, "01")
	test.Equate(t, mc.Status, "sv-bdIzc")
}

func TestArithmetic(t *testing.T) {
	mc, mem := startCPU(t)

	// CLC; LDA #$10; ADC #$10; SEC; SBC #$01
	mem.putInstructions(testOrigin, 0x18, 0xa9, 0x10, 0x69, 0x10, 0x38, 0xe9, 0x01)

	step(t, mc) // CLC
	step(t, mc) // LDA #$10
	step(t, mc) // ADC #$10
	test.Equate(t, mc.A, "20")
	test.Equate(t, mc.Status, "sv-bdIzc")

	step(t, mc) // SEC
	step(t, mc) // SBC #$01
	test.Equate(t, mc.A, "1f")
	test.Equate(t, mc.Status, "sv-bdIzC")
}

func TestSignedOverflow(t *testing.T) {
	mc, mem := startCPU(t)

	// CLC; LDA #$7f; ADC #$01
	mem.putInstructions(testOrigin, 0x18, 0xa9, 0x7f, 0x69, 0x01)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A, "80")
	test.Equate(t, mc.Status, "SV-bdIzc")
}

func TestDecimalArithmetic(t *testing.T) {
	mc, mem := startCPU(t)

	// SED; CLC; LDA #$09; ADC #$01; SEC; SBC #$01
	mem.putInstructions(testOrigin, 0xf8, 0x18, 0xa9, 0x09, 0x69, 0x01, 0x38, 0xe9, 0x01)

	step(t, mc) // SED
	step(t, mc) // CLC
	step(t, mc) // LDA #$09
	step(t, mc) // ADC #$01
	test.Equate(t, mc.A, "10")
	test.Equate(t, mc.Status, "sv-bDIzc")

	step(t, mc) // SEC
	step(t, mc) // SBC #$01
	test.Equate(t, mc.A, "09")
	test.Equate(t, mc.Status, "sv-bDIzC")
}

func TestCompare(t *testing.T) {
	mc, mem := startCPU(t)

	// LDA #$40; CMP #$40; CMP #$41
	mem.putInstructions(testOrigin, 0xa9, 0x40, 0xc9, 0x40, 0xc9, 0x41)

	step(t, mc) // LDA #$40
	step(t, mc) // CMP #$40
	test.Equate(t, mc.Status, "sv-bdIZC")

	step(t, mc) // CMP #$41
	test.Equate(t, mc.Status, "Sv-bdIzc")

	// the accumulator is untouched by comparison
	test.Equate(t, mc.A, "40")
}

func TestBit(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(0x0010, 0xc0)

	// LDA #$01; BIT $10
	mem.putInstructions(testOrigin, 0xa9, 0x01, 0x24, 0x10)

	step(t, mc)
	step(t, mc)

	// bits 7 and 6 of the operand move to sign and overflow; A AND operand
	// is zero
	test.Equate(t, mc.Status, "SV-bdIZc")
	test.Equate(t, mc.A, "01")
}

func TestStores(t *testing.T) {
	mc, mem := startCPU(t)

	// LDA #$05; STA $10; STA $0300; LDX #$03; STA $0300,X
	mem.putInstructions(testOrigin, 0xa9, 0x05, 0x85, 0x10, 0x8d, 0x00, 0x03, 0xa2, 0x03, 0x9d, 0x00, 0x03)

	step(t, mc) // LDA #$05
	step(t, mc) // STA $10
	test.Equate(t, mc.LastResult.Cycles, 3)
	test.Equate(t, mem.internal[0x0010], 0x05)

	step(t, mc) // STA $0300
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.Equate(t, mem.internal[0x0300], 0x05)

	step(t, mc) // LDX #$03
	step(t, mc) // STA $0300,X
	test.Equate(t, mc.LastResult.Cycles, 5)
	test.Equate(t, mem.internal[0x0303], 0x05)
}

func TestStack(t *testing.T) {
	mc, mem := startCPU(t)

	// LDX #$ff; TXS; LDA #$42; PHA; LDA #$00; PLA
	mem.putInstructions(testOrigin, 0xa2, 0xff, 0x9a, 0xa9, 0x42, 0x48, 0xa9, 0x00, 0x68)

	step(t, mc) // LDX #$ff
	step(t, mc) // TXS
	test.Equate(t, mc.SP.Address(), 0x01ff)

	step(t, mc) // LDA #$42
	step(t, mc) // PHA
	test.Equate(t, mc.LastResult.Cycles, 3)
	test.Equate(t, mc.SP.Address(), 0x01fe)
	test.Equate(t, mem.internal[0x01ff], 0x42)

	step(t, mc) // LDA #$00
	test.Equate(t, mc.Status, "sv-bdIZc")

	step(t, mc) // PLA
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.Equate(t, mc.A, "42")
	test.Equate(t, mc.SP.Address(), 0x01ff)
	test.Equate(t, mc.Status, "sv-bdIzc")
}

func TestStackPageWraparound(t *testing.T) {
	mc, mem := startCPU(t)

	// LDA #$aa; LDX #$00; TXS; PHA; PHA
	mem.putInstructions(testOrigin, 0xa9, 0xaa, 0xa2, 0x00, 0x9a, 0x48, 0x48)

	step(t, mc) // LDA #$aa
	step(t, mc) // LDX #$00
	step(t, mc) // TXS
	test.Equate(t, mc.SP.Address(), 0x0100)

	// pushing from the bottom of the stack page wraps to the top. this is
	// architected behaviour, not an error
	step(t, mc) // PHA
	test.Equate(t, mem.internal[0x0100], 0xaa)
	test.Equate(t, mc.SP.Address(), 0x01ff)

	step(t, mc) // PHA
	test.Equate(t, mem.internal[0x01ff], 0xaa)
	test.Equate(t, mc.SP.Address(), 0x01fe)
}

func TestZeroPageIndexWraparound(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(0x0004, 0x77)

	// LDX #$05; LDA $ff,X
	mem.putInstructions(testOrigin, 0xa2, 0x05, 0xb5, 0xff)

	step(t, mc) // LDX #$05
	step(t, mc) // LDA $ff,X

	// the indexed address wraps within the zero page: (0xff+0x05)&0xff
	test.Equate(t, mc.A, "77")
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.Equate(t, mc.LastResult.CPUBug == execution.ZeroPageIndexBug, true)
}

func TestIndexedIndirect(t *testing.T) {
	mc, mem := startCPU(t)

	// pointer at 0xfe/0xff points to 0x8000
	mem.putInstructions(0x00fe, 0x00, 0x80)
	mem.putInstructions(0x8000, 0x99)

	// LDX #$02; LDA ($fc,X)
	mem.putInstructions(testOrigin, 0xa2, 0x02, 0xa1, 0xfc)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A, "99")
	test.Equate(t, mc.LastResult.Cycles, 6)
}

func TestIndexedIndirectWraparound(t *testing.T) {
	mc, mem := startCPU(t)

	// the indexed pointer wraps within the zero page: both pointer bytes
	// come from the zero page, 0xff and 0x00
	mem.putInstructions(0x00ff, 0x00)
	mem.internal[0x0000] = 0x80
	mem.putInstructions(0x8000, 0x23)

	// LDX #$01; LDA ($fe,X)
	mem.putInstructions(testOrigin, 0xa2, 0x01, 0xa1, 0xfe)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A, "23")

	// a second variant where adding X wraps the pointer itself
	mc2, mem2 := startCPU(t)
	mem2.internal[0x0000] = 0x00
	mem2.internal[0x0001] = 0x80
	mem2.putInstructions(0x8000, 0x34)
	mem2.putInstructions(testOrigin, 0xa2, 0x01, 0xa1, 0xff)

	step(t, mc2)
	step(t, mc2)
	test.Equate(t, mc2.A, "34")
	test.Equate(t, mc2.LastResult.CPUBug == execution.IndexedIndirectAddressingBug, true)
}

func TestIndirectIndexed(t *testing.T) {
	mc, mem := startCPU(t)

	// pointer at 0x80 points to 0x80ff. indexing with Y crosses a page
	mem.putInstructions(0x0080, 0xff, 0x80)
	mem.putInstructions(0x8100, 0x55)

	// LDY #$01; LDA ($80),Y
	mem.putInstructions(testOrigin, 0xa0, 0x01, 0xb1, 0x80)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A, "55")
	test.Equate(t, mc.LastResult.Cycles, 6)
	test.Equate(t, mc.LastResult.PageFault, true)

	// without a page crossing the instruction is a cycle quicker
	mc2, mem2 := startCPU(t)
	mem2.putInstructions(0x0080, 0x00, 0x80)
	mem2.putInstructions(0x8001, 0x66)
	mem2.putInstructions(testOrigin, 0xa0, 0x01, 0xb1, 0x80)

	step(t, mc2)
	step(t, mc2)
	test.Equate(t, mc2.A, "66")
	test.Equate(t, mc2.LastResult.Cycles, 5)
	test.Equate(t, mc2.LastResult.PageFault, false)
}

func TestBranching(t *testing.T) {
	mc, mem := startCPU(t)

	// LDX #$02; loop: DEX; BNE loop
	mem.putInstructions(testOrigin, 0xa2, 0x02, 0xca, 0xd0, 0xfd)

	step(t, mc) // LDX #$02
	step(t, mc) // DEX (X=1)
	step(t, mc) // BNE taken
	test.Equate(t, mc.LastResult.Cycles, 3)
	test.Equate(t, mc.LastResult.BranchSuccess, true)
	test.Equate(t, mc.PC.Address(), testOrigin+2)

	step(t, mc) // DEX (X=0)
	step(t, mc) // BNE not taken
	test.Equate(t, mc.LastResult.Cycles, 2)
	test.Equate(t, mc.LastResult.BranchSuccess, false)
	test.Equate(t, mc.PC.Address(), testOrigin+5)
}

func TestBranchPageCross(t *testing.T) {
	mc, mem := startCPU(t)

	// JMP $40f0
	mem.putInstructions(testOrigin, 0x4c, 0xf0, 0x40)

	// LDA #$00; BEQ +$0e (branches from 0x40f4 to 0x4102)
	mem.putInstructions(0x40f0, 0xa9, 0x00, 0xf0, 0x0e)

	step(t, mc) // JMP
	step(t, mc) // LDA #$00
	step(t, mc) // BEQ
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.Equate(t, mc.LastResult.BranchSuccess, true)
	test.Equate(t, mc.LastResult.PageFault, true)
	test.Equate(t, mc.PC.Address(), 0x4102)
}

func TestJmp(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(testOrigin, 0x4c, 0x00, 0x41)

	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 3)
	test.Equate(t, mc.PC.Address(), 0x4100)
}

func TestJmpIndirectPageWrap(t *testing.T) {
	mc, mem := startCPU(t)

	// pointer at the end of a page. the high byte of the jump target is
	// read from the start of the same page, not the next one
	mem.putInstructions(0x02ff, 0x00)
	mem.putInstructions(0x0200, 0x50)
	mem.putInstructions(0x0300, 0x60)

	// JMP ($02ff)
	mem.putInstructions(testOrigin, 0x6c, 0xff, 0x02)

	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 5)
	test.Equate(t, mc.PC.Address(), 0x5000)
	test.Equate(t, mc.LastResult.CPUBug == execution.JmpIndirectAddressingBug, true)
}

func TestSubroutine(t *testing.T) {
	mc, mem := startCPU(t)

	// JSR $4100; ...; subroutine: RTS
	mem.putInstructions(testOrigin, 0x20, 0x00, 0x41)
	mem.putInstructions(0x4100, 0x60)

	step(t, mc) // JSR
	test.Equate(t, mc.LastResult.Cycles, 6)
	test.Equate(t, mc.PC.Address(), 0x4100)

	// the address of the last byte of the JSR instruction is on the stack
	test.Equate(t, mc.SP.Address(), 0x01fb)
	test.Equate(t, mem.internal[0x01fd], 0x40)
	test.Equate(t, mem.internal[0x01fc], 0x02)

	step(t, mc) // RTS
	test.Equate(t, mc.LastResult.Cycles, 6)
	test.Equate(t, mc.PC.Address(), testOrigin+3)
	test.Equate(t, mc.SP.Address(), 0x01fd)
}

func TestUnimplementedInstruction(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(testOrigin, 0x02)

	// the fetch of an undefined opcode kills the CPU
	cycles, err := mc.StepInstruction()
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, cpu.UnimplementedInstruction), true)
	test.Equate(t, cycles, 1)
	test.Equate(t, mc.Killed(), true)

	// a killed CPU refuses to step and consumes no cycles
	before := mc.Cycles
	_, err = mc.StepInstruction()
	test.ExpectFailure(t, err)
	test.Equate(t, mc.Cycles, before)

	// reset revives it
	mc.Reset()
	cycles, err = mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.Killed(), false)
	test.Equate(t, mc.PC.Address(), testOrigin)
}

func TestBusFault(t *testing.T) {
	mem := &faultyMem{newMockMem()}
	mem.putInstructions(cpubus.Reset, uint8(testOrigin), uint8(testOrigin>>8))

	mc := cpu.NewCPU(mem)
	mc.Reset()
	_, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)

	// LDA $9000; LDA #$01
	mem.putInstructions(testOrigin, 0xad, 0x00, 0x90, 0xa9, 0x01)

	// the fault surfaces on the data read cycle. the cycle still counts
	cycles, err := mc.StepInstruction()
	test.ExpectFailure(t, err)
	test.Equate(t, errors.Is(err, cpubus.AddressError), true)
	test.Equate(t, cycles, 4)

	// the CPU is still usable
	step(t, mc)
	test.Equate(t, mc.A, "01")
}
