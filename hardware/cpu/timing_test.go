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
	"testing"

	"github.com/samuwen/go6502/hardware/cpu"
	"github.com/samuwen/go6502/test"
)

func TestCycleCounts(t *testing.T) {
	tests := []struct {
		label  string
		bytes  []uint8
		cycles int
	}{
		{"LDA immediate", []uint8{0xa9, 0x05}, 2},
		{"LDA zero page", []uint8{0xa5, 0x10}, 3},
		{"LDA zero page indexed", []uint8{0xb5, 0x10}, 4},
		{"LDA absolute", []uint8{0xad, 0x00, 0x03}, 4},
		{"LDA absolute indexed (no crossing)", []uint8{0xbd, 0x00, 0x03}, 4},
		{"STA absolute indexed", []uint8{0x9d, 0x00, 0x03}, 5},
		{"ASL accumulator", []uint8{0x0a}, 2},
		{"INC zero page", []uint8{0xe6, 0x10}, 5},
		{"INC absolute", []uint8{0xee, 0x00, 0x03}, 6},
		{"INC absolute indexed", []uint8{0xfe, 0x00, 0x03}, 7},
		{"PHA", []uint8{0x48}, 3},
		{"PLA", []uint8{0x68}, 4},
		{"JMP absolute", []uint8{0x4c, 0x00, 0x41}, 3},
		{"BRK", []uint8{0x00}, 7},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			mc, mem := startCPU(t)
			mem.putInstructions(testOrigin, tc.bytes...)
			cycles, err := mc.StepInstruction()
			test.ExpectSuccess(t, err)
			test.Equate(t, cycles, tc.cycles)
		})
	}
}

func TestPageCrossPenalty(t *testing.T) {
	mc, mem := startCPU(t)

	// LDX #$02; LDA $30ff,X
	mem.putInstructions(testOrigin, 0xa2, 0x02, 0xbd, 0xff, 0x30)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 5)
	test.Equate(t, mc.LastResult.PageFault, true)
}

func TestCyclePurposes(t *testing.T) {
	mc, mem := startCPU(t)
	mem.putInstructions(testOrigin, 0xea)

	outcome, err := mc.StepCycle()
	test.ExpectSuccess(t, err)
	test.Equate(t, outcome.Purpose == cpu.OpcodeFetch, true)
	test.Equate(t, outcome.Complete, false)

	outcome, err = mc.StepCycle()
	test.ExpectSuccess(t, err)
	test.Equate(t, outcome.Purpose == cpu.Internal, true)
	test.Equate(t, outcome.Complete, true)
}

func TestRMWDoubleWrite(t *testing.T) {
	mem := &recordingMem{mockMem: newMockMem()}
	mem.putInstructions(0xfffc, uint8(testOrigin), uint8(testOrigin>>8))
	mem.putInstructions(0x0300, 0x41)

	mc := cpu.NewCPU(mem)
	mc.Reset()
	_, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)

	// ASL $0300
	mem.putInstructions(testOrigin, 0x0e, 0x00, 0x03)
	mem.log = mem.log[:0]

	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 6)

	// the unmodified value goes back first, then the shifted value
	test.Equate(t, len(mem.log), 2)
	test.Equate(t, mem.log[0].address, 0x0300)
	test.Equate(t, mem.log[0].data, 0x41)
	test.Equate(t, mem.log[1].address, 0x0300)
	test.Equate(t, mem.log[1].data, 0x82)
	test.Equate(t, mem.internal[0x0300], 0x82)
}

// running a program one cycle at a time must be indistinguishable from
// running it one instruction at a time.
func TestStepGranularityEquivalence(t *testing.T) {
	program := []uint8{
		0x18,             // CLC
		0xa9, 0x10,       // LDA #$10
		0x69, 0x25,       // ADC #$25
		0x8d, 0x00, 0x03, // STA $0300
		0xa2, 0x03,       // LDX #$03
		0xca,             // DEX
		0xd0, 0xfd,       // BNE -3
		0x20, 0x00, 0x41, // JSR $4100
		0xea,             // NOP
	}

	mcCycle, memCycle := startCPU(t)
	memCycle.putInstructions(testOrigin, program...)
	memCycle.putInstructions(0x4100, 0x60) // RTS

	mcInstruction, memInstruction := startCPU(t)
	memInstruction.putInstructions(testOrigin, program...)
	memInstruction.putInstructions(0x4100, 0x60)

	const numInstructions = 13

	completed := 0
	for completed < numInstructions {
		outcome, err := mcCycle.StepCycle()
		test.ExpectSuccess(t, err)
		if outcome.Complete {
			completed++
		}
	}

	for i := 0; i < numInstructions; i++ {
		_, err := mcInstruction.StepInstruction()
		test.ExpectSuccess(t, err)
	}

	test.Equate(t, mcCycle.String(), mcInstruction.String())
	test.Equate(t, mcCycle.Cycles, mcInstruction.Cycles)
	test.Equate(t, memCycle.internal[0x0300], memInstruction.internal[0x0300])
}
