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

	"github.com/samuwen/go6502/hardware/memory/cpubus"
	"github.com/samuwen/go6502/test"
)

func TestResetState(t *testing.T) {
	mc, _ := startCPU(t)

	test.Equate(t, mc.Cycles, 7)
	test.Equate(t, mc.A, "00")
	test.Equate(t, mc.X, "00")
	test.Equate(t, mc.Y, "00")

	// three fake stack pushes bring the stack pointer from 0x00 to 0xfd
	test.Equate(t, mc.SP.Address(), 0x01fd)

	// interrupts are disabled and the zero flag reflects the zeroed
	// accumulator
	test.Equate(t, mc.Status, "sv-bdIZc")
}

func TestResetLine(t *testing.T) {
	mc, mem := startCPU(t)
	mem.putInstructions(testOrigin, 0xea, 0xea)

	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)

	// asserting the RESET line restarts the CPU at the next boundary
	mc.SetRESET(true)
	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), testOrigin)
	test.Equate(t, mc.SP.Address(), 0x01fd)

	// while the line is held the sequence repeats
	cycles, err = mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), testOrigin)

	// releasing the line lets execution proceed
	mc.SetRESET(false)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestIRQMasking(t *testing.T) {
	mc, mem := startCPU(t)
	mem.putInstructions(testOrigin, 0xea)

	// interrupt disable is set after reset, so the IRQ is ignored
	mc.SetIRQ(true)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestIRQ(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.IRQ, 0x00, 0x50)
	mem.putInstructions(testOrigin, 0x58, 0xea) // CLI; NOP
	mem.putInstructions(0x5000, 0x40)           // RTI

	step(t, mc) // CLI
	mc.SetIRQ(true)

	// the interrupt is serviced at the instruction boundary
	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), 0x5000)
	test.Equate(t, mc.Status.InterruptDisable, true)

	// the return address and the status register are on the stack. the
	// break bit of the pushed status is clear for a hardware interrupt
	test.Equate(t, mc.SP.Address(), 0x01fa)
	test.Equate(t, mem.internal[0x01fd], 0x40)
	test.Equate(t, mem.internal[0x01fc], 0x01)
	test.Equate(t, mem.internal[0x01fb]&0x10, 0x00)
	test.Equate(t, mem.internal[0x01fb]&0x20, 0x20)

	mc.SetIRQ(false)

	// RTI returns to the interrupted program and restores the status
	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
	test.Equate(t, mc.Status.InterruptDisable, false)
}

func TestNMIEdgeLatch(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.NMI, 0x00, 0x60)
	mem.putInstructions(testOrigin, 0xea, 0xea)
	mem.putInstructions(0x6000, 0x40) // RTI

	// a pulse on the NMI line is latched even though the line is low again
	// by the time the boundary is reached
	mc.SetNMI(true)
	mc.SetNMI(false)

	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), 0x6000)

	// NMI ignores the interrupt disable flag, which reset left set
	test.Equate(t, mc.Status.InterruptDisable, true)

	step(t, mc) // RTI
	test.Equate(t, mc.PC.Address(), testOrigin)

	// no second service without a new rising edge
	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestNMIHeldHigh(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.NMI, 0x00, 0x60)
	mem.putInstructions(testOrigin, 0xea)
	mem.putInstructions(0x6000, 0x40) // RTI

	// holding the line high produces exactly one interrupt
	mc.SetNMI(true)

	_, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, mc.PC.Address(), 0x6000)

	step(t, mc) // RTI
	step(t, mc) // NOP, not a second interrupt
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestInterruptAtInstructionBoundary(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.NMI, 0x00, 0x60)
	mem.putInstructions(testOrigin, 0xad, 0x00, 0x03) // LDA $0300
	mem.putInstructions(0x0300, 0x77)

	// assert NMI in the middle of an instruction
	_, err := mc.StepCycle()
	test.ExpectSuccess(t, err)
	_, err = mc.StepCycle()
	test.ExpectSuccess(t, err)
	mc.SetNMI(true)

	// the instruction runs to completion first
	outcome, err := mc.StepCycle()
	test.ExpectSuccess(t, err)
	test.Equate(t, outcome.Complete, false)
	outcome, err = mc.StepCycle()
	test.ExpectSuccess(t, err)
	test.Equate(t, outcome.Complete, true)
	test.Equate(t, mc.A, "77")
	test.Equate(t, mc.PC.Address(), testOrigin+3)

	// only then is the interrupt serviced
	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), 0x6000)
}

func TestInterruptPriority(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.NMI, 0x00, 0x60)
	mem.putInstructions(testOrigin, 0xea)

	// RESET wins over a pending NMI and clears the latch
	mc.SetNMI(true)
	mc.SetRESET(true)

	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), testOrigin)

	mc.SetRESET(false)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), testOrigin+1)
}

func TestBRK(t *testing.T) {
	mc, mem := startCPU(t)

	mem.putInstructions(cpubus.IRQ, 0x00, 0x50)
	mem.putInstructions(testOrigin, 0x00) // BRK
	mem.putInstructions(0x5000, 0x40)     // RTI

	step(t, mc)
	test.Equate(t, mc.LastResult.Cycles, 7)
	test.Equate(t, mc.PC.Address(), 0x5000)

	// BRK pushes the address of the byte after its padding byte, and the
	// pushed status has the break bit set
	test.Equate(t, mem.internal[0x01fd], 0x40)
	test.Equate(t, mem.internal[0x01fc], 0x02)
	test.Equate(t, mem.internal[0x01fb]&0x10, 0x10)

	step(t, mc) // RTI
	test.Equate(t, mc.PC.Address(), testOrigin+2)
}
