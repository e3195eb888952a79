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

package cpu

import (
	"errors"
	"fmt"

	"github.com/samuwen/go6502/hardware/cpu/execution"
	"github.com/samuwen/go6502/hardware/cpu/instructions"
	"github.com/samuwen/go6502/hardware/cpu/registers"
	"github.com/samuwen/go6502/hardware/memory/cpubus"
	"github.com/samuwen/go6502/logger"
)

// UnimplementedInstruction is a sentinel for the error returned when an
// opcode with no definition is fetched. Test with errors.Is().
var UnimplementedInstruction = errors.New("unimplemented instruction")

// CPU implements the NMOS 6502 found in machines from the late 70s and
// early 80s. It is driven one cycle at a time with StepCycle() or one
// instruction at a time with StepInstruction(); the two are equivalent in
// every observable way.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	mem          cpubus.Memory
	instructions []*instructions.Definition

	// Cycles is the number of cycles consumed since power on
	Cycles uint64

	// LastResult records the instruction (or interrupt sequence) currently
	// executing, or the most recently completed one when the CPU is at an
	// instruction boundary
	LastResult execution.Result

	// the micro-sequence for the current instruction and the index of the
	// next cycle to consume. when cursor has reached the end of the
	// sequence the CPU is at an instruction boundary
	seq    []microOp
	cursor int

	// scratch state for the instruction in flight
	defn *instructions.Definition
	lo   uint8
	addr uint16
	val  uint8

	// interrupt lines. the NMI line is edge triggered so the latch survives
	// the line going low again; it is cleared when the interrupt is serviced
	resetLine bool
	irqLine   bool
	nmiLine   bool
	nmiLatch  bool

	// a CPU that has fetched an opcode it cannot execute is killed. it stays
	// killed until the next reset
	killed  bool
	killErr error
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// The CPU does not own the address space, it only drives it through the
// cpubus.Memory interface.
func NewCPU(mem cpubus.Memory) *CPU {
	return &CPU{
		mem:          mem,
		instructions: instructions.GetDefinitions(),
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewStackPointer(0),
		Status:       registers.NewStatusRegister(),
		seq:          make([]microOp, 0, 8),
	}
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%s A=%s X=%s Y=%s SP=%s SR=%s", mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Snapshot creates a copy of the CPU in its current state. The copy is only
// meaningful when the CPU is at an instruction boundary.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	n.seq = nil
	n.cursor = 0
	return &n
}

// AtInstructionBoundary returns true when the next cycle consumed will be
// the first cycle of an instruction or interrupt sequence.
func (mc *CPU) AtInstructionBoundary() bool {
	return mc.cursor >= len(mc.seq)
}

// Killed returns true if the CPU has fetched an opcode it cannot execute.
// A killed CPU refuses to step until the next reset.
func (mc *CPU) Killed() bool {
	return mc.killed
}

// SetRESET sets the state of the RESET line. The line is level triggered;
// while it is held the CPU restarts the reset sequence at every instruction
// boundary.
func (mc *CPU) SetRESET(state bool) {
	mc.resetLine = state
}

// SetNMI sets the state of the NMI line. The line is edge triggered; a low
// to high transition is latched and the latch holds until the interrupt is
// serviced, however long that takes.
func (mc *CPU) SetNMI(state bool) {
	if state && !mc.nmiLine {
		mc.nmiLatch = true
	}
	mc.nmiLine = state
}

// SetIRQ sets the state of the IRQ line. The line is level triggered and is
// ignored entirely while the interrupt disable flag is set.
func (mc *CPU) SetIRQ(state bool) {
	mc.irqLine = state
}

// Reset begins the reset sequence. The register file changes immediately but
// the sequence itself, ending with the load of the program counter from the
// reset vector, takes seven cycles of StepCycle() to play out.
func (mc *CPU) Reset() {
	mc.killed = false
	mc.killErr = nil
	mc.nmiLatch = false

	mc.seq = mc.seq[:0]
	mc.cursor = 0

	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0x00)
	mc.Status.Reset()
	mc.Status.Zero = mc.A.IsZero()

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})

	// the reset sequence looks like an interrupt with the stack writes
	// suppressed. the stack pointer still moves, which is how it ends up at
	// 0xfd after a reset
	for i := 0; i < 3; i++ {
		mc.schedule(Internal, func() error {
			err := mc.phantomRead(mc.SP.Address())
			mc.SP.Down()
			return err
		})
	}

	mc.schedule(VectorFetch, func() error {
		lo, err := mc.mem.Read(cpubus.Reset)
		mc.lo = lo
		return err
	})
	mc.schedule(VectorFetch, func() error {
		hi, err := mc.mem.Read(cpubus.Reset + 1)
		if err != nil {
			return err
		}
		mc.PC.Load(uint16(hi)<<8 | uint16(mc.lo))
		mc.Status.InterruptDisable = true
		return nil
	})
}

// begin prepares the next micro-sequence. Interrupt lines are only sampled
// here, at the instruction boundary; an interrupt asserted mid-instruction
// waits for the instruction to finish.
func (mc *CPU) begin() error {
	// the RESET line works even on a killed CPU
	if mc.resetLine {
		mc.Reset()
		return nil
	}

	if mc.killed {
		return mc.killErr
	}

	mc.seq = mc.seq[:0]
	mc.cursor = 0

	if mc.nmiLatch {
		mc.nmiLatch = false
		mc.serviceInterrupt(cpubus.NMI)
		return nil
	}

	if mc.irqLine && !mc.Status.InterruptDisable {
		mc.serviceInterrupt(cpubus.IRQ)
		return nil
	}

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()
	mc.schedule(OpcodeFetch, mc.opcodeFetch)
	return nil
}

// the first cycle of every instruction. decodes the opcode and schedules
// the rest of the sequence.
func (mc *CPU) opcodeFetch() error {
	opcode, err := mc.mem.Read(mc.PC.Address())
	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	if err != nil {
		return err
	}

	defn := mc.instructions[opcode]
	if defn == nil {
		mc.killed = true
		mc.killErr = fmt.Errorf("cpu: %w: opcode %#02x at %#04x", UnimplementedInstruction, opcode, mc.LastResult.Address)
		logger.Logf("cpu", "killed by opcode %#02x at %#04x", opcode, mc.LastResult.Address)
		return mc.killErr
	}

	mc.defn = defn
	mc.LastResult.Defn = defn

	return mc.scheduleInstruction()
}

// serviceInterrupt schedules the seven cycle sequence that moves control to
// an interrupt handler. The pushed status value always has the break bit
// clear; that bit is how the handler can tell a hardware interrupt from a
// BRK instruction.
func (mc *CPU) serviceInterrupt(vector uint16) {
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedulePushState(false)
	mc.scheduleVectorFetch(vector)
}

// StepCycle consumes a single cycle. The returned CycleOutcome says what
// the cycle was for and whether it completed an instruction.
//
// An error from the address space is returned to the caller but the cycle
// still counts and the CPU remains in a consistent, resumable state. An
// UnimplementedInstruction error kills the CPU; every subsequent call
// returns the same error until Reset() is called.
func (mc *CPU) StepCycle() (CycleOutcome, error) {
	if mc.cursor >= len(mc.seq) {
		if err := mc.begin(); err != nil {
			return CycleOutcome{}, err
		}
	}

	op := mc.seq[mc.cursor]
	mc.cursor++
	mc.Cycles++
	mc.LastResult.Cycles++

	// the run function may extend the sequence, so completeness is checked
	// after it has run
	err := op.run()

	outcome := CycleOutcome{
		Purpose:  op.purpose,
		Complete: mc.cursor >= len(mc.seq),
	}
	if outcome.Complete {
		mc.LastResult.Final = true
	}

	return outcome, err
}

// StepInstruction consumes cycles until the current instruction (or
// interrupt sequence) is complete, returning the number of cycles consumed.
// Calling StepInstruction is indistinguishable from calling StepCycle the
// same number of times.
func (mc *CPU) StepInstruction() (int, error) {
	start := mc.Cycles

	for {
		outcome, err := mc.StepCycle()
		if err != nil {
			return int(mc.Cycles - start), err
		}
		if outcome.Complete {
			return int(mc.Cycles - start), nil
		}
	}
}
