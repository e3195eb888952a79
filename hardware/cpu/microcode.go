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

// Purpose describes what a single cycle on the bus is for. Every cycle the
// CPU consumes has exactly one purpose.
type Purpose int

// List of cycle purposes.
const (
	// fetch of the opcode byte at the program counter
	OpcodeFetch Purpose = iota

	// fetch of an operand byte at the program counter
	OperandFetch

	// read of a byte that contributes to the effective address but is not
	// itself the operand (pointer bytes for the indirect modes)
	AddressCompute

	// read of the operand value at the effective address
	DataRead

	// write of the operand value to the effective address
	DataWrite

	// a read the processor performs but discards. the address can be wrong
	// (page crossing fixup) or simply irrelevant (implied instructions read
	// the byte after the opcode)
	DummyRead

	// the unmodified value written back to the effective address during a
	// read-modify-write instruction
	DummyWrite

	// push to or pull from the stack page
	StackPush
	StackPull

	// read of one byte of an interrupt or reset vector
	VectorFetch

	// a cycle with no externally visible bus activity
	Internal
)

func (p Purpose) String() string {
	switch p {
	case OpcodeFetch:
		return "opcode fetch"
	case OperandFetch:
		return "operand fetch"
	case AddressCompute:
		return "address compute"
	case DataRead:
		return "data read"
	case DataWrite:
		return "data write"
	case DummyRead:
		return "dummy read"
	case DummyWrite:
		return "dummy write"
	case StackPush:
		return "stack push"
	case StackPull:
		return "stack pull"
	case VectorFetch:
		return "vector fetch"
	case Internal:
		return "internal"
	}
	return "unknown cycle purpose"
}

// CycleOutcome is returned by StepCycle and describes the cycle just
// consumed. Complete is true when the cycle was the last one of an
// instruction or of an interrupt sequence.
type CycleOutcome struct {
	Purpose  Purpose
	Complete bool
}

// a microOp is one cycle of a micro-sequence. the run function performs the
// bus activity and register changes for the cycle. a run function may append
// further microOps to the sequence; this is how data dependent cycles (page
// crossing fixups, taken branches) come into existence.
type microOp struct {
	purpose Purpose
	run     func() error
}

// schedule a cycle at the end of the current sequence.
func (mc *CPU) schedule(purpose Purpose, run func() error) {
	mc.seq = append(mc.seq, microOp{purpose: purpose, run: run})
}
