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

package execution

import (
	"github.com/samuwen/go6502/hardware/cpu/instructions"
)

// Result records the state of the most recent (or still executing)
// instruction. It is built up cycle by cycle as the instruction runs; the
// Final field says whether the record is complete.
type Result struct {
	// the address the instruction began on
	Address uint16

	// a reference to the instruction definition. nil if the CPU has not yet
	// decoded an instruction
	Defn *instructions.Definition

	// the data read as part of the operand. for branch instructions this is
	// the displacement before sign extension
	InstructionData uint16

	// the number of bytes fetched from the program counter stream
	ByteCount int

	// the number of cycles consumed so far
	Cycles int

	// whether the effective address crossed a page boundary and cost an
	// extra cycle
	PageFault bool

	// whether a branch instruction was taken
	BranchSuccess bool

	// whether one of the known hardware quirks was tickled during execution
	CPUBug Bug

	// whether the instruction has run to completion. results with Final set
	// to false are snapshots of an instruction in flight
	Final bool
}

// Reset prepares the Result for a new instruction.
func (r *Result) Reset() {
	r.Address = 0
	r.Defn = nil
	r.InstructionData = 0
	r.ByteCount = 0
	r.Cycles = 0
	r.PageFault = false
	r.BranchSuccess = false
	r.CPUBug = NoBug
	r.Final = false
}
