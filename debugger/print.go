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

package debugger

import (
	"fmt"
	"strings"

	"github.com/samuwen/go6502/debugger/terminal"
	"github.com/samuwen/go6502/disassembly"
	"github.com/samuwen/go6502/hardware/cpu/execution"
)

func (dbg *Debugger) printCPU() {
	dbg.term.Print(terminal.StyleMachineInfo, "%s", dbg.mc.String())
}

// printLastResult reports the most recently completed instruction in
// disassembly format, with timing notes appended.
func (dbg *Debugger) printLastResult() {
	r := dbg.mc.LastResult

	if r.Defn == nil {
		// interrupt and reset sequences have no instruction definition
		dbg.term.Print(terminal.StyleCPUStep, "%04x  interrupt [%d cycles]", r.Address, r.Cycles)
		return
	}

	e := disassembly.Entry{
		Address: r.Address,
		Defn:    r.Defn,
		Operand: r.InstructionData,
	}
	for i := 0; i < r.ByteCount; i++ {
		b, err := dbg.ram.Peek(r.Address + uint16(i))
		if err != nil {
			break
		}
		e.Bytes = append(e.Bytes, b)
	}

	notes := []string{}
	if r.PageFault {
		notes = append(notes, "page fault")
	}
	if r.BranchSuccess {
		notes = append(notes, "branch taken")
	}
	if r.CPUBug != execution.NoBug {
		notes = append(notes, string(r.CPUBug))
	}

	s := strings.Builder{}
	s.WriteString(e.String())
	s.WriteString(" [")
	if !r.Final {
		s.WriteString("in flight, ")
	}
	s.WriteString(fmt.Sprintf("%d cycles", r.Cycles))
	for _, n := range notes {
		s.WriteString(", ")
		s.WriteString(n)
	}
	s.WriteString("]")

	dbg.term.Print(terminal.StyleCPUStep, "%s", s.String())
}

// printMemory shows length bytes in rows of eight, using Peek so the
// display has no side effects on the emulation.
func (dbg *Debugger) printMemory(addr uint16, length int) error {
	const rowLength = 8

	for length > 0 {
		s := strings.Builder{}
		s.WriteString(fmt.Sprintf("%04x ", addr))

		for i := 0; i < rowLength && length > 0; i++ {
			b, err := dbg.ram.Peek(addr)
			if err != nil {
				return err
			}
			s.WriteString(fmt.Sprintf(" %02x", b))
			addr++
			length--
		}

		dbg.term.Print(terminal.StyleMachineInfo, "%s", s.String())
	}

	return nil
}

// printDisasm decodes and shows count instructions starting at addr.
// The address of the next undecoded instruction is remembered so a bare
// DISASM command carries on from where the previous one stopped.
func (dbg *Debugger) printDisasm(addr uint16, count int) error {
	entries, err := disassembly.FromMemory(dbg.ram, addr, count)
	for _, e := range entries {
		dbg.term.Print(terminal.StyleCPUStep, "%s", e.String())
		dbg.disasmAddress = e.Address + uint16(len(e.Bytes))
	}
	return err
}
