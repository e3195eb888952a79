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

// Package cpu implements a cycle accurate NMOS 6502. Every instruction is
// expressed as a micro-sequence of bus cycles and the CPU can be stepped
// one cycle at a time, pausing between any two cycles of an instruction.
// Quirks of the real silicon are reproduced faithfully: the indirect JMP
// page wrap, the zero page index wraps, the dummy reads and writes, and
// the double write of read-modify-write instructions.
//
// The CPU does not own its address space. The host passes an implementation
// of the cpubus.Memory interface to NewCPU() and the CPU drives it in the
// exact order, and on the exact cycle, the real hardware would. There is no
// clock either; the host calls StepCycle() or StepInstruction() at whatever
// rate it likes.
//
// Interrupts are asserted with SetRESET(), SetNMI() and SetIRQ() and are
// serviced at the next instruction boundary. RESET takes priority over NMI,
// and NMI over IRQ. The NMI line is edge triggered and latched; the other
// two are level triggered.
package cpu
