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

// Package instructions defines the documented instruction set of the NMOS
// 6502. The instruction definitions themselves do not define the behaviour
// of the instruction, that is the responsibility of the cpu package, but
// they do describe the static properties: addressing mode, instruction
// length, base cycle count, page sensitivity and the broad category of
// effect the instruction has.
//
// The table returned by GetDefinitions() is indexed by opcode. Nil entries
// are undocumented opcodes.
package instructions
