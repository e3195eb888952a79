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

// Package registers implements the register file of the 6502: the 8-bit
// data registers, the 16-bit program counter, the stack pointer and the
// status register. Arithmetic helpers return carry/overflow/zero/sign
// information rather than mutating flags directly; which flags an operation
// actually affects is decided by the execution engine in the cpu package.
package registers
