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

// Package execution records the result of instruction execution. The Result
// type is exposed by the cpu package after every cycle and allows onlookers
// (the disassembler, the debugger, the tests) to inspect what the CPU just
// did without disturbing it.
//
// The Result.IsValid() function can be used to check whether a completed
// result is consistent with its instruction definition. The CPU does not
// call this function itself because it would introduce an unwanted
// performance penalty, but the tests lean on it heavily.
package execution
