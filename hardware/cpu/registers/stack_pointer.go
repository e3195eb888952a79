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

package registers

// StackPointer is an 8-bit offset into the fixed stack page. It behaves like
// a plain Register except that its Address() is always inside the stack
// page. Incrementing past 0xff or decrementing past 0x00 wraps within the
// page; this is architected behaviour, not an error.
type StackPointer struct {
	Register
}

// NewStackPointer creates a StackPointer with an initial value.
func NewStackPointer(val uint8) StackPointer {
	return StackPointer{Register: NewRegister(val, "SP")}
}

// Address returns the full 16-bit address the stack pointer refers to.
func (sp StackPointer) Address() uint16 {
	return 0x0100 | uint16(sp.value)
}

// Up increments the stack pointer, wrapping within the stack page.
func (sp *StackPointer) Up() {
	sp.value++
}

// Down decrements the stack pointer, wrapping within the stack page.
func (sp *StackPointer) Down() {
	sp.value--
}
