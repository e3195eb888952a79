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

package cpubus

import "errors"

// Memory defines the operations required of an address space when accessed
// from the CPU. The host owns the address space; the CPU holds only this
// interface and issues every read and write in the exact order and on the
// exact cycle the real hardware would. Either function may have observable
// side effects (memory mapped registers, for example).
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// AddressError is a sentinel for errors returned by Memory implementations
// that want to signal an invalid access. Hosts should wrap AddressError so
// that the CPU (and the CPU's caller) can identify the condition with
// errors.Is().
var AddressError = errors.New("address error")

// The interrupt and reset vectors. Each vector is two bytes, little-endian,
// in the top page of the address space.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)

// StackOrigin is the base address of the fixed stack page. The 8-bit stack
// pointer is always interpreted as an offset into this page.
const StackOrigin = uint16(0x0100)
