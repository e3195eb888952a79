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

// Package memory provides a host-side implementation of the 64KB address
// space. The CPU itself never owns memory; it talks to the cpubus.Memory
// interface. The RAM type in this package is the simplest possible host: a
// flat byte array with no mapped registers and no mirrored areas.
package memory

import (
	"fmt"

	"github.com/samuwen/go6502/hardware/memory/cpubus"
)

// RAM is a flat 64KB byte-addressable memory. It implements cpubus.Memory.
type RAM struct {
	internal []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM() *RAM {
	return &RAM{
		internal: make([]uint8, 0x10000),
	}
}

// Snapshot creates a copy of RAM in its current state.
func (ram *RAM) Snapshot() *RAM {
	n := *ram
	n.internal = make([]uint8, len(ram.internal))
	copy(n.internal, ram.internal)
	return &n
}

// Clear sets every byte to zero.
func (ram *RAM) Clear() {
	for i := range ram.internal {
		ram.internal[i] = 0
	}
}

// Read implements cpubus.Memory.
func (ram *RAM) Read(address uint16) (uint8, error) {
	return ram.internal[address], nil
}

// Write implements cpubus.Memory.
func (ram *RAM) Write(address uint16, data uint8) error {
	ram.internal[address] = data
	return nil
}

// Peek is the non-destructive equivalent of Read, for use by the debugger
// and other introspection tools. For plain RAM it is the same as Read but
// hosts with mapped registers should treat the two differently.
func (ram *RAM) Peek(address uint16) (uint8, error) {
	return ram.internal[address], nil
}

// Poke writes a byte without going through the bus. Used by the debugger.
func (ram *RAM) Poke(address uint16, data uint8) error {
	ram.internal[address] = data
	return nil
}

// Load copies a program image into memory at the given origin. The image
// must fit inside the address space; the core imposes no file format of its
// own so the image is just bytes.
func (ram *RAM) Load(origin uint16, image []uint8) error {
	if int(origin)+len(image) > len(ram.internal) {
		return fmt.Errorf("ram: image of %d bytes does not fit at origin %#04x", len(image), origin)
	}
	copy(ram.internal[origin:], image)
	return nil
}

// SetResetVector points the reset vector at the given address. A
// convenience for hosts that load a program image and want execution to
// begin there after reset.
func (ram *RAM) SetResetVector(address uint16) {
	ram.internal[cpubus.Reset] = uint8(address)
	ram.internal[cpubus.Reset+1] = uint8(address >> 8)
}
