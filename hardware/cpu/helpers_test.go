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

package cpu_test

import (
	"fmt"
	"testing"

	"github.com/samuwen/go6502/hardware/cpu"
	"github.com/samuwen/go6502/hardware/memory/cpubus"
	"github.com/samuwen/go6502/test"
)

// the address the reset vector points at in all of these tests
var testOrigin = uint16(0x4000)

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	return &mockMem{internal: make([]uint8, 0x10000)}
}

// putInstructions copies bytes into the address space, returning the address
// of the first byte after the new data.
func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	mem.internal[address] = data
	return nil
}

// faultyMem returns an address error for every access at or above 0x9000.
type faultyMem struct {
	*mockMem
}

func (mem *faultyMem) Read(address uint16) (uint8, error) {
	if address >= 0x9000 {
		return 0, fmt.Errorf("%w: read of %#04x", cpubus.AddressError, address)
	}
	return mem.mockMem.Read(address)
}

// recordingMem keeps a log of every write, in order.
type recordingMem struct {
	*mockMem
	log []struct {
		address uint16
		data    uint8
	}
}

func (mem *recordingMem) Write(address uint16, data uint8) error {
	mem.log = append(mem.log, struct {
		address uint16
		data    uint8
	}{address, data})
	return mem.mockMem.Write(address, data)
}

// startCPU attaches a new CPU to a fresh address space and runs the reset
// sequence, leaving the CPU ready to fetch its first instruction from
// testOrigin.
func startCPU(t *testing.T) (*cpu.CPU, *mockMem) {
	t.Helper()

	mem := newMockMem()
	mem.putInstructions(cpubus.Reset, uint8(testOrigin), uint8(testOrigin>>8))

	mc := cpu.NewCPU(mem)
	mc.Reset()

	cycles, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.Equate(t, cycles, 7)
	test.Equate(t, mc.PC.Address(), testOrigin)

	return mc, mem
}

// step a single instruction, checking the execution result for consistency
// with the instruction definition.
func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()

	_, err := mc.StepInstruction()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, mc.LastResult.IsValid())
}
