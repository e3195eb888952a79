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

// Package disassembly decodes 6502 machine code back into assembly
// language. It decodes statically, without executing anything, so entries
// for data bytes mixed into the code will be nonsense; the caller decides
// what is worth decoding.
package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/samuwen/go6502/hardware/cpu/instructions"
	"github.com/samuwen/go6502/hardware/memory/cpubus"
)

// Entry is one decoded instruction.
type Entry struct {
	Address uint16
	Bytes   []uint8

	// nil if the byte at Address is not a documented opcode
	Defn *instructions.Definition

	// the operand, assembled from the operand bytes
	Operand uint16
}

// String returns the entry in the standard listing format: the address, the
// raw bytes and the instruction with its operand.
func (e Entry) String() string {
	s := strings.Builder{}

	s.WriteString(fmt.Sprintf("%04x  ", e.Address))

	for _, b := range e.Bytes {
		s.WriteString(fmt.Sprintf("%02x ", b))
	}
	for i := len(e.Bytes); i < 3; i++ {
		s.WriteString("   ")
	}
	s.WriteString(" ")

	if e.Defn == nil {
		s.WriteString(fmt.Sprintf(".byte $%02x", e.Bytes[0]))
		return s.String()
	}

	s.WriteString(e.Defn.Operator.String())

	operand := e.operandString()
	if operand != "" {
		s.WriteString(" ")
		s.WriteString(operand)
	}

	return s.String()
}

func (e Entry) operandString() string {
	switch e.Defn.AddressingMode {
	case instructions.Implied:
		return ""
	case instructions.Accumulator:
		return "A"
	case instructions.Immediate:
		return fmt.Sprintf("#$%02x", e.Operand)
	case instructions.Relative:
		// branch targets read better as absolute addresses
		target := e.Address + uint16(e.Defn.Bytes) + uint16(int8(e.Operand))
		return fmt.Sprintf("$%04x", target)
	case instructions.Absolute:
		return fmt.Sprintf("$%04x", e.Operand)
	case instructions.ZeroPage:
		return fmt.Sprintf("$%02x", e.Operand)
	case instructions.Indirect:
		return fmt.Sprintf("($%04x)", e.Operand)
	case instructions.IndexedIndirect:
		return fmt.Sprintf("($%02x,X)", e.Operand)
	case instructions.IndirectIndexed:
		return fmt.Sprintf("($%02x),Y", e.Operand)
	case instructions.AbsoluteIndexedX:
		return fmt.Sprintf("$%04x,X", e.Operand)
	case instructions.AbsoluteIndexedY:
		return fmt.Sprintf("$%04x,Y", e.Operand)
	case instructions.ZeroPageIndexedX:
		return fmt.Sprintf("$%02x,X", e.Operand)
	case instructions.ZeroPageIndexedY:
		return fmt.Sprintf("$%02x,Y", e.Operand)
	}
	return ""
}

// FromMemory decodes count instructions starting at origin. Undocumented
// opcodes decode as single byte entries with a nil Defn; decoding carries on
// with the next byte.
func FromMemory(mem cpubus.Memory, origin uint16, count int) ([]Entry, error) {
	defs := instructions.GetDefinitions()
	entries := make([]Entry, 0, count)

	address := origin
	for i := 0; i < count; i++ {
		opcode, err := mem.Read(address)
		if err != nil {
			return entries, err
		}

		e := Entry{
			Address: address,
			Bytes:   []uint8{opcode},
			Defn:    defs[opcode],
		}

		if e.Defn != nil {
			for j := 1; j < e.Defn.Bytes; j++ {
				b, err := mem.Read(address + uint16(j))
				if err != nil {
					return entries, err
				}
				e.Bytes = append(e.Bytes, b)
				e.Operand |= uint16(b) << (8 * (j - 1))
			}
		}

		entries = append(entries, e)
		address += uint16(len(e.Bytes))
	}

	return entries, nil
}

// FromImage decodes a byte image as though it were located at origin. The
// whole image is decoded.
func FromImage(image []uint8, origin uint16) []Entry {
	defs := instructions.GetDefinitions()
	entries := make([]Entry, 0, len(image)/2)

	i := 0
	for i < len(image) {
		opcode := image[i]

		e := Entry{
			Address: origin + uint16(i),
			Bytes:   []uint8{opcode},
			Defn:    defs[opcode],
		}

		if e.Defn != nil {
			for j := 1; j < e.Defn.Bytes && i+j < len(image); j++ {
				b := image[i+j]
				e.Bytes = append(e.Bytes, b)
				e.Operand |= uint16(b) << (8 * (j - 1))
			}
		}

		entries = append(entries, e)
		i += len(e.Bytes)
	}

	return entries
}

// Write sends the disassembly of a byte image to output, one entry per line.
func Write(output io.Writer, image []uint8, origin uint16) {
	for _, e := range FromImage(image, origin) {
		fmt.Fprintln(output, e.String())
	}
}
