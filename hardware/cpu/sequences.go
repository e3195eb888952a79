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

package cpu

import (
	"fmt"

	"github.com/samuwen/go6502/hardware/cpu/execution"
	"github.com/samuwen/go6502/hardware/cpu/instructions"
	"github.com/samuwen/go6502/hardware/cpu/registers"
	"github.com/samuwen/go6502/hardware/memory/cpubus"
)

// scheduleInstruction builds the micro-sequence for the decoded instruction.
// The opcode fetch cycle has already happened; the cycles scheduled here are
// cycles two onwards.
func (mc *CPU) scheduleInstruction() error {
	defn := mc.defn

	switch {
	case defn.Operator == instructions.Brk:
		mc.scheduleBrk()
	case defn.Operator == instructions.Rti:
		mc.scheduleRti()
	case defn.Operator == instructions.Rts:
		mc.scheduleRts()
	case defn.Operator == instructions.Jsr:
		mc.scheduleJsr()
	case defn.Operator == instructions.Pha || defn.Operator == instructions.Php:
		mc.schedulePush()
	case defn.Operator == instructions.Pla || defn.Operator == instructions.Plp:
		mc.schedulePull()
	case defn.Operator == instructions.Jmp:
		mc.scheduleJmp()
	case defn.IsBranch():
		mc.scheduleBranch()
	default:
		switch defn.AddressingMode {
		case instructions.Implied:
			mc.scheduleImplied()
		case instructions.Accumulator:
			mc.scheduleAccumulator()
		case instructions.Immediate:
			mc.scheduleImmediate()
		case instructions.ZeroPage:
			mc.scheduleZeroPage()
		case instructions.ZeroPageIndexedX:
			mc.scheduleZeroPageIndexed(&mc.X)
		case instructions.ZeroPageIndexedY:
			mc.scheduleZeroPageIndexed(&mc.Y)
		case instructions.Absolute:
			mc.scheduleAbsolute()
		case instructions.AbsoluteIndexedX:
			mc.scheduleAbsoluteIndexed(&mc.X)
		case instructions.AbsoluteIndexedY:
			mc.scheduleAbsoluteIndexed(&mc.Y)
		case instructions.IndexedIndirect:
			mc.scheduleIndexedIndirect()
		case instructions.IndirectIndexed:
			mc.scheduleIndirectIndexed()
		default:
			return fmt.Errorf("cpu: unknown addressing mode for %s", defn.Operator)
		}
	}

	return nil
}

// fetch a byte from the program counter stream. used for operand bytes.
func (mc *CPU) fetchByte() (uint8, error) {
	v, err := mc.mem.Read(mc.PC.Address())
	mc.PC.Add(1)
	mc.LastResult.ByteCount++
	return v, err
}

// read and discard the byte at the program counter. the 6502 always reads
// something on every cycle; for implied instructions that something is the
// byte after the opcode.
func (mc *CPU) phantomRead(address uint16) error {
	_, err := mc.mem.Read(address)
	return err
}

// the final cycle of most instructions, chosen by effect category.
func (mc *CPU) scheduleAccess(effect instructions.EffectCategory) {
	switch effect {
	case instructions.Read:
		mc.schedule(DataRead, func() error {
			val, err := mc.mem.Read(mc.addr)
			if err != nil {
				return err
			}
			mc.executeOperator(val)
			return nil
		})
	case instructions.Write:
		mc.schedule(DataWrite, func() error {
			return mc.mem.Write(mc.addr, mc.storeValue())
		})
	case instructions.RMW:
		mc.schedule(DataRead, func() error {
			var err error
			mc.val, err = mc.mem.Read(mc.addr)
			return err
		})
		mc.schedule(DummyWrite, func() error {
			// the unmodified value goes back to memory while the ALU works
			err := mc.mem.Write(mc.addr, mc.val)
			mc.val = mc.modify(mc.val)
			return err
		})
		mc.schedule(DataWrite, func() error {
			return mc.mem.Write(mc.addr, mc.val)
		})
	}
}

func (mc *CPU) scheduleImplied() {
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.PC.Address())
		mc.executeOperator(0)
		return err
	})
}

func (mc *CPU) scheduleAccumulator() {
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.PC.Address())
		mc.A.Load(mc.modify(mc.A.Value()))
		return err
	})
}

func (mc *CPU) scheduleImmediate() {
	mc.schedule(OperandFetch, func() error {
		val, err := mc.fetchByte()
		mc.LastResult.InstructionData = uint16(val)
		if err != nil {
			return err
		}
		mc.executeOperator(val)
		return nil
	})
}

func (mc *CPU) scheduleZeroPage() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.addr = uint16(lo)
		mc.LastResult.InstructionData = mc.addr
		return err
	})
	mc.scheduleAccess(mc.defn.Effect)
}

func (mc *CPU) scheduleZeroPageIndexed(idx *registers.Register) {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		mc.LastResult.InstructionData = uint16(lo)
		return err
	})
	mc.schedule(DummyRead, func() error {
		// the unindexed address is read and discarded while the index is
		// added. the sum stays in the zero page
		err := mc.phantomRead(uint16(mc.lo))
		if uint16(mc.lo)+idx.Address() > 0x00ff {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}
		mc.addr = uint16(mc.lo+idx.Value()) & 0x00ff
		return err
	})
	mc.scheduleAccess(mc.defn.Effect)
}

func (mc *CPU) scheduleAbsolute() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		return err
	})
	mc.schedule(OperandFetch, func() error {
		hi, err := mc.fetchByte()
		mc.addr = uint16(hi)<<8 | uint16(mc.lo)
		mc.LastResult.InstructionData = mc.addr
		return err
	})
	mc.scheduleAccess(mc.defn.Effect)
}

func (mc *CPU) scheduleAbsoluteIndexed(idx *registers.Register) {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		return err
	})
	mc.schedule(OperandFetch, func() error {
		hi, err := mc.fetchByte()
		base := uint16(hi)<<8 | uint16(mc.lo)
		mc.LastResult.InstructionData = base
		mc.addr = base + idx.Address()
		mc.scheduleIndexedAccess(base)
		return err
	})
}

// scheduleIndexedAccess schedules the remaining cycles of an indexed
// instruction once the effective address is known. Read instructions only
// pay the address fixup cycle when the index carries into the high byte;
// write and RMW instructions always pay it.
func (mc *CPU) scheduleIndexedAccess(base uint16) {
	crossed := mc.addr&0xff00 != base&0xff00
	unfixed := base&0xff00 | mc.addr&0x00ff

	if mc.defn.Effect == instructions.Read {
		if crossed {
			mc.LastResult.PageFault = true
			mc.schedule(DummyRead, func() error {
				return mc.phantomRead(unfixed)
			})
		}
	} else {
		mc.schedule(DummyRead, func() error {
			return mc.phantomRead(unfixed)
		})
	}

	mc.scheduleAccess(mc.defn.Effect)
}

func (mc *CPU) scheduleIndexedIndirect() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		mc.LastResult.InstructionData = uint16(lo)
		return err
	})
	mc.schedule(DummyRead, func() error {
		// the unindexed pointer is read and discarded while X is added
		err := mc.phantomRead(uint16(mc.lo))
		if uint16(mc.lo)+mc.X.Address() > 0x00ff {
			mc.LastResult.CPUBug = execution.IndexedIndirectAddressingBug
		}
		mc.lo += mc.X.Value()
		return err
	})
	mc.schedule(AddressCompute, func() error {
		lo, err := mc.mem.Read(uint16(mc.lo))
		mc.addr = uint16(lo)
		return err
	})
	mc.schedule(AddressCompute, func() error {
		// the second pointer byte comes from the zero page as well, even
		// when the pointer started at 0xff
		hi, err := mc.mem.Read(uint16(mc.lo + 1))
		mc.addr |= uint16(hi) << 8
		return err
	})
	mc.scheduleAccess(mc.defn.Effect)
}

func (mc *CPU) scheduleIndirectIndexed() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		mc.LastResult.InstructionData = uint16(lo)
		return err
	})
	mc.schedule(AddressCompute, func() error {
		lo, err := mc.mem.Read(uint16(mc.lo))
		mc.addr = uint16(lo)
		return err
	})
	mc.schedule(AddressCompute, func() error {
		hi, err := mc.mem.Read(uint16(mc.lo + 1))
		base := uint16(hi)<<8 | mc.addr
		mc.addr = base + mc.Y.Address()
		mc.scheduleIndexedAccess(base)
		return err
	})
}

func (mc *CPU) scheduleJmp() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		return err
	})

	if mc.defn.AddressingMode == instructions.Absolute {
		mc.schedule(OperandFetch, func() error {
			hi, err := mc.fetchByte()
			mc.addr = uint16(hi)<<8 | uint16(mc.lo)
			mc.LastResult.InstructionData = mc.addr
			if err != nil {
				return err
			}
			mc.PC.Load(mc.addr)
			return nil
		})
		return
	}

	// indirect JMP
	mc.schedule(OperandFetch, func() error {
		hi, err := mc.fetchByte()
		mc.addr = uint16(hi)<<8 | uint16(mc.lo)
		mc.LastResult.InstructionData = mc.addr
		return err
	})
	mc.schedule(AddressCompute, func() error {
		lo, err := mc.mem.Read(mc.addr)
		mc.lo = lo
		return err
	})
	mc.schedule(AddressCompute, func() error {
		// the pointer high byte is read from the same page as the low byte.
		// a pointer at the end of a page wraps rather than carrying into the
		// next page
		if mc.addr&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}
		hi, err := mc.mem.Read(mc.addr&0xff00 | (mc.addr+1)&0x00ff)
		if err != nil {
			return err
		}
		mc.PC.Load(uint16(hi)<<8 | uint16(mc.lo))
		return nil
	})
}

func (mc *CPU) scheduleBranch() {
	mc.schedule(OperandFetch, func() error {
		disp, err := mc.fetchByte()
		mc.LastResult.InstructionData = uint16(disp)
		if err != nil {
			return err
		}
		if !mc.branchCondition() {
			return nil
		}
		mc.LastResult.BranchSuccess = true

		mc.schedule(Internal, func() error {
			// the next opcode is read and discarded while the displacement
			// is added to the low byte of the program counter
			err := mc.phantomRead(mc.PC.Address())
			oldPC := mc.PC.Address()
			newPC := oldPC + uint16(int8(disp))
			if oldPC&0xff00 == newPC&0xff00 {
				mc.PC.Load(newPC)
				return err
			}

			// the high byte has not been fixed up yet
			mc.LastResult.PageFault = true
			mc.PC.Load(oldPC&0xff00 | newPC&0x00ff)
			mc.schedule(Internal, func() error {
				err := mc.phantomRead(mc.PC.Address())
				mc.PC.Load(newPC)
				return err
			})
			return err
		})
		return nil
	})
}

func (mc *CPU) scheduleJsr() {
	mc.schedule(OperandFetch, func() error {
		lo, err := mc.fetchByte()
		mc.lo = lo
		return err
	})
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.SP.Address())
	})
	mc.schedule(StackPush, func() error {
		err := mc.mem.Write(mc.SP.Address(), uint8(mc.PC.Address()>>8))
		mc.SP.Down()
		return err
	})
	mc.schedule(StackPush, func() error {
		err := mc.mem.Write(mc.SP.Address(), uint8(mc.PC.Address()))
		mc.SP.Down()
		return err
	})
	mc.schedule(OperandFetch, func() error {
		hi, err := mc.mem.Read(mc.PC.Address())
		mc.LastResult.ByteCount++
		mc.addr = uint16(hi)<<8 | uint16(mc.lo)
		mc.LastResult.InstructionData = mc.addr
		if err != nil {
			return err
		}
		mc.PC.Load(mc.addr)
		return nil
	})
}

func (mc *CPU) scheduleRts() {
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.SP.Address())
		mc.SP.Up()
		return err
	})
	mc.schedule(StackPull, func() error {
		lo, err := mc.mem.Read(mc.SP.Address())
		mc.lo = lo
		mc.SP.Up()
		return err
	})
	mc.schedule(StackPull, func() error {
		hi, err := mc.mem.Read(mc.SP.Address())
		mc.PC.Load(uint16(hi)<<8 | uint16(mc.lo))
		return err
	})
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.PC.Address())
		mc.PC.Add(1)
		return err
	})
}

func (mc *CPU) scheduleRti() {
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.SP.Address())
		mc.SP.Up()
		return err
	})
	mc.schedule(StackPull, func() error {
		v, err := mc.mem.Read(mc.SP.Address())
		mc.SP.Up()
		if err != nil {
			return err
		}
		mc.Status.FromValue(v)
		return nil
	})
	mc.schedule(StackPull, func() error {
		lo, err := mc.mem.Read(mc.SP.Address())
		mc.lo = lo
		mc.SP.Up()
		return err
	})
	mc.schedule(StackPull, func() error {
		hi, err := mc.mem.Read(mc.SP.Address())
		mc.PC.Load(uint16(hi)<<8 | uint16(mc.lo))
		return err
	})
}

func (mc *CPU) scheduleBrk() {
	mc.schedule(OperandFetch, func() error {
		// the byte after a BRK is read and thrown away. the program counter
		// moves past it, making BRK a two byte instruction in practice
		err := mc.phantomRead(mc.PC.Address())
		mc.PC.Add(1)
		return err
	})
	mc.schedulePushState(true)
	mc.scheduleVectorFetch(cpubus.IRQ)
}

func (mc *CPU) schedulePush() {
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(StackPush, func() error {
		err := mc.mem.Write(mc.SP.Address(), mc.storeValue())
		mc.SP.Down()
		return err
	})
}

func (mc *CPU) schedulePull() {
	mc.schedule(Internal, func() error {
		return mc.phantomRead(mc.PC.Address())
	})
	mc.schedule(Internal, func() error {
		err := mc.phantomRead(mc.SP.Address())
		mc.SP.Up()
		return err
	})
	mc.schedule(StackPull, func() error {
		v, err := mc.mem.Read(mc.SP.Address())
		if err != nil {
			return err
		}
		mc.executeOperator(v)
		return nil
	})
}

// schedulePushState pushes the program counter and the status register, in
// that order. The brk argument controls the state of the break bit in the
// pushed status value.
func (mc *CPU) schedulePushState(brk bool) {
	mc.schedule(StackPush, func() error {
		err := mc.mem.Write(mc.SP.Address(), uint8(mc.PC.Address()>>8))
		mc.SP.Down()
		return err
	})
	mc.schedule(StackPush, func() error {
		err := mc.mem.Write(mc.SP.Address(), uint8(mc.PC.Address()))
		mc.SP.Down()
		return err
	})
	mc.schedule(StackPush, func() error {
		v := mc.Status.Value()
		if brk {
			v |= 0x10
		} else {
			v &^= 0x10
		}
		err := mc.mem.Write(mc.SP.Address(), v)
		mc.SP.Down()
		mc.Status.InterruptDisable = true
		return err
	})
}

// scheduleVectorFetch loads the program counter from a two byte vector.
func (mc *CPU) scheduleVectorFetch(vector uint16) {
	mc.schedule(VectorFetch, func() error {
		lo, err := mc.mem.Read(vector)
		mc.lo = lo
		return err
	})
	mc.schedule(VectorFetch, func() error {
		hi, err := mc.mem.Read(vector + 1)
		if err != nil {
			return err
		}
		mc.PC.Load(uint16(hi)<<8 | uint16(mc.lo))
		return nil
	})
}
