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
	"github.com/samuwen/go6502/hardware/cpu/instructions"
	"github.com/samuwen/go6502/hardware/cpu/registers"
)

// set the sign and zero flags from the result of an operation.
func (mc *CPU) setNZ(r registers.Register) {
	mc.Status.Sign = r.IsNegative()
	mc.Status.Zero = r.IsZero()
}

// executeOperator applies the operator of the current instruction. For read
// instructions val is the operand; for implied instructions it is unused.
func (mc *CPU) executeOperator(val uint8) {
	switch mc.defn.Operator {
	case instructions.Lda:
		mc.A.Load(val)
		mc.setNZ(mc.A)
	case instructions.Ldx:
		mc.X.Load(val)
		mc.setNZ(mc.X)
	case instructions.Ldy:
		mc.Y.Load(val)
		mc.setNZ(mc.Y)

	case instructions.Adc:
		if mc.Status.DecimalMode {
			var sign bool
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, sign = mc.A.AddDecimal(val, mc.Status.Carry)
			mc.Status.Sign = sign
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Add(val, mc.Status.Carry)
			mc.setNZ(mc.A)
		}
	case instructions.Sbc:
		if mc.Status.DecimalMode {
			var sign bool
			mc.Status.Carry, mc.Status.Zero, mc.Status.Overflow, sign = mc.A.SubtractDecimal(val, mc.Status.Carry)
			mc.Status.Sign = sign
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(val, mc.Status.Carry)
			mc.setNZ(mc.A)
		}

	case instructions.And:
		mc.A.AND(val)
		mc.setNZ(mc.A)
	case instructions.Eor:
		mc.A.EOR(val)
		mc.setNZ(mc.A)
	case instructions.Ora:
		mc.A.ORA(val)
		mc.setNZ(mc.A)

	case instructions.Bit:
		r := registers.NewRegister(val, "bit")
		mc.Status.Sign = r.IsNegative()
		mc.Status.Overflow = r.IsBitV()
		mc.Status.Zero = mc.A.Value()&val == 0x00

	case instructions.Cmp:
		mc.compare(mc.A, val)
	case instructions.Cpx:
		mc.compare(mc.X, val)
	case instructions.Cpy:
		mc.compare(mc.Y, val)

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.setNZ(mc.X)
	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.setNZ(mc.Y)
	case instructions.Dex:
		mc.X.Subtract(1, true)
		mc.setNZ(mc.X)
	case instructions.Dey:
		mc.Y.Subtract(1, true)
		mc.setNZ(mc.Y)

	case instructions.Clc:
		mc.Status.Carry = false
	case instructions.Sec:
		mc.Status.Carry = true
	case instructions.Cli:
		mc.Status.InterruptDisable = false
	case instructions.Sei:
		mc.Status.InterruptDisable = true
	case instructions.Clv:
		mc.Status.Overflow = false
	case instructions.Cld:
		mc.Status.DecimalMode = false
	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.X)
	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.setNZ(mc.Y)
	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.setNZ(mc.A)
	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.setNZ(mc.A)
	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.setNZ(mc.X)
	case instructions.Txs:
		// TXS is the only transfer that does not affect the flags
		mc.SP.Load(mc.X.Value())

	case instructions.Pla:
		mc.A.Load(val)
		mc.setNZ(mc.A)
	case instructions.Plp:
		mc.Status.FromValue(val)

	case instructions.Nop:
	}
}

// compare subtracts val from a copy of the register, setting the carry, sign
// and zero flags without changing the register itself.
func (mc *CPU) compare(reg registers.Register, val uint8) {
	r := registers.NewRegister(reg.Value(), "cmp")
	mc.Status.Carry, _ = r.Subtract(val, true)
	mc.setNZ(r)
}

// storeValue returns the value written by a write instruction.
func (mc *CPU) storeValue() uint8 {
	switch mc.defn.Operator {
	case instructions.Sta, instructions.Pha:
		return mc.A.Value()
	case instructions.Stx:
		return mc.X.Value()
	case instructions.Sty:
		return mc.Y.Value()
	case instructions.Php:
		// the break bit is always set in the value pushed by PHP
		return mc.Status.Value() | 0x10
	}
	return 0
}

// modify applies the operator of a read-modify-write instruction, setting
// flags, and returns the new value.
func (mc *CPU) modify(val uint8) uint8 {
	r := registers.NewRegister(val, "rmw")

	switch mc.defn.Operator {
	case instructions.Asl:
		mc.Status.Carry = r.ASL()
	case instructions.Lsr:
		mc.Status.Carry = r.LSR()
	case instructions.Rol:
		mc.Status.Carry = r.ROL(mc.Status.Carry)
	case instructions.Ror:
		mc.Status.Carry = r.ROR(mc.Status.Carry)
	case instructions.Inc:
		r.Add(1, false)
	case instructions.Dec:
		r.Subtract(1, true)
	}

	mc.setNZ(r)
	return r.Value()
}

// branchCondition evaluates the condition of the current branch instruction.
func (mc *CPU) branchCondition() bool {
	switch mc.defn.Operator {
	case instructions.Bcc:
		return !mc.Status.Carry
	case instructions.Bcs:
		return mc.Status.Carry
	case instructions.Bne:
		return !mc.Status.Zero
	case instructions.Beq:
		return mc.Status.Zero
	case instructions.Bpl:
		return !mc.Status.Sign
	case instructions.Bmi:
		return mc.Status.Sign
	case instructions.Bvc:
		return !mc.Status.Overflow
	case instructions.Bvs:
		return mc.Status.Overflow
	}
	return false
}
