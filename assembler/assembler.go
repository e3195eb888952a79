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

// Package assembler is a small two pass assembler for the 6502. It supports
// the documented instruction set, labels, the three usual literal forms
// ($ hexadecimal, % binary, bare decimal) and the .org, .byte and .word
// directives. Zero page addressing is selected automatically when the
// operand is a literal that fits in one byte; label operands always
// assemble to the absolute form.
package assembler

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/samuwen/go6502/hardware/cpu/instructions"
)

// DefaultOrigin is where a program assembles to when the source has no
// .org directive.
const DefaultOrigin = uint16(0x8000)

// Program is the output of the assembler.
type Program struct {
	Origin uint16
	Image  []uint8
}

// an operand value that may be a literal or an unresolved label reference.
type value struct {
	num uint16
	sym string
}

// the shape of an operand as written, before zero page selection.
type operandShape int

const (
	shapeNone operandShape = iota
	shapeAccumulator
	shapeImmediate
	shapeAddress
	shapeIndexedX
	shapeIndexedY
	shapeIndirect
	shapeIndexedIndirect
	shapeIndirectIndexed
)

type statement struct {
	line      int
	address   uint16
	defn      *instructions.Definition
	val       value
	directive string
	args      []value
}

type assembler struct {
	index  map[string]map[instructions.AddressingMode]*instructions.Definition
	labels map[string]uint16
	stmts  []*statement
	origin uint16
}

// Assemble source text into a program image.
func Assemble(src string) (*Program, error) {
	lines, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	a := &assembler{
		index:  buildIndex(),
		labels: make(map[string]uint16),
		origin: DefaultOrigin,
	}

	if err := a.firstPass(lines); err != nil {
		return nil, err
	}
	return a.secondPass()
}

func buildIndex() map[string]map[instructions.AddressingMode]*instructions.Definition {
	index := make(map[string]map[instructions.AddressingMode]*instructions.Definition)
	for _, defn := range instructions.GetDefinitions() {
		if defn == nil {
			continue
		}
		m, ok := index[defn.Operator.String()]
		if !ok {
			m = make(map[instructions.AddressingMode]*instructions.Definition)
			index[defn.Operator.String()] = m
		}
		m[defn.AddressingMode] = defn
	}
	return index
}

// the first pass parses every line, chooses an addressing mode for every
// instruction and assigns an address to every statement and label.
func (a *assembler) firstPass(lines [][]token) error {
	pc := a.origin
	originSet := false

	for _, toks := range lines {
		line := toks[0].line

		// label definition
		if len(toks) >= 2 && toks[0].typ == tokenIdentifier && toks[1].typ == tokenColon {
			name := toks[0].text
			if _, ok := a.labels[name]; ok {
				return errors.Errorf("line %d: label %s defined twice", line, name)
			}
			a.labels[name] = pc
			toks = toks[2:]
			if len(toks) == 0 {
				continue
			}
		}

		switch toks[0].typ {
		case tokenDirective:
			stmt, err := a.parseDirective(toks)
			if err != nil {
				return err
			}
			if stmt.directive == ".org" {
				if originSet || len(a.stmts) > 0 {
					return errors.Errorf("line %d: .org must come before any code", line)
				}
				a.origin = stmt.args[0].num
				pc = a.origin
				originSet = true
				continue
			}
			stmt.address = pc
			a.stmts = append(a.stmts, stmt)
			pc += uint16(len(stmt.args))
			if stmt.directive == ".word" {
				pc += uint16(len(stmt.args))
			}

		case tokenIdentifier:
			stmt, err := a.parseInstruction(toks)
			if err != nil {
				return err
			}
			stmt.address = pc
			a.stmts = append(a.stmts, stmt)
			pc += uint16(stmt.defn.Bytes)

		default:
			return errors.Errorf("line %d: unexpected %q", line, toks[0].text)
		}
	}

	return nil
}

func (a *assembler) parseDirective(toks []token) (*statement, error) {
	line := toks[0].line
	stmt := &statement{line: line, directive: strings.ToLower(toks[0].text)}

	switch stmt.directive {
	case ".org":
		if len(toks) != 2 || toks[1].typ != tokenNumber {
			return nil, errors.Errorf("line %d: .org wants a single number", line)
		}
		stmt.args = []value{{num: toks[1].num}}

	case ".byte", ".word":
		args, err := parseValueList(toks[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(args) == 0 {
			return nil, errors.Errorf("line %d: %s wants at least one value", line, stmt.directive)
		}
		if stmt.directive == ".byte" {
			for _, v := range args {
				if v.sym != "" {
					return nil, errors.Errorf("line %d: labels are not byte sized", line)
				}
				if v.num > 0xff {
					return nil, errors.Errorf("line %d: %#04x does not fit in a byte", line, v.num)
				}
			}
		}
		stmt.args = args

	default:
		return nil, errors.Errorf("line %d: unknown directive %s", line, stmt.directive)
	}

	return stmt, nil
}

func parseValueList(toks []token) ([]value, error) {
	var args []value

	for i := 0; i < len(toks); i++ {
		v, err := parseValue(toks[i])
		if err != nil {
			return nil, err
		}
		args = append(args, v)

		if i+1 < len(toks) {
			i++
			if toks[i].typ != tokenComma {
				return nil, errors.Errorf("expected comma, got %q", toks[i].text)
			}
			if i+1 == len(toks) {
				return nil, errors.New("trailing comma")
			}
		}
	}

	return args, nil
}

func parseValue(tok token) (value, error) {
	switch tok.typ {
	case tokenNumber:
		return value{num: tok.num}, nil
	case tokenIdentifier:
		return value{sym: tok.text}, nil
	}
	return value{}, errors.Errorf("expected a number or label, got %q", tok.text)
}

func (a *assembler) parseInstruction(toks []token) (*statement, error) {
	line := toks[0].line
	mnemonic := strings.ToUpper(toks[0].text)

	modes, ok := a.index[mnemonic]
	if !ok {
		return nil, errors.Errorf("line %d: unknown instruction %s", line, mnemonic)
	}

	shape, val, err := parseOperand(toks[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", line)
	}

	// "A" as a bare operand means the accumulator, but only for the shift
	// instructions that have an accumulator form
	if shape == shapeAddress && val.sym != "" && strings.EqualFold(val.sym, "a") {
		if _, ok := modes[instructions.Accumulator]; ok {
			shape = shapeAccumulator
			val = value{}
		}
	}

	mode, err := chooseMode(modes, shape, val)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d: %s", line, mnemonic)
	}

	return &statement{line: line, defn: modes[mode], val: val}, nil
}

// parseOperand recognises the textual shape of an operand.
func parseOperand(toks []token) (operandShape, value, error) {
	match := func(types ...tokenType) bool {
		if len(toks) != len(types) {
			return false
		}
		for i, typ := range types {
			if toks[i].typ != typ {
				return false
			}
		}
		return true
	}

	isReg := func(tok token, reg string) bool {
		return tok.typ == tokenIdentifier && strings.EqualFold(tok.text, reg)
	}

	switch {
	case len(toks) == 0:
		return shapeNone, value{}, nil

	case match(tokenHash, tokenNumber), match(tokenHash, tokenIdentifier):
		v, err := parseValue(toks[1])
		return shapeImmediate, v, err

	case match(tokenLeftParen, tokenNumber, tokenComma, tokenIdentifier, tokenRightParen) && isReg(toks[3], "x"):
		v, err := parseValue(toks[1])
		return shapeIndexedIndirect, v, err

	case match(tokenLeftParen, tokenNumber, tokenRightParen, tokenComma, tokenIdentifier) && isReg(toks[4], "y"):
		v, err := parseValue(toks[1])
		return shapeIndirectIndexed, v, err

	case match(tokenLeftParen, tokenNumber, tokenRightParen), match(tokenLeftParen, tokenIdentifier, tokenRightParen):
		v, err := parseValue(toks[1])
		return shapeIndirect, v, err

	case (match(tokenNumber, tokenComma, tokenIdentifier) || match(tokenIdentifier, tokenComma, tokenIdentifier)) && isReg(toks[2], "x"):
		v, err := parseValue(toks[0])
		return shapeIndexedX, v, err

	case (match(tokenNumber, tokenComma, tokenIdentifier) || match(tokenIdentifier, tokenComma, tokenIdentifier)) && isReg(toks[2], "y"):
		v, err := parseValue(toks[0])
		return shapeIndexedY, v, err

	case match(tokenNumber), match(tokenIdentifier):
		v, err := parseValue(toks[0])
		return shapeAddress, v, err
	}

	return shapeNone, value{}, errors.Errorf("malformed operand starting at %q", toks[0].text)
}

// chooseMode maps an operand shape onto one of the instruction's addressing
// modes. Literal addresses that fit in one byte select the zero page form
// when there is one.
func chooseMode(modes map[instructions.AddressingMode]*instructions.Definition, shape operandShape, val value) (instructions.AddressingMode, error) {
	zeroPage := val.sym == "" && val.num <= 0xff

	pick := func(preferred, fallback instructions.AddressingMode) (instructions.AddressingMode, error) {
		if zeroPage {
			if _, ok := modes[preferred]; ok {
				return preferred, nil
			}
		}
		if _, ok := modes[fallback]; ok {
			return fallback, nil
		}
		return 0, errors.Errorf("addressing mode not supported")
	}

	single := func(mode instructions.AddressingMode) (instructions.AddressingMode, error) {
		if _, ok := modes[mode]; ok {
			return mode, nil
		}
		return 0, errors.Errorf("addressing mode not supported")
	}

	switch shape {
	case shapeNone:
		// a bare shift instruction means the accumulator form
		if _, ok := modes[instructions.Implied]; ok {
			return instructions.Implied, nil
		}
		return single(instructions.Accumulator)
	case shapeAccumulator:
		return single(instructions.Accumulator)
	case shapeImmediate:
		return single(instructions.Immediate)
	case shapeIndirect:
		return single(instructions.Indirect)
	case shapeIndexedIndirect:
		return single(instructions.IndexedIndirect)
	case shapeIndirectIndexed:
		return single(instructions.IndirectIndexed)
	case shapeIndexedX:
		return pick(instructions.ZeroPageIndexedX, instructions.AbsoluteIndexedX)
	case shapeIndexedY:
		return pick(instructions.ZeroPageIndexedY, instructions.AbsoluteIndexedY)
	case shapeAddress:
		if _, ok := modes[instructions.Relative]; ok {
			return instructions.Relative, nil
		}
		return pick(instructions.ZeroPage, instructions.Absolute)
	}

	return 0, errors.Errorf("addressing mode not supported")
}

// the second pass resolves labels and emits bytes.
func (a *assembler) secondPass() (*Program, error) {
	prog := &Program{Origin: a.origin}

	for _, stmt := range a.stmts {
		switch stmt.directive {
		case ".byte":
			for _, v := range stmt.args {
				prog.Image = append(prog.Image, uint8(v.num))
			}
			continue

		case ".word":
			for _, v := range stmt.args {
				n, err := a.resolve(stmt.line, v)
				if err != nil {
					return nil, err
				}
				prog.Image = append(prog.Image, uint8(n), uint8(n>>8))
			}
			continue
		}

		n, err := a.resolve(stmt.line, stmt.val)
		if err != nil {
			return nil, err
		}

		prog.Image = append(prog.Image, stmt.defn.OpCode)

		switch stmt.defn.AddressingMode {
		case instructions.Implied, instructions.Accumulator:
			// no operand

		case instructions.Relative:
			disp := int(n) - int(stmt.address) - 2
			if disp < -128 || disp > 127 {
				return nil, errors.Errorf("line %d: branch target out of range (%d bytes away)", stmt.line, disp)
			}
			prog.Image = append(prog.Image, uint8(int8(disp)))

		default:
			if stmt.defn.Bytes == 2 {
				if n > 0xff {
					return nil, errors.Errorf("line %d: %#04x does not fit in a byte", stmt.line, n)
				}
				prog.Image = append(prog.Image, uint8(n))
			} else {
				prog.Image = append(prog.Image, uint8(n), uint8(n>>8))
			}
		}
	}

	return prog, nil
}

func (a *assembler) resolve(line int, v value) (uint16, error) {
	if v.sym == "" {
		return v.num, nil
	}
	n, ok := a.labels[v.sym]
	if !ok {
		return 0, errors.Errorf("line %d: undefined label %s", line, v.sym)
	}
	return n, nil
}
