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

// Package debugger implements an interactive console for the emulated
// machine. Commands step the CPU by the instruction or by the cycle,
// inspect and poke memory, disassemble, and drive the interrupt lines.
//
// The debugger is terminal agnostic. Anything implementing the
// terminal.Terminal interface can host a session, including the plain
// terminal used by the debugger's own tests.
package debugger

import (
	"errors"
	"fmt"
	"io"

	"github.com/samuwen/go6502/debugger/terminal"
	"github.com/samuwen/go6502/hardware/cpu"
	"github.com/samuwen/go6502/hardware/memory"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	mc   *cpu.CPU
	ram  *memory.RAM
	term terminal.Terminal

	running bool

	// address of the next DISASM command if no argument is given
	disasmAddress uint16
}

// NewDebugger is the preferred method of initialisation for the
// Debugger type. The supplied RAM should already contain the program
// and a valid reset vector.
func NewDebugger(ram *memory.RAM) *Debugger {
	return &Debugger{
		mc:  cpu.NewCPU(ram),
		ram: ram,
	}
}

// Start the main debugger loop. Returns when the user quits the session
// or when the terminal input is exhausted.
func (dbg *Debugger) Start(term terminal.Terminal) error {
	dbg.term = term

	if err := dbg.term.Initialise(); err != nil {
		return err
	}
	defer dbg.term.CleanUp()

	if err := dbg.reset(); err != nil {
		return err
	}

	dbg.running = true
	for dbg.running {
		prompt := fmt.Sprintf("[$%04x] > ", dbg.mc.PC.Address())

		input, err := dbg.term.UserRead(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := dbg.parseCommand(input); err != nil {
			dbg.term.Print(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

// reset drives the RESET sequence to completion and reports the
// machine's starting state.
func (dbg *Debugger) reset() error {
	dbg.mc.Reset()
	if _, err := dbg.mc.StepInstruction(); err != nil {
		return err
	}

	dbg.disasmAddress = dbg.mc.PC.Address()
	dbg.printCPU()

	return nil
}

// step the CPU by one instruction, or by one cycle if byCycle is true.
func (dbg *Debugger) step(byCycle bool) error {
	if byCycle {
		outcome, err := dbg.mc.StepCycle()
		if err != nil {
			return err
		}

		dbg.term.Print(terminal.StyleCPUStep, "cycle %d: %s", dbg.mc.LastResult.Cycles, outcome.Purpose)
		if outcome.Complete {
			dbg.printLastResult()
			dbg.printCPU()
		}

		return nil
	}

	if _, err := dbg.mc.StepInstruction(); err != nil {
		return err
	}

	dbg.printLastResult()
	dbg.printCPU()

	return nil
}

// run the CPU for up to max instructions. Stops early when the CPU is
// killed or on a bus fault.
func (dbg *Debugger) run(max int) error {
	for i := 0; i < max; i++ {
		if _, err := dbg.mc.StepInstruction(); err != nil {
			dbg.printCPU()
			return err
		}
	}

	dbg.term.Print(terminal.StyleFeedback, "%d instructions", max)
	dbg.printCPU()

	return nil
}
