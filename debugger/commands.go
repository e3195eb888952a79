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

package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samuwen/go6502/debugger/terminal"
	"github.com/samuwen/go6502/logger"
)

var helpText = []string{
	"STEP [CYCLE]    step one instruction, or one cycle",
	"RUN [n]         run n instructions (default 100)",
	"REGS            show the register file",
	"MEM addr [n]    show n bytes of memory (default 16)",
	"POKE addr val   write a value directly to memory",
	"DISASM [addr]   disassemble from addr, or from where it left off",
	"LAST            show the last completed instruction",
	"RESET           pulse the RESET line",
	"IRQ ON|OFF      set the IRQ line",
	"NMI             pulse the NMI line",
	"LOG             show the emulator log",
	"QUIT            leave the debugger",
}

// parseCommand tokenises one line of user input and dispatches it.
// An empty line is not an error, it does nothing.
func (dbg *Debugger) parseCommand(input string) error {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil
	}

	command := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch command {
	case "HELP", "H", "?":
		for _, s := range helpText {
			dbg.term.Print(terminal.StyleHelp, "%s", s)
		}

	case "QUIT", "Q", "EXIT":
		dbg.running = false

	case "STEP", "S":
		byCycle := false
		if len(args) > 0 {
			if arg := strings.ToUpper(args[0]); arg != "CYCLE" && arg != "C" {
				return fmt.Errorf("STEP takes CYCLE or nothing, not %q", args[0])
			}
			byCycle = true
		}
		return dbg.step(byCycle)

	case "RUN", "R":
		max := 100
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("RUN takes a positive instruction count, not %q", args[0])
			}
			max = n
		}
		return dbg.run(max)

	case "REGS":
		dbg.printCPU()

	case "MEM", "M":
		if len(args) < 1 {
			return fmt.Errorf("MEM needs an address")
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		length := 16
		if len(args) > 1 {
			n, cerr := strconv.Atoi(args[1])
			if cerr != nil || n < 1 {
				return fmt.Errorf("MEM takes a positive byte count, not %q", args[1])
			}
			length = n
		}
		return dbg.printMemory(addr, length)

	case "POKE":
		if len(args) < 2 {
			return fmt.Errorf("POKE needs an address and a value")
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		val, err := parseValue(args[1])
		if err != nil {
			return err
		}
		if err := dbg.ram.Poke(addr, val); err != nil {
			return err
		}
		dbg.term.Print(terminal.StyleFeedback, "$%04x <- $%02x", addr, val)

	case "DISASM", "D":
		addr := dbg.disasmAddress
		if len(args) > 0 {
			a, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			addr = a
		}
		return dbg.printDisasm(addr, 8)

	case "LAST", "L":
		dbg.printLastResult()

	case "RESET":
		return dbg.reset()

	case "IRQ":
		if len(args) < 1 {
			return fmt.Errorf("IRQ needs ON or OFF")
		}
		switch strings.ToUpper(args[0]) {
		case "ON":
			dbg.mc.SetIRQ(true)
		case "OFF":
			dbg.mc.SetIRQ(false)
		default:
			return fmt.Errorf("IRQ needs ON or OFF, not %q", args[0])
		}
		dbg.term.Print(terminal.StyleFeedback, "IRQ line %s", strings.ToLower(args[0]))

	case "NMI":
		dbg.mc.SetNMI(false)
		dbg.mc.SetNMI(true)
		dbg.mc.SetNMI(false)
		dbg.term.Print(terminal.StyleFeedback, "NMI latched")

	case "LOG":
		logger.Write(logWriter{dbg.term})

	default:
		return fmt.Errorf("unknown command %q (try HELP)", tokens[0])
	}

	return nil
}

// logWriter funnels the logger's output through the session terminal.
type logWriter struct {
	term terminal.Terminal
}

func (w logWriter) Write(p []byte) (int, error) {
	for _, s := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.term.Print(terminal.StyleFeedback, "%s", s)
	}
	return len(p), nil
}

// parseAddress accepts the $ prefix for hexadecimal but, this being a
// 6502 debugger, bare numbers are hexadecimal too.
func parseAddress(s string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "$"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("not an address: %q", s)
	}
	return uint16(n), nil
}

func parseValue(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "$"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("not a byte value: %q", s)
	}
	return uint8(n), nil
}
