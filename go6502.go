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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samuwen/go6502/assembler"
	"github.com/samuwen/go6502/debugger"
	"github.com/samuwen/go6502/debugger/colorterm"
	"github.com/samuwen/go6502/debugger/terminal"
	"github.com/samuwen/go6502/disassembly"
	"github.com/samuwen/go6502/hardware/cpu"
	"github.com/samuwen/go6502/hardware/cpu/instructions"
	"github.com/samuwen/go6502/hardware/memory"
	"github.com/samuwen/go6502/logger"
	"github.com/samuwen/go6502/version"
)

// with no program to load the emulation gets this, which adds two numbers
// and stops on the BRK
var demoProgram = []uint8{0xa9, 0x10, 0x69, 0x10, 0x00}

func main() {
	if err := launch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}
}

func launch(args []string) error {
	mode := "DEBUG"
	if len(args) > 0 {
		mode = strings.ToUpper(args[0])
		args = args[1:]
	}

	switch mode {
	case "RUN":
		return emulate(args)
	case "DEBUG":
		return debug(args)
	case "DISASM":
		return disasm(args)
	case "ASM":
		return assemble(args)
	case "VERSION":
		vrs, rev, release := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, vrs)
		if !release {
			fmt.Println(rev)
		}
		return nil
	case "HELP":
		fmt.Println("available sub-modes: RUN, DEBUG, DISASM, ASM, VERSION")
		return nil
	}

	return errors.Errorf("%s is not a recognised sub-mode (try HELP)", mode)
}

// loadProgram prepares the 64KB address space from the file at path. An
// .asm suffix means the file is assembled; anything else is loaded as a
// raw binary image at origin. An empty path loads the demo program.
func loadProgram(path string, origin uint16) (*memory.RAM, uint16, error) {
	ram := memory.NewRAM()

	image := demoProgram

	if path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, errors.Wrap(err, "loading program")
		}
		image = src

		if strings.HasSuffix(path, ".asm") || strings.HasSuffix(path, ".s") {
			prog, err := assembler.Assemble(string(src))
			if err != nil {
				return nil, 0, errors.Wrap(err, path)
			}
			image = prog.Image
			origin = prog.Origin
		}
	}

	if err := ram.Load(origin, image); err != nil {
		return nil, 0, err
	}
	ram.SetResetVector(origin)

	return ram, origin, nil
}

func emulate(args []string) error {
	md := flag.NewFlagSet("run", flag.ExitOnError)
	origin := md.Uint("org", uint(assembler.DefaultOrigin), "load address for raw binary images")
	limit := md.Int("n", 1000000, "maximum number of instructions")
	verbose := md.Bool("v", false, "echo the emulator log to stderr")
	md.Parse(args)

	if *verbose {
		logger.SetEcho(os.Stderr)
	}

	ram, _, err := loadProgram(md.Arg(0), uint16(*origin))
	if err != nil {
		return err
	}

	mc := cpu.NewCPU(ram)
	mc.Reset()

	// the reset sequence is the first thing stepped so it counts as one of
	// the instructions against the limit
	for i := 0; i < *limit; i++ {
		if _, err := mc.StepInstruction(); err != nil {
			fmt.Println(mc.String())
			return err
		}

		defn := mc.LastResult.Defn
		if defn != nil && defn.Operator == instructions.Brk {
			break
		}
	}

	fmt.Println(mc.String())
	fmt.Printf("%d cycles\n", mc.Cycles)

	return nil
}

func debug(args []string) error {
	md := flag.NewFlagSet("debug", flag.ExitOnError)
	origin := md.Uint("org", uint(assembler.DefaultOrigin), "load address for raw binary images")
	plain := md.Bool("plain", false, "use a plain, uncoloured terminal")
	md.Parse(args)

	ram, _, err := loadProgram(md.Arg(0), uint16(*origin))
	if err != nil {
		return err
	}

	var term terminal.Terminal
	if *plain {
		term = terminal.NewPlainTerminal(os.Stdin, os.Stdout)
	} else {
		term = &colorterm.ColorTerminal{}
	}

	// the debugger shows the log on demand with its LOG command
	logger.SetEcho(nil)

	return debugger.NewDebugger(ram).Start(term)
}

func disasm(args []string) error {
	md := flag.NewFlagSet("disasm", flag.ExitOnError)
	origin := md.Uint("org", uint(assembler.DefaultOrigin), "address of the first byte")
	md.Parse(args)

	if md.Arg(0) == "" {
		return errors.New("disasm needs a file to decode")
	}

	image, err := os.ReadFile(md.Arg(0))
	if err != nil {
		return errors.Wrap(err, "disasm")
	}

	org := uint16(*origin)
	if strings.HasSuffix(md.Arg(0), ".asm") || strings.HasSuffix(md.Arg(0), ".s") {
		prog, err := assembler.Assemble(string(image))
		if err != nil {
			return errors.Wrap(err, md.Arg(0))
		}
		image = prog.Image
		org = prog.Origin
	}

	disassembly.Write(os.Stdout, image, org)

	return nil
}

func assemble(args []string) error {
	md := flag.NewFlagSet("asm", flag.ExitOnError)
	outFile := md.String("o", "", "output file (defaults to the input with a .bin suffix)")
	listing := md.Bool("l", false, "print a listing of the assembled program")
	md.Parse(args)

	if md.Arg(0) == "" {
		return errors.New("asm needs a file to assemble")
	}

	src, err := os.ReadFile(md.Arg(0))
	if err != nil {
		return errors.Wrap(err, "asm")
	}

	prog, err := assembler.Assemble(string(src))
	if err != nil {
		return errors.Wrap(err, md.Arg(0))
	}

	out := *outFile
	if out == "" {
		out = strings.TrimSuffix(strings.TrimSuffix(md.Arg(0), ".asm"), ".s") + ".bin"
	}

	if err := os.WriteFile(out, prog.Image, 0644); err != nil {
		return errors.Wrap(err, "asm")
	}

	if *listing {
		disassembly.Write(os.Stdout, prog.Image, prog.Origin)
	}

	fmt.Printf("%s: %d bytes at $%04x\n", out, len(prog.Image), prog.Origin)

	return nil
}
