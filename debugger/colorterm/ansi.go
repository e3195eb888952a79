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

package colorterm

import (
	"fmt"

	"github.com/samuwen/go6502/debugger/terminal"
)

// ansi pens, built in init() from the basic colour numbers
var pens map[string]string

const ansiNormal = "\033[0m"

func init() {
	pens = make(map[string]string)

	colors := map[string]int{
		"red":    1,
		"green":  2,
		"yellow": 3,
		"blue":   4,
		"purple": 5,
		"cyan":   6,
		"white":  7,
	}

	for name, num := range colors {
		pens[name] = fmt.Sprintf("\033[3%dm", num)
		pens[name+":bold"] = fmt.Sprintf("\033[3%d;1m", num)
	}

	pens["bold"] = "\033[1m"
	pens["dim"] = "\033[2m"
}

// pen returns the ansi sequence for the given print style
func pen(style terminal.Style) string {
	switch style {
	case terminal.StyleCPUStep:
		return pens["yellow"]
	case terminal.StyleMachineInfo:
		return pens["cyan"]
	case terminal.StyleError:
		return pens["red:bold"]
	case terminal.StyleHelp:
		return pens["dim"]
	}
	return ""
}
