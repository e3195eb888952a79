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

package assembler

import (
	"strings"

	"github.com/pkg/errors"
)

type tokenType int

const (
	tokenIdentifier tokenType = iota
	tokenNumber
	tokenHash
	tokenComma
	tokenColon
	tokenLeftParen
	tokenRightParen
	tokenDirective
)

type token struct {
	typ  tokenType
	text string
	num  uint16
	line int
}

// tokenize splits source text into tokens, one slice per line. Comments
// (from a semicolon to the end of the line) and blank lines are dropped from
// the token stream but line numbering is preserved for error reporting.
func tokenize(src string) ([][]token, error) {
	var lines [][]token

	for num, text := range strings.Split(src, "\n") {
		toks, err := tokenizeLine(text, num+1)
		if err != nil {
			return nil, err
		}
		if len(toks) > 0 {
			lines = append(lines, toks)
		}
	}

	return lines, nil
}

func tokenizeLine(text string, line int) ([]token, error) {
	var toks []token

	i := 0
	for i < len(text) {
		c := text[i]

		switch {
		case c == ';':
			return toks, nil

		case c == ' ' || c == '\t' || c == '\r':
			i++

		case c == '#':
			toks = append(toks, token{typ: tokenHash, text: "#", line: line})
			i++
		case c == ',':
			toks = append(toks, token{typ: tokenComma, text: ",", line: line})
			i++
		case c == ':':
			toks = append(toks, token{typ: tokenColon, text: ":", line: line})
			i++
		case c == '(':
			toks = append(toks, token{typ: tokenLeftParen, text: "(", line: line})
			i++
		case c == ')':
			toks = append(toks, token{typ: tokenRightParen, text: ")", line: line})
			i++

		case c == '$' || c == '%' || isDigit(c):
			j := i + 1
			for j < len(text) && isNumberChar(text[j]) {
				j++
			}
			n, err := parseNumber(text[i:j])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			toks = append(toks, token{typ: tokenNumber, text: text[i:j], num: n, line: line})
			i = j

		case c == '.' || isIdentChar(c):
			typ := tokenIdentifier
			if c == '.' {
				typ = tokenDirective
			}
			j := i + 1
			for j < len(text) && isIdentChar(text[j]) {
				j++
			}
			toks = append(toks, token{typ: typ, text: text[i:j], line: line})
			i = j

		default:
			return nil, errors.Errorf("line %d: unexpected character %q", line, c)
		}
	}

	return toks, nil
}

// parseNumber handles the three literal forms: $ for hexadecimal, % for
// binary and bare digits for decimal.
func parseNumber(text string) (uint16, error) {
	base := 10
	digits := text

	switch text[0] {
	case '$':
		base = 16
		digits = text[1:]
	case '%':
		base = 2
		digits = text[1:]
	}

	if digits == "" {
		return 0, errors.Errorf("malformed number %q", text)
	}

	var n uint32
	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d < 0 || d >= base {
			return 0, errors.Errorf("malformed number %q", text)
		}
		n = n*uint32(base) + uint32(d)
		if n > 0xffff {
			return 0, errors.Errorf("number %q too large", text)
		}
	}

	return uint16(n), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberChar(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
