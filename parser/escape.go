package parser

import (
	"fmt"
	"strconv"
)

// ProcessStringEscapes converts escape sequences inside a Justina string
// literal to their actual byte values, run by the pre-pass before a literal
// is copied into the constant-string table (§4.1 "handles string escapes").
//
// Supported escapes:
//   - \n  newline
//   - \t  tab
//   - \r  carriage return
//   - \\  backslash
//   - \"  double quote
//   - \0  null byte
//   - \xNN  hex byte value (exactly 2 hex digits required)
//
// Unknown escape sequences are preserved as-is, matching the source
// Justina lexer's tolerant behavior inside string literals (distinct from
// console-input escapes, see ProcessConsoleEscapes).
func ProcessStringEscapes(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			consumed, b, ok := parseEscapeAt(s, i)
			if ok {
				result = append(result, b...)
				i += consumed
				continue
			}
			result = append(result, s[i], s[i+1])
			i += 2
			continue
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// ConsoleEscapeAction is the effect of one recognized console-input escape.
type ConsoleEscapeAction int

const (
	ConsoleEscapeNone ConsoleEscapeAction = iota
	ConsoleEscapeCancel                  // \c
	ConsoleEscapeUseDefault              // \d
)

// ProcessConsoleEscapes scans interactive console input for the \c
// (cancel) and \d (use default) escapes recognized by the interactive
// prompt helpers (§6). It is NOT applied to general expression text.
//
// Per the Open Question in spec.md §9, an invalid `\X` escape is resolved
// here by following the original source's actual behavior (see DESIGN.md):
// the backslash is silently discarded and the following character is kept
// literally, rather than raising an error.
func ProcessConsoleEscapes(s string) (string, ConsoleEscapeAction) {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'c':
				return "", ConsoleEscapeCancel
			case 'd':
				return "", ConsoleEscapeUseDefault
			default:
				// Invalid escape: discard the backslash, keep the next
				// character literal.
				result = append(result, s[i+1])
				i += 2
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result), ConsoleEscapeNone
}

// ParseEscapeChar parses a single escape sequence and returns the character
// value, the number of input characters consumed, and any error. The input
// must start with the backslash (e.g. "\\n" or "\\x0A").
func ParseEscapeChar(escape string) (byte, int, error) {
	if len(escape) < 2 || escape[0] != '\\' {
		return 0, 0, fmt.Errorf("invalid escape sequence: %s", escape)
	}

	consumed, bytes, ok := parseEscapeAt(escape, 0)
	if !ok {
		return 0, 0, fmt.Errorf("unknown escape sequence: %s", escape)
	}
	if len(bytes) != 1 {
		return 0, 0, fmt.Errorf("escape sequence must produce a single byte: %s", escape)
	}
	return bytes[0], consumed, nil
}

// parseEscapeAt parses one escape sequence starting at position i in s.
func parseEscapeAt(s string, i int) (int, []byte, bool) {
	if i+1 >= len(s) || s[i] != '\\' {
		return 0, nil, false
	}

	switch s[i+1] {
	case 'n':
		return 2, []byte{'\n'}, true
	case 't':
		return 2, []byte{'\t'}, true
	case 'r':
		return 2, []byte{'\r'}, true
	case '\\':
		return 2, []byte{'\\'}, true
	case '0':
		return 2, []byte{'\x00'}, true
	case '"':
		return 2, []byte{'"'}, true
	case 'x':
		if i+3 >= len(s) {
			return 0, nil, false
		}
		val, err := strconv.ParseUint(s[i+2:i+4], 16, 8)
		if err != nil {
			return 0, nil, false
		}
		return 4, []byte{byte(val)}, true
	default:
		return 0, nil, false
	}
}
