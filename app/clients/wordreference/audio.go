package wordreference

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errNoArray      = errors.New("array literal not found")
	errUnterminated = errors.New("unterminated string literal")
)

// parseArrayLiteral reads string items of the first `[...];` array literal in a script.
// Only quoted strings are accepted, anything else is an error.
func parseArrayLiteral(script string) ([]string, error) {
	start := strings.Index(script, "[")
	if start < 0 {
		return nil, errNoArray
	}
	end := strings.Index(script[start:], "];")
	if end < 0 {
		return nil, errNoArray
	}
	body := script[start+1 : start+end]

	items := []string{}
	for i := 0; i < len(body); {
		switch c := body[i]; c {
		case ' ', '\t', '\n', '\r', ',':
			i++
		case '\'', '"':
			item, size, err := readQuoted(body[i:])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			i += size
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", c, i)
		}
	}
	return items, nil
}

// readQuoted decodes the quoted string at the start of s and returns its length in s
func readQuoted(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
			if i >= len(s) {
				return "", 0, errUnterminated
			}
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		case quote:
			return b.String(), i + 1, nil
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errUnterminated
}
