package config

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCommand splits a shell-like command line into argv. Single and double
// quotes group words verbatim, a backslash outside quotes escapes the next
// rune, and there is no variable expansion. A blank or "#"-prefixed line yields an empty argv.
func ParseCommand(raw string) (CommandConfig, error) {
	argv, err := splitCommand(raw)
	if err != nil {
		return CommandConfig{}, err
	}
	return CommandConfig{Raw: raw, Argv: argv}, nil
}

func splitCommand(raw string) ([]string, error) {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' {
		return nil, nil
	}

	var (
		argv  []string
		word  []rune
		inArg bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 == len(runes) {
				return nil, fmt.Errorf("unterminated escape sequence in command: %q", raw)
			}
			i++
			word = append(word, runes[i])
			inArg = true
		case r == '"' || r == '\'':
			end := indexRune(runes, i+1, r)
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote in command: %q", raw)
			}
			word = append(word, runes[i+1:end]...)
			inArg = true
			i = end
		case unicode.IsSpace(r):
			if inArg {
				argv = append(argv, string(word))
				word, inArg = word[:0], false
			}
		default:
			word = append(word, r)
			inArg = true
		}
	}
	if inArg {
		argv = append(argv, string(word))
	}
	return argv, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
