package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// decodeJSONC decodes a single JSONC object into v, rejecting unknown fields.
// Decode errors carry the line and column in the original content.
func decodeJSONC(content string, v any) error {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(strings.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return locateJSONError(normalized, err)
	}
	if err := rejectTrailingData(dec); err != nil {
		return locateJSONError(normalized, err)
	}
	return nil
}

// normalizeJSONC blanks comments and trailing commas with spaces. The result
// has the same length as content so decoder offsets map back unchanged.
func normalizeJSONC(content string) (string, error) {
	out := []byte(content)
	comma := -1

	for i := 0; i < len(out); i++ {
		c := out[i]
		var next byte
		if i+1 < len(out) {
			next = out[i+1]
		}

		switch {
		case c == '"':
			i = stringEnd(out, i)
			comma = -1
		case c == '/' && next == '/':
			for i < len(out) && out[i] != '\n' && out[i] != '\r' {
				out[i] = ' '
				i++
			}
			i--
		case c == '/' && next == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return "", errors.New("unterminated block comment in JSONC")
			}
			stop := i + 2 + end + 2
			for ; i < stop; i++ {
				if !isJSONWhitespace(out[i]) {
					out[i] = ' '
				}
			}
			i--
		case c == ',':
			comma = i
		case c == '}' || c == ']':
			if comma >= 0 {
				out[comma] = ' '
			}
			comma = -1
		case isJSONWhitespace(c):
		default:
			comma = -1
		}
	}
	return string(out), nil
}

// stringEnd returns the index of the quote closing the string opened at start.
func stringEnd(b []byte, start int) int {
	for i := start + 1; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(b) - 1
}

func isJSONWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func rejectTrailingData(dec *json.Decoder) error {
	if _, err := dec.Token(); errors.Is(err, io.EOF) {
		return nil
	}
	return errors.New("multiple JSON values are not allowed")
}

func locateJSONError(content string, err error) error {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return err
	}

	line, col := offsetToLineCol(content, offset)
	return fmt.Errorf("line %d column %d: %w", line, col, err)
}

// offsetToLineCol maps a decoder offset (bytes consumed, so one past the
// offending byte) to a 1-based line and column.
func offsetToLineCol(content string, offset int64) (int, int) {
	idx := int(min(max(offset, 1), int64(len(content)))) - 1
	if idx < 0 {
		return 1, 1
	}
	prefix := content[:idx]
	line := strings.Count(prefix, "\n") + 1
	col := idx - strings.LastIndexByte(prefix, '\n')
	return line, col
}
