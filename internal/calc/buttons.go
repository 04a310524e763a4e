package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownButton is returned for labels that map to no event.
var ErrUnknownButton = errors.New("unknown button")

var buttonEvents = map[string]Event{
	"+":  Press{Op: OpAdd},
	"-":  Press{Op: OpSubtract},
	"×":  Press{Op: OpMultiply},
	"*":  Press{Op: OpMultiply},
	"x":  Press{Op: OpMultiply},
	"÷":  Press{Op: OpDivide},
	"/":  Press{Op: OpDivide},
	"=":  Equals{},
	"C":  Clear{},
	"c":  Clear{},
	"←":  Backspace{},
	"bs": Backspace{},
	".":  DecimalPoint{},
}

// ParseButton maps a UI button label to its event.
func ParseButton(label string) (Event, error) {
	label = strings.TrimSpace(label)
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Digit{Value: int(label[0] - '0')}, nil
	}
	if e, ok := buttonEvents[label]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownButton, label)
}

// ParseButtons parses labels in order. Arguments containing whitespace are
// split so "2 + 3 =" and []string{"2", "+", "3", "="} are equivalent.
func ParseButtons(labels []string) ([]Event, error) {
	events := make([]Event, 0, len(labels))
	for _, arg := range labels {
		for _, label := range strings.Fields(arg) {
			e, err := ParseButton(label)
			if err != nil {
				return nil, err
			}
			events = append(events, e)
		}
	}
	return events, nil
}

// Label renders the canonical button label for an event.
func Label(e Event) string {
	switch ev := e.(type) {
	case Digit:
		return fmt.Sprintf("%d", ev.Value)
	case DecimalPoint:
		return "."
	case Press:
		return ev.Op.String()
	case Equals:
		return "="
	case Clear:
		return "C"
	case Backspace:
		return "←"
	default:
		return "?"
	}
}
