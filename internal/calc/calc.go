// Package calc implements the button-driven calculator state machine.
//
// A State is an immutable value. Transition never fails: every event either
// moves the calculator forward or resolves to a defined no-op, and division
// by zero is encoded in the returned State rather than returned as an error.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// Phase is the coarse classification of a State.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseEntering Phase = "entering"
	PhasePending  Phase = "pending"
	PhaseError    Phase = "error"
)

const errorText = "Error"

// State is one calculator snapshot. The zero value is not valid; use New.
type State struct {
	display  string
	operand  float64
	operator Operator
	decimal  bool
	err      bool
	// fresh is set when the next digit starts a new number.
	fresh bool
}

// New returns the identity state.
func New() State {
	return State{display: "0"}
}

// Display returns the text a UI renders verbatim.
func (s State) Display() string {
	if s.err {
		return errorText
	}
	return s.display
}

// Err reports whether the last evaluation failed.
func (s State) Err() bool {
	return s.err
}

// EnteringDecimal reports whether the number being typed already has a point.
func (s State) EnteringDecimal() bool {
	return s.decimal
}

// AwaitingOperand reports whether the next digit starts a new number.
func (s State) AwaitingOperand() bool {
	return s.fresh
}

// Pending returns the captured left operand and operator, if any.
func (s State) Pending() (float64, Operator, bool) {
	if s.operator == OpNone {
		return 0, OpNone, false
	}
	return s.operand, s.operator, true
}

// Phase classifies the state for logging and status reporting.
func (s State) Phase() Phase {
	switch {
	case s.err:
		return PhaseError
	case s.operator != OpNone:
		return PhasePending
	case s == New():
		return PhaseIdle
	default:
		return PhaseEntering
	}
}

// Transition applies one event and returns the next state.
func Transition(s State, e Event) State {
	switch ev := e.(type) {
	case Digit:
		return s.digit(ev.Value)
	case DecimalPoint:
		return s.point()
	case Press:
		return s.press(ev.Op)
	case Equals:
		return s.equals()
	case Clear:
		return New()
	case Backspace:
		return s.backspace()
	default:
		return s
	}
}

// Replay folds events over the identity state.
func Replay(events ...Event) State {
	s := New()
	for _, e := range events {
		s = Transition(s, e)
	}
	return s
}

func (s State) digit(d int) State {
	if d < 0 || d > 9 {
		return s
	}
	if s.err {
		s = New()
	}

	ch := strconv.Itoa(d)
	switch {
	case s.fresh:
		s.display = ch
		s.decimal = false
		s.fresh = false
	case !s.decimal && (s.display == "0" || s.display == "-0"):
		s.display = strings.TrimSuffix(s.display, "0") + ch
	default:
		s.display += ch
	}
	return s
}

func (s State) point() State {
	if s.err {
		s = New()
	}
	if s.fresh {
		s.display = "0."
		s.decimal = true
		s.fresh = false
		return s
	}
	if s.decimal || strings.Contains(s.display, ".") {
		return s
	}
	s.display += "."
	s.decimal = true
	return s
}

func (s State) press(op Operator) State {
	if s.err || op <= OpNone || op > OpDivide {
		return s
	}

	operand, ok := parse(s.display)
	if !ok {
		return failed()
	}
	if s.operator == OpNone {
		s.operand = operand
		s.operator = op
		s.fresh = true
		return s
	}

	// No second operand typed yet: the newer operator wins.
	if s.fresh {
		s.operator = op
		return s
	}

	result, ok := evaluate(s.operand, s.operator, operand)
	if !ok {
		return failed()
	}
	s.display = format(result)
	s.operand = result
	s.operator = op
	s.decimal = false
	s.fresh = true
	return s
}

func (s State) equals() State {
	if s.err || s.operator == OpNone {
		return s
	}

	operand, ok := parse(s.display)
	if !ok {
		return failed()
	}
	result, ok := evaluate(s.operand, s.operator, operand)
	if !ok {
		return failed()
	}
	return State{display: format(result), fresh: true}
}

func (s State) backspace() State {
	if s.err {
		return s
	}

	d := s.display
	if d != "" {
		d = d[:len(d)-1]
	}
	if d == "" || d == "-" {
		d = "0"
	}

	s.display = d
	s.decimal = strings.Contains(d, ".")
	s.fresh = false
	return s
}

func failed() State {
	return State{display: errorText, err: true}
}

func evaluate(a float64, op Operator, b float64) (float64, bool) {
	var r float64
	switch op {
	case OpAdd:
		r = a + b
	case OpSubtract:
		r = a - b
	case OpMultiply:
		r = a * b
	case OpDivide:
		if b == 0 {
			return 0, false
		}
		r = a / b
	default:
		return b, true
	}

	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

// parse reads the display as an operand. Typed numbers beyond float64 range
// are not ok.
func parse(display string) (float64, bool) {
	v, err := strconv.ParseFloat(display, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// format renders the shortest round-trip decimal without exponent notation.
func format(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
