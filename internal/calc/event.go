package calc

// Operator is a pending binary operation. The zero value means none.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Event is one discrete user action. The set of implementations is closed.
type Event interface {
	isEvent()
}

// Digit enters one decimal digit (0-9).
type Digit struct {
	Value int
}

// DecimalPoint places the decimal separator in the number being typed.
type DecimalPoint struct{}

// Press selects a binary operator.
type Press struct {
	Op Operator
}

// Equals resolves the pending operation.
type Equals struct{}

// Clear resets to the identity state.
type Clear struct{}

// Backspace removes the last displayed character.
type Backspace struct{}

func (Digit) isEvent()        {}
func (DecimalPoint) isEvent() {}
func (Press) isEvent()        {}
func (Equals) isEvent()       {}
func (Clear) isEvent()        {}
func (Backspace) isEvent()    {}
