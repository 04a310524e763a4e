package ipc

// Commands understood by the session owner.
const (
	CommandStatus = "status"
	CommandPress  = "press"
	CommandClear  = "clear"
	CommandStop   = "stop"
)

// Request is one newline-delimited JSON command sent to the session owner.
type Request struct {
	Command string   `json:"command"`
	Buttons []string `json:"buttons,omitempty"`
}

// Response carries the display after the command was applied.
type Response struct {
	OK      bool   `json:"ok"`
	State   string `json:"state,omitempty"`
	Display string `json:"display,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
