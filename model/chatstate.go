package model

// ChatState tracks where the assistant is within a turn. The
// orchestration loop owns transitions; the UI only reads it to pick
// status copy and to gate sends.
type ChatState int

const (
	// StateIdle means no turn is in flight. Sends are accepted.
	StateIdle ChatState = iota
	// StateGenerating covers the window between dispatching a turn and
	// the first fragment arriving.
	StateGenerating
	// StateThinking means the last fragment was reasoning text.
	StateThinking
	// StateExecuting means the last fragment was reply prose or a tool
	// call is being carried out.
	StateExecuting
)

func (s ChatState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateThinking:
		return "thinking"
	case StateExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// StatusLabel is the user-facing caption shown next to the spinner.
func (s ChatState) StatusLabel() string {
	switch s {
	case StateGenerating:
		return "Generando..."
	case StateThinking:
		return "Pensando..."
	case StateExecuting:
		return "Ejecutando..."
	default:
		return ""
	}
}

// Busy reports whether a turn is in flight.
func (s ChatState) Busy() bool {
	return s != StateIdle
}

// CanSend reports whether a new user message may start a turn. A send
// while busy is dropped without side effects.
func (s ChatState) CanSend() bool {
	return s == StateIdle
}
