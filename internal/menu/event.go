package menu

import "fmt"

// EventKind is the action a key mapper asks the render loop to take.
type EventKind int

const (
	EventNoop EventKind = iota
	EventMoveUp
	EventMoveDown
	EventConfirm
	EventReturn
)

func (k EventKind) String() string {
	switch k {
	case EventNoop:
		return "Noop"
	case EventMoveUp:
		return "MoveUp"
	case EventMoveDown:
		return "MoveDown"
	case EventConfirm:
		return "Confirm"
	case EventReturn:
		return "Return"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is produced by a KeyMapper for every key. Payload is only used by
// EventReturn.
type Event struct {
	Kind    EventKind
	Payload string
}

func (e Event) String() string {
	if e.Kind == EventReturn {
		return fmt.Sprintf("Return(%q)", e.Payload)
	}
	return e.Kind.String()
}

// MoveUp moves the cursor one option up.
func MoveUp() Event { return Event{Kind: EventMoveUp} }

// MoveDown moves the cursor one option down.
func MoveDown() Event { return Event{Kind: EventMoveDown} }

// Confirm ends the run with the highlighted option.
func Confirm() Event { return Event{Kind: EventConfirm} }

// Return ends the run with payload, ignoring the options.
func Return(payload string) Event { return Event{Kind: EventReturn, Payload: payload} }

// Noop redraws and waits for the next key.
func Noop() Event { return Event{Kind: EventNoop} }
