// Package event defines the progress notifications the transfer engine
// emits while a pass runs.
package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	RunStarted Type = iota + 1
	PassStarted
	PassProgress
	PassCompleted
	MismatchFound
	VerifyDone
)

var typeNames = [...]string{
	RunStarted:    "RunStarted",
	PassStarted:   "PassStarted",
	PassProgress:  "PassProgress",
	PassCompleted: "PassCompleted",
	MismatchFound: "MismatchFound",
	VerifyDone:    "VerifyDone",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Op names the pass an event belongs to.
type Op string

const (
	OpWrite Op = "WRITE"
	OpRead  Op = "READ"
)

// Event is a single progress notification. The engine delivers events
// synchronously on its own goroutine; sinks must not block and must not
// influence transfer correctness.
type Event struct {
	Type      Type
	Timestamp time.Time
	Op        Op
	Bytes     int64         // bytes moved so far, or pass total on PassCompleted
	Total     int64         // requested pass size in bytes
	Elapsed   time.Duration // PassCompleted only

	// MismatchFound fields.
	Offset   int64
	Expected byte
	Actual   byte

	// VerifyDone fields.
	Mismatches int64
	Capped     bool // comparison stopped at the reporting cap
}

// Sink consumes events.
type Sink interface {
	Emit(Event)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}
