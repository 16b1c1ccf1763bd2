package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventLevel     EventType = "level"
	EventRunHalt   EventType = "run_halt"
	EventRunFailed EventType = "run_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine"`
}

// RunEvent marks the start or failure of a simulation.
type RunEvent struct {
	EventBase
	Input    []Symbol `json:"input"`
	MaxSteps int      `json:"max_steps"`
	Err      error    `json:"-"`
}

// LevelEvent is emitted after a level has been expanded.
type LevelEvent struct {
	EventBase
	Depth          int `json:"depth"`
	Configurations int `json:"configurations"`
	PrunedReject   int `json:"pruned_reject"`
	PrunedDeadEnd  int `json:"pruned_dead_end"`
	Duplicates     int `json:"duplicates"`
}

// HaltEvent carries the final verdict.
type HaltEvent struct {
	EventBase
	Verdict *Verdict `json:"verdict"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRunStart  func(context.Context, *RunEvent)
	OnLevel     func(context.Context, *LevelEvent)
	OnRunHalt   func(context.Context, *HaltEvent)
	OnRunFailed func(context.Context, *RunEvent)
}
