package core

import "fmt"

// InvariantError describes a violation of an entity invariant or a
// status transition outside the state table. The kernel does not check
// entity invariants and never constructs one; Simulator.Run returns only
// the final statistics.
type InvariantError struct {
	Entity string // e.g. "vehicle#12", "battery#3"
	Event  string // the event kind being processed when detected
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation: %s during %s: %s", e.Entity, e.Event, e.Reason)
}

// NewInvariantError constructs an InvariantError.
func NewInvariantError(entity, event, reason string) *InvariantError {
	return &InvariantError{Entity: entity, Event: event, Reason: reason}
}

// ConfigError describes a configuration problem (unknown scale or
// policy name). sim.New and config.Validate report such problems as
// plain formatted errors and do not return this type.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: unknown %s %q", e.Field, e.Value)
}
