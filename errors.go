package straph

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, per the error surface this package reports.
//
// Every operation that can fail reports one of these, possibly wrapped in
// a [*SlotError] to carry the offending node and slot.
var (
	// ErrInvalidArgument is returned for an unknown buffer variant, an
	// out-of-range slot index, or an illegal state-transition request.
	ErrInvalidArgument = errors.New("straph: invalid argument")

	// ErrNotFound is returned when operating on an output slot that was
	// never configured (no buffer installed). Reading an unbound input
	// slot is not an error: it returns zero bytes.
	ErrNotFound = errors.New("straph: slot not configured")

	// ErrSynchronization is returned when an underlying synchronization
	// primitive misbehaves. Under normal operation this should never
	// surface — it exists so a future platform-specific primitive has
	// somewhere defined to report into, and so the error-kind taxonomy
	// stays complete.
	ErrSynchronization = errors.New("straph: synchronization failure")

	// ErrNotInactive is returned by operations that require a node to be
	// Inactive (SetBuffer, Link, AddFlow) when it is not.
	ErrNotInactive = errors.New("straph: node is not inactive")

	// ErrGraphRunning is returned by Start when called on a graph whose
	// entry nodes are not all Inactive; non-entry nodes are not checked.
	ErrGraphRunning = errors.New("straph: graph already started")
)

// SlotError wraps a failure scoped to one node's slot, so callers can
// recover which node and slot failed while still matching the underlying
// sentinel with [errors.Is].
type SlotError struct {
	Node *Node
	Slot int
	Err  error
}

// Error implements the error interface.
func (e *SlotError) Error() string {
	return fmt.Sprintf("straph: slot %d: %s", e.Slot, e.Err)
}

// Unwrap returns the underlying sentinel error for [errors.Is] and [errors.As].
func (e *SlotError) Unwrap() error {
	return e.Err
}

func slotErr(n *Node, slot int, err error) error {
	return &SlotError{Node: n, Slot: slot, Err: err}
}
