package straph

import (
	"sync/atomic"
)

// NodeStatus represents the lifecycle stage of a [Node].
//
// State Machine:
//
//	Inactive (0) → Active (1)       [bring-up, on successful start]
//	Active (1) → Terminated (2)     [entry routine returns]
//	Terminated (2) → Joined (3)     [Graph.Join]
//	Joined (3) → Inactive (0)       [Graph.Rewind]
//	any → Doomed (4)                [Graph.Destroy]
//
// Doomed is terminal and exists solely so a cyclic neighbor walk during
// destroy cannot free the same node twice.
type NodeStatus uint32

const (
	// Inactive indicates the node has no thread and no input cursors.
	Inactive NodeStatus = iota
	// Active indicates the node's goroutine is alive, its output buffers
	// are Active, and its input slots hold per-reader cursors.
	Active
	// Terminated indicates the entry routine has returned: output buffers
	// are Inactive and input slots have been torn down, but the goroutine
	// has not yet been joined.
	Terminated
	// Joined indicates the goroutine has been joined and Node.Result/Err
	// are valid.
	Joined
	// Doomed marks a node as claimed by a destroy pass so a second visit,
	// possible via a cycle, does not free it again.
	Doomed
)

// String returns a human-readable representation of the status.
func (s NodeStatus) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	case Terminated:
		return "Terminated"
	case Joined:
		return "Joined"
	case Doomed:
		return "Doomed"
	default:
		return "Unknown"
	}
}

// nodeState is an atomic-CAS wrapper around NodeStatus, used for the reads
// that do not need the rendezvous mutex (e.g. the starter's "skip if not
// Inactive" check on the sequential propagation path).
type nodeState struct {
	v atomic.Uint32
}

func newNodeState() *nodeState {
	s := &nodeState{}
	s.v.Store(uint32(Inactive))
	return s
}

// Load returns the current status atomically.
func (s *nodeState) Load() NodeStatus {
	return NodeStatus(s.v.Load())
}

// Store atomically stores a new status, for irreversible or lock-guarded
// transitions (Rewind → Inactive, bring-down → Terminated, Join → Joined,
// Destroy → Doomed all happen under a lock or after the node is otherwise
// quiescent, so a plain Store is correct there).
func (s *nodeState) Store(status NodeStatus) {
	s.v.Store(uint32(status))
}

// TryTransition attempts to atomically move from one status to another.
func (s *nodeState) TryTransition(from, to NodeStatus) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
