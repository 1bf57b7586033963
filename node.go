package straph

import (
	"sync"
	"time"
)

// neighbor is one outgoing execution edge.
type neighbor struct {
	target *Node
	mode   RunMode
}

// Node is a unit of execution: a user entry routine plus lifecycle state,
// parent/neighbor topology, output slots and input slot bindings.
//
// A Node is constructed Inactive via [Graph.MakeNode] and must not be
// shared across graphs.
type Node struct {
	graph *Graph
	entry func(*Node) (any, error)

	state *nodeState

	// mu is the rendezvous lock: it serializes start-request processing
	// for this node (try-start reads/writes parents/startRequests under
	// it). A sync.Mutex stands in for a userspace spinlock, since Go's
	// standard library offers no portable one.
	mu            sync.Mutex
	parents       int
	startRequests int

	neighbors []neighbor

	outputs map[int]*outputSlot
	inputs  map[int]*inputSlot

	// done is closed by the thread-wrapper once the entry routine has
	// returned, bring-down has completed and the sequential neighbors have
	// been walked, replacing pthread_join as the rendezvous primitive.
	done        chan struct{}
	ret         any
	err         error
	activatedAt time.Time
}

func newNode(g *Graph, entry func(*Node) (any, error)) *Node {
	return &Node{
		graph:   g,
		entry:   entry,
		state:   newNodeState(),
		outputs: make(map[int]*outputSlot),
		inputs:  make(map[int]*inputSlot),
	}
}

// Status returns the node's current lifecycle state.
func (n *Node) Status() NodeStatus {
	return n.state.Load()
}

// SetBuffer installs or replaces the output buffer at slot, or clears it
// when variant is BufferNone or size is zero or negative. Only valid while the node
// is Inactive.
func (n *Node) SetBuffer(slot int, variant BufferVariant, size int) error {
	if n.state.Load() != Inactive {
		return slotErr(n, slot, ErrNotInactive)
	}
	if slot < 0 {
		return slotErr(n, slot, ErrInvalidArgument)
	}
	if variant == BufferNone || size <= 0 {
		delete(n.outputs, slot)
		return nil
	}

	var buf OutputBuffer
	switch variant {
	case BufferLinear:
		buf = NewLinearBuffer(size)
	case BufferCircular:
		cb := NewCircularBuffer(size)
		cb.blockHook = func() {
			if n.graph.metrics != nil {
				n.graph.metrics.CBWriterBlocked.Add(1)
			}
			logBufferBackpressure(n, slot)
		}
		buf = cb
	default:
		return slotErr(n, slot, ErrInvalidArgument)
	}
	n.outputs[slot] = &outputSlot{buffer: buf}
	return nil
}

// Link adds an execution edge from n to b with the given propagation
// mode, incrementing b's parent count. Only valid while both nodes are
// Inactive.
func (n *Node) Link(b *Node, mode RunMode) error {
	if n.state.Load() != Inactive || b.state.Load() != Inactive {
		return ErrNotInactive
	}
	n.neighbors = append(n.neighbors, neighbor{target: b, mode: mode})
	b.parents++
	return nil
}

// AddFlow binds b's input slot inSlot to n's output slot outSlot,
// incrementing the writer's reader count and decrementing the reader
// count of whatever buffer b's slot was previously bound to, if any.
// Only valid while both nodes are Inactive.
func (n *Node) AddFlow(outSlot int, b *Node, inSlot int) error {
	if n.state.Load() != Inactive || b.state.Load() != Inactive {
		return ErrNotInactive
	}
	out, ok := n.outputs[outSlot]
	if !ok {
		return slotErr(n, outSlot, ErrNotFound)
	}

	if prev, ok := b.inputs[inSlot]; ok && prev.owner != nil {
		prev.owner.readerCount--
	}

	slot := &inputSlot{}
	slot.bind(out)
	b.inputs[inSlot] = slot
	out.readerCount++
	return nil
}

// Read reads from the input slot at index slot into buf. Reading an
// unbound or not-yet-activated slot returns zero bytes, not an error.
func (n *Node) Read(slot int, buf []byte) (int, error) {
	s, ok := n.inputs[slot]
	if !ok {
		return 0, nil
	}
	return s.read(buf)
}

// Write writes buf to the output slot at index slot. Writing to an
// unbound output slot reports success with the full requested length
// (/dev/null semantics).
func (n *Node) Write(slot int, buf []byte) (int, error) {
	out, ok := n.outputs[slot]
	if !ok {
		return len(buf), nil
	}
	return out.buffer.Write(buf)
}

// SetBufferStatus sets the lifecycle status of the output buffer at
// slot, for callers that need to drive buffer lifecycle directly rather
// than through Write/entry-routine termination.
func (n *Node) SetBufferStatus(slot int, status BufferStatus) error {
	out, ok := n.outputs[slot]
	if !ok {
		return slotErr(n, slot, ErrNotFound)
	}
	out.buffer.SetStatus(status)
	return nil
}

// Result returns the value returned by the node's entry routine. Only
// meaningful once Status is Joined or later.
func (n *Node) Result() any {
	return n.ret
}

// Err returns the error returned by the node's entry routine, if any.
// Only meaningful once Status is Joined or later.
func (n *Node) Err() error {
	return n.err
}
