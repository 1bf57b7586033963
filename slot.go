package straph

// BufferVariant selects which buffer implementation backs an output slot.
type BufferVariant int

const (
	// BufferNone clears whatever buffer previously occupied a slot.
	BufferNone BufferVariant = iota
	// BufferLinear installs a [*LinearBuffer].
	BufferLinear
	// BufferCircular installs a [*CircularBuffer].
	BufferCircular
)

// RunMode is the propagation mode of an execution edge: whether the
// downstream node may start concurrently with its upstream (Par), or only
// after the upstream has terminated (Seq).
type RunMode int

const (
	// Par lets the downstream node start as soon as its own rendezvous is
	// satisfied, without waiting for this edge's upstream to terminate.
	Par RunMode = iota
	// Seq delays the downstream node's start-request along this edge until
	// the upstream node has terminated.
	Seq
)

// inputCursor is the per-reader state a node holds over one upstream
// OutputBuffer once activated: [*linearCursor] or
// [*circularCursor].
type inputCursor interface {
	read(buf []byte) (int, error)
	close()
}

// inputBindingKind distinguishes the three states an input slot can be
// in.
type inputBindingKind int

const (
	// bindingUnbound is the zero value: no upstream buffer configured.
	bindingUnbound inputBindingKind = iota
	// bindingBound holds a raw reference to an upstream output slot,
	// valid before the owning node activates (or after it terminates).
	bindingBound
	// bindingCursor holds a live per-reader cursor, valid only while the
	// owning node is Active.
	bindingCursor
)

// outputSlot is an indexed output position on a node: a backing buffer
// plus the number of input slots currently bound to it.
type outputSlot struct {
	buffer      OutputBuffer
	readerCount int
}

// inputSlot is an indexed input position on a node. Before activation it
// is Unbound or Bound to an upstream outputSlot; on activation the
// reference is replaced by an allocated cursor (bindingCursor); on
// termination the cursor is closed and the raw reference restored in
// place (bindingBound), so peer lookups of the binding remain valid.
type inputSlot struct {
	kind   inputBindingKind
	owner  *outputSlot // the upstream output slot, for reader-count bookkeeping
	buffer OutputBuffer
	cursor inputCursor
}

// bind records a raw reference to an upstream output slot's buffer.
func (s *inputSlot) bind(owner *outputSlot) {
	s.kind = bindingBound
	s.owner = owner
	s.buffer = owner.buffer
	s.cursor = nil
}

// activate allocates the per-reader cursor matching the upstream
// buffer's variant, per bring-up step 1. A no-op on an unbound slot.
func (s *inputSlot) activate() {
	if s.kind != bindingBound {
		return
	}
	s.cursor = s.buffer.newCursor()
	s.kind = bindingCursor
}

// deactivate closes the cursor and restores the raw buffer reference, per
// bring-down. A no-op on a slot that was never activated.
func (s *inputSlot) deactivate() {
	if s.kind != bindingCursor {
		return
	}
	s.cursor.close()
	s.cursor = nil
	s.kind = bindingBound
}

// read dispatches to the live cursor. Reading an unbound or not-yet-active
// slot returns zero bytes, not an error.
func (s *inputSlot) read(buf []byte) (int, error) {
	if s.kind != bindingCursor {
		return 0, nil
	}
	return s.cursor.read(buf)
}
