package straph

import "sync"

// worklistChunkSize is the default number of node slots per link in a
// worklist's chunked linked list, used by a Graph that hasn't been
// configured via WithWorklistChunkSize. Sized for one allocation to cover
// most traversals (a single-digit-to-low-hundreds node graph) without
// resizing.
const worklistChunkSize = 128

// worklistChunkPool recycles worklist chunks across traversals (Start,
// Join, Rewind, Destroy each build at least one worklist). Chunks of
// differing capacities (from differently-configured graphs) share the
// pool; newWorklistChunk reallocates nodes when a recycled chunk is too
// small.
var worklistChunkPool = sync.Pool{
	New: func() any { return &worklistChunk{} },
}

// worklistChunk is a link in a worklist's chunked linked list, holding up
// to the owning worklist's configured chunk size worth of nodes. It uses
// readPos/pos (read and write) cursors for O(1) push/pop without shifting.
type worklistChunk struct {
	nodes   []*Node
	next    *worklistChunk
	readPos int
	pos     int
}

func newWorklistChunk(size int) *worklistChunk {
	c := worklistChunkPool.Get().(*worklistChunk)
	if cap(c.nodes) < size {
		c.nodes = make([]*Node, size)
	} else {
		c.nodes = c.nodes[:size]
	}
	c.pos = 0
	c.readPos = 0
	c.next = nil
	return c
}

func returnWorklistChunk(c *worklistChunk) {
	for i := 0; i < c.pos; i++ {
		c.nodes[i] = nil
	}
	c.pos = 0
	c.readPos = 0
	c.next = nil
	worklistChunkPool.Put(c)
}

// worklist is a FIFO worklist: an ordered sequence of
// pending nodes used by scheduler traversals, with push-back and
// pop-front. It is not safe for concurrent use — every scheduler
// traversal (try-start walk, Join's BFS, Rewind's BFS, Destroy's two
// passes) runs on a single goroutine and owns its own worklist.
type worklist struct {
	head      *worklistChunk
	tail      *worklistChunk
	length    int
	chunkSize int
}

// newWorklist constructs an empty worklist whose chunks hold chunkSize
// nodes each; a non-positive chunkSize falls back to worklistChunkSize.
// Every worklist used by the scheduler is built through this constructor
// so Graph.worklistChunkSize (see WithWorklistChunkSize) actually governs
// chunking, rather than just being stored and ignored.
func newWorklist(chunkSize int) *worklist {
	if chunkSize <= 0 {
		chunkSize = worklistChunkSize
	}
	return &worklist{chunkSize: chunkSize}
}

// effectiveChunkSize is the chunk size pushBack allocates with: the
// worklist's configured chunkSize, or worklistChunkSize for a zero-value
// worklist constructed without newWorklist (as in the package's own
// tests).
func (w *worklist) effectiveChunkSize() int {
	if w.chunkSize <= 0 {
		return worklistChunkSize
	}
	return w.chunkSize
}

// pushBack appends a node to the end of the worklist.
func (w *worklist) pushBack(n *Node) {
	if w.tail == nil {
		w.tail = newWorklistChunk(w.effectiveChunkSize())
		w.head = w.tail
	}
	if w.tail.pos == len(w.tail.nodes) {
		next := newWorklistChunk(w.effectiveChunkSize())
		w.tail.next = next
		w.tail = next
	}
	w.tail.nodes[w.tail.pos] = n
	w.tail.pos++
	w.length++
}

// popFront removes and returns the node at the front of the worklist.
// Reports ok=false ("end") on an empty worklist.
func (w *worklist) popFront() (n *Node, ok bool) {
	if w.head == nil {
		return nil, false
	}
	if w.head.readPos >= w.head.pos {
		if w.head == w.tail {
			w.head.pos = 0
			w.head.readPos = 0
			return nil, false
		}
		old := w.head
		w.head = w.head.next
		returnWorklistChunk(old)
		if w.head.readPos >= w.head.pos {
			return nil, false
		}
	}

	n = w.head.nodes[w.head.readPos]
	w.head.nodes[w.head.readPos] = nil
	w.head.readPos++
	w.length--

	if w.head.readPos >= w.head.pos {
		if w.head == w.tail {
			w.head.pos = 0
			w.head.readPos = 0
		} else {
			old := w.head
			w.head = w.head.next
			returnWorklistChunk(old)
		}
	}

	return n, true
}

// len returns the number of nodes currently queued.
func (w *worklist) len() int {
	return w.length
}

// drop releases every chunk still held by the worklist back to the pool,
// without visiting their contents. Used when a traversal is abandoned
// early, e.g. Join returning on context cancellation before its BFS has
// drained, so the remaining chunks go back to the pool instead of to the
// garbage collector.
func (w *worklist) drop() {
	for c := w.head; c != nil; {
		next := c.next
		returnWorklistChunk(c)
		c = next
	}
	w.head = nil
	w.tail = nil
	w.length = 0
}
