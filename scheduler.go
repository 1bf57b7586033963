package straph

import (
	"context"
	"time"
)

// startResult is the outcome of tryStart's rendezvous check.
type startResult int

const (
	// startSkipped means the node was not Inactive — the sequential
	// propagation path re-walking an already-Active node.
	startSkipped startResult = iota
	// startNotReady means start_requests has not yet reached parents.
	startNotReady
	// startStarted means bring-up ran and the node's worker goroutine was
	// spawned.
	startStarted
)

// tryStart executes the node's rendezvous check under its lock: a status
// guard, the start-request count, and — on the k-th distinct arrival —
// bring-up.
func tryStart(n *Node) startResult {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.state.Load() != Inactive {
		return startSkipped
	}

	n.startRequests++
	if n.startRequests < n.parents {
		return startNotReady
	}

	if !bringUp(n) {
		return startSkipped
	}
	return startStarted
}

// bringUp activates a node: allocates input cursors over its upstream
// buffers, marks its output buffers Active, transitions the node's own
// status to Active, and spawns its worker goroutine. Allocation in this
// Go port cannot itself fail short of the OOM killer (see DESIGN.md), so
// — unlike the source this is grounded on — there is no rollback path.
//
// The Inactive→Active transition is a TryTransition, not a bare Store:
// tryStart's own Inactive check (above) and this transition are the two
// halves of one rendezvous decision, and collapsing them into a single
// CAS means that decision no longer depends solely on n.mu being held
// the whole time between them.
func bringUp(n *Node) bool {
	for _, s := range n.inputs {
		s.activate()
	}
	for _, out := range n.outputs {
		if cb, ok := out.buffer.(*CircularBuffer); ok {
			cb.setReaderCount(out.readerCount)
		}
		out.buffer.SetStatus(BufActive)
	}

	if !n.state.TryTransition(Inactive, Active) {
		return false
	}

	n.done = make(chan struct{})
	n.activatedAt = time.Now()

	if n.graph.metrics != nil {
		n.graph.metrics.NodesActivated.Add(1)
	}
	logNodeActivated(n)

	go threadWrapper(n)
	return true
}

// bringDown tears a node down once its entry routine has returned:
// status moves to Terminated, every input cursor is closed and the raw
// buffer reference restored, and every output buffer is set Inactive —
// waking any reader blocked on EOF.
func bringDown(n *Node) {
	n.state.Store(Terminated)
	for _, s := range n.inputs {
		s.deactivate()
	}
	for _, out := range n.outputs {
		out.buffer.SetStatus(BufInactive)
	}
}

// threadWrapper is a node's worker goroutine entry point: run the entry
// routine, bring the node down, propagate activation along sequential
// neighbors, and only then close done, so that a Join observing done
// also observes every sequential neighbor this node brought up.
func threadWrapper(n *Node) {
	if n.graph.metrics != nil {
		n.graph.metrics.recordActivationLatency(time.Since(n.activatedAt))
	}

	n.ret, n.err = n.entry(n)

	bringDown(n)

	if n.graph.metrics != nil {
		n.graph.metrics.NodesTerminated.Add(1)
	}
	logNodeTerminated(n, n.err)

	w := newWorklist(n.graph.worklistChunkSize)
	for _, nb := range n.neighbors {
		if nb.mode == Seq {
			w.pushBack(nb.target)
		}
	}
	runStarter(w)
	close(n.done)
}

// runStarter drains worklist w, trying to start each node and enqueueing
// its parallel neighbors on success. Sequential neighbors are never
// enqueued here — they are only ever walked by the thread-wrapper of the
// node that terminates.
func runStarter(w *worklist) {
	for {
		nd, ok := w.popFront()
		if !ok {
			return
		}
		if tryStart(nd) != startStarted {
			continue
		}
		for _, nb := range nd.neighbors {
			if nb.mode == Par {
				w.pushBack(nb.target)
			}
		}
	}
}

// Start enqueues every entry node and runs the starter over them.
// Precondition: every node in the graph is Inactive; the scheduler is
// not re-entrant on the same graph.
func (g *Graph) Start(ctx context.Context) error {
	for _, nd := range g.entries {
		if nd.state.Load() != Inactive {
			return ErrGraphRunning
		}
	}

	w := newWorklist(g.worklistChunkSize)
	for _, nd := range g.entries {
		w.pushBack(nd)
	}
	runStarter(w)
	return nil
}

// Join performs a BFS from the entries over all neighbors, joining each
// node's worker goroutine exactly once, storing its returned value, and
// marking it Joined — then rewinds the graph. If ctx is canceled before
// every node has terminated, Join returns early with ctx.Err(); the
// node goroutines are not preempted and the graph is left un-rewound,
// so a later Join call (with a fresh context) can finish draining them.
func (g *Graph) Join(ctx context.Context) error {
	visited := make(map[*Node]bool)
	w := newWorklist(g.worklistChunkSize)
	for _, nd := range g.entries {
		if !visited[nd] {
			visited[nd] = true
			w.pushBack(nd)
		}
	}

	for {
		nd, ok := w.popFront()
		if !ok {
			break
		}

		select {
		case <-nd.done:
		case <-ctx.Done():
			w.drop()
			return ctx.Err()
		}

		nd.state.Store(Joined)
		if g.metrics != nil {
			g.metrics.NodesJoined.Add(1)
		}

		for _, nb := range nd.neighbors {
			if !visited[nb.target] {
				visited[nb.target] = true
				w.pushBack(nb.target)
			}
		}
	}

	return g.Rewind()
}

// Rewind resets every reachable node to Inactive, every output buffer to
// Ready, and start_requests to zero, so the graph may be started again.
func (g *Graph) Rewind() error {
	visited := make(map[*Node]bool)
	w := newWorklist(g.worklistChunkSize)
	for _, nd := range g.entries {
		if !visited[nd] {
			visited[nd] = true
			w.pushBack(nd)
		}
	}

	for {
		nd, ok := w.popFront()
		if !ok {
			break
		}

		nd.mu.Lock()
		nd.state.Store(Inactive)
		nd.startRequests = 0
		nd.mu.Unlock()

		for _, out := range nd.outputs {
			out.buffer.rewind()
		}

		for _, nb := range nd.neighbors {
			if !visited[nb.target] {
				visited[nb.target] = true
				w.pushBack(nb.target)
			}
		}
	}

	logGraphRewind(g)
	return nil
}

// Destroy frees every node reachable from the entries via a two-pass
// mark-then-free walk, safe under cycles: pass one marks every node
// Doomed exactly once (neighbors are enqueued unconditionally; the
// Doomed guard alone prevents re-entry), pass two frees each marked
// node's owned resources.
func (g *Graph) Destroy() error {
	w := newWorklist(g.worklistChunkSize)
	for _, nd := range g.entries {
		w.pushBack(nd)
	}

	doomed := newWorklist(g.worklistChunkSize)
	for {
		nd, ok := w.popFront()
		if !ok {
			break
		}
		if nd.state.Load() == Doomed {
			continue
		}
		nd.state.Store(Doomed)
		doomed.pushBack(nd)
		for _, nb := range nd.neighbors {
			w.pushBack(nb.target)
		}
	}

	for {
		nd, ok := doomed.popFront()
		if !ok {
			break
		}
		for _, s := range nd.inputs {
			s.deactivate()
		}
		for _, out := range nd.outputs {
			out.buffer.destroy()
		}
		nd.neighbors = nil
		nd.outputs = nil
		nd.inputs = nil
	}

	g.entries = nil
	logGraphDestroy(g)
	return nil
}
