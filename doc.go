// Package straph executes user-defined computations as a directed graph of
// concurrent nodes connected by typed edges.
//
// # Architecture
//
// A [Graph] owns a set of entry [Node] references. Nodes are connected by
// execution edges ([RunMode] Par or Seq) that govern activation order, and
// by flow edges that route a byte stream from an output slot of one node to
// an input slot of another through a shared [OutputBuffer] — either a
// bounded [LinearBuffer] or an effectively unbounded, chunk-framed
// [CircularBuffer].
//
// [Graph.Start] walks entry nodes through the activation scheduler
// (rendezvous, bring-up, goroutine spawn); [Graph.Join] waits every
// goroutine to completion; [Graph.Rewind] resets a joined graph so it can
// run again; [Graph.Destroy] tears the whole graph down exactly once, safe
// even across cycles in the execution-edge graph.
//
// # Thread Safety
//
// Each activated node runs its entry routine on its own goroutine. Output
// buffers are single-writer/multi-reader: a node's own goroutine is the
// only writer of its output buffers, while any number of downstream nodes'
// goroutines may read concurrently. The worklist used internally by the
// scheduler during one traversal is not safe for concurrent use — it never
// needs to be, each traversal runs on a single goroutine.
//
// # Execution Model
//
// Execution edges carry a mode:
//   - Par: the downstream node may start as soon as the scheduler observes
//     it, racing with the upstream node's continued execution.
//   - Seq: the downstream node is only enqueued once the upstream node's
//     entry routine has returned and bring-down has completed.
//
// A node with multiple parents activates exactly once per run, on the
// arrival of its k-th distinct start request (the "rendezvous").
//
// # Usage
//
//	g := straph.NewGraph()
//	producer := g.MakeNode(func(n *straph.Node) (any, error) {
//	    _, err := n.Write(0, []byte("A"))
//	    return nil, err
//	})
//	consumer := g.MakeNode(func(n *straph.Node) (any, error) {
//	    buf := make([]byte, 1)
//	    _, err := n.Read(0, buf)
//	    return buf, err
//	})
//	_ = producer.SetBuffer(0, straph.BufferLinear, 1)
//	_ = producer.Link(consumer, straph.Seq)
//	_ = producer.AddFlow(0, consumer, 0)
//	g.AddNode(producer)
//
//	if err := g.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.Join(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Types
//
// Operations report failure via the sentinel errors in errors.go
// ([ErrInvalidArgument], [ErrNotFound], [ErrSynchronization],
// [ErrNotInactive], [ErrGraphRunning]), wrapped in a [*SlotError] when the
// failure is scoped to one node's slot, so callers can both
// [errors.Is] against the sentinel and recover the offending node/slot.
package straph
