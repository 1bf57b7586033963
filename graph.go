package straph

// Graph ("straph") holds an ordered sequence of entry node references and
// anchors start/join/rewind/destroy. Invariant: every node reachable from
// at least one entry participates in start, join and destroy.
type Graph struct {
	entries []*Node

	logger  Logger
	metrics *Metrics

	worklistChunkSize int
}

// NewGraph constructs an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	cfg, err := resolveGraphOptions(opts)
	if err != nil {
		// Every GraphOption in this package is infallible; resolveGraphOptions
		// only returns an error to leave room for a future fallible option.
		cfg = &graphOptions{worklistChunkSize: worklistChunkSize}
	}

	g := &Graph{
		logger:            cfg.logger,
		worklistChunkSize: cfg.worklistChunkSize,
	}
	if cfg.metricsEnabled {
		g.metrics = &Metrics{}
	}
	return g
}

// MakeNode constructs an Inactive node running entry, applying any
// NodeOption. The node is not yet part of the graph: call AddNode to
// register it as an entry.
func (g *Graph) MakeNode(entry func(*Node) (any, error), opts ...NodeOption) *Node {
	cfg, err := resolveNodeOptions(opts)
	if err != nil {
		cfg = &nodeOptions{}
	}

	n := newNode(g, entry)
	for slot, size := range cfg.defaultCapacity {
		_ = n.SetBuffer(slot, BufferLinear, size)
	}
	return n
}

// AddNode appends n to the graph's entries.
func (g *Graph) AddNode(n *Node) {
	g.entries = append(g.entries, n)
}

// Metrics returns the graph's metrics collector, or nil if WithMetrics
// was not enabled at construction.
func (g *Graph) Metrics() *Metrics {
	return g.metrics
}

func (g *Graph) log() Logger {
	if g.logger != nil {
		return g.logger
	}
	return getGlobalLogger()
}
