// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package straph

// graphOptions holds configuration resolved from GraphOption values at
// NewGraph time.
type graphOptions struct {
	logger            Logger
	metricsEnabled    bool
	worklistChunkSize int
}

// GraphOption configures a Graph at construction time.
type GraphOption interface {
	applyGraph(*graphOptions) error
}

type graphOptionImpl struct {
	applyGraphFunc func(*graphOptions) error
}

func (o *graphOptionImpl) applyGraph(opts *graphOptions) error {
	return o.applyGraphFunc(opts)
}

// WithLogger attaches a Logger to this Graph specifically, overriding the
// package-level global logger for diagnostics emitted while running it.
func WithLogger(l Logger) GraphOption {
	return &graphOptionImpl{func(opts *graphOptions) error {
		opts.logger = l
		return nil
	}}
}

// WithMetrics enables runtime metrics collection on the Graph. When
// enabled, metrics are accessible via Graph.Metrics(). Disabled by
// default: zero atomic increments on the activation/termination hot path.
func WithMetrics(enabled bool) GraphOption {
	return &graphOptionImpl{func(opts *graphOptions) error {
		opts.metricsEnabled = enabled
		return nil
	}}
}

// WithWorklistChunkSize tunes the chunk size used by the FIFO worklist for
// scheduler traversals on this Graph. Mainly useful for tests exercising
// the chunk boundary; the default suits graphs from a handful to a few
// hundred nodes.
func WithWorklistChunkSize(n int) GraphOption {
	return &graphOptionImpl{func(opts *graphOptions) error {
		opts.worklistChunkSize = n
		return nil
	}}
}

func resolveGraphOptions(opts []GraphOption) (*graphOptions, error) {
	cfg := &graphOptions{
		worklistChunkSize: worklistChunkSize,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyGraph(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// nodeOptions holds configuration resolved from NodeOption values at
// MakeNode time.
type nodeOptions struct {
	defaultCapacity map[int]int
}

// NodeOption configures a Node at construction time.
type NodeOption interface {
	applyNode(*nodeOptions) error
}

type nodeOptionImpl struct {
	applyNodeFunc func(*nodeOptions) error
}

func (o *nodeOptionImpl) applyNode(opts *nodeOptions) error {
	return o.applyNodeFunc(opts)
}

// WithDefaultOutputCapacity pre-sizes a linear output buffer of n bytes at
// the given slot when the node is created, a convenience over a later
// SetBuffer call. It does not pick a variant other than Linear; use
// SetBuffer directly for a circular buffer.
func WithDefaultOutputCapacity(slot int, n int) NodeOption {
	return &nodeOptionImpl{func(opts *nodeOptions) error {
		if opts.defaultCapacity == nil {
			opts.defaultCapacity = make(map[int]int)
		}
		opts.defaultCapacity[slot] = n
		return nil
	}}
}

func resolveNodeOptions(opts []NodeOption) (*nodeOptions, error) {
	cfg := &nodeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyNode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
