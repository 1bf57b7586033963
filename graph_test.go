package straph

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewGraph_MetricsDisabledByDefault(t *testing.T) {
	g := NewGraph()
	require.Nil(t, g.Metrics())
}

func TestNewGraph_MetricsEnabled(t *testing.T) {
	g := NewGraph(WithMetrics(true))
	require.NotNil(t, g.Metrics())
}

func TestGraph_MakeNodeIsInactiveAndUnregistered(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(func(*Node) (any, error) { return nil, nil })

	require.Equal(t, Inactive, n.Status())
	require.Empty(t, g.entries)
}

func TestGraph_AddNodeRegistersEntry(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)
	g.AddNode(n)

	require.Len(t, g.entries, 1)
	require.Same(t, n, g.entries[0])
}

func TestGraph_LogFallsBackToGlobalLogger(t *testing.T) {
	g := NewGraph()
	require.NotNil(t, g.log())

	custom := NewNoOpLogger()
	g2 := NewGraph(WithLogger(custom))
	require.Same(t, Logger(custom), g2.log())
}

func TestGraph_WithLoggerReceivesSchedulerDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	custom := NewWriterLogger(LevelDebug, &buf)
	g := NewGraph(WithLogger(custom))

	n := g.MakeNode(runOne("done", nil))
	g.AddNode(n)

	require.NoError(t, g.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, g.Join(ctx))

	require.Contains(t, buf.String(), "node activated")
	require.Contains(t, buf.String(), "node terminated")
	require.Contains(t, buf.String(), "graph rewound")
}

func TestGraph_WithLoggerDoesNotLeakToGlobalLogger(t *testing.T) {
	var globalBuf bytes.Buffer
	SetStructuredLogger(NewWriterLogger(LevelDebug, &globalBuf))
	defer SetStructuredLogger(nil)

	var customBuf bytes.Buffer
	g := NewGraph(WithLogger(NewWriterLogger(LevelDebug, &customBuf)))
	n := g.MakeNode(runOne(nil, nil))
	g.AddNode(n)

	require.NoError(t, g.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, g.Join(ctx))

	require.NotEmpty(t, customBuf.String())
	require.Empty(t, globalBuf.String(), "a Graph-scoped logger must fully replace the global one, not share it")
}
