package straph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_SetBufferRequiresInactive(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)
	n.state.Store(Active)

	err := n.SetBuffer(0, BufferLinear, 16)
	require.ErrorIs(t, err, ErrNotInactive)
}

func TestNode_SetBufferRejectsNegativeSlot(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	err := n.SetBuffer(-1, BufferLinear, 16)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNode_SetBufferNoneClears(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	require.NoError(t, n.SetBuffer(0, BufferLinear, 16))
	require.Contains(t, n.outputs, 0)

	require.NoError(t, n.SetBuffer(0, BufferNone, 0))
	require.NotContains(t, n.outputs, 0)
}

func TestNode_SetBufferRejectsUnknownVariant(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	err := n.SetBuffer(0, BufferVariant(99), 16)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNode_SetBufferCircularInstallsBlockHook(t *testing.T) {
	g := NewGraph(WithMetrics(true))
	n := g.MakeNode(nil)

	require.NoError(t, n.SetBuffer(0, BufferCircular, 128))
	cb, ok := n.outputs[0].buffer.(*CircularBuffer)
	require.True(t, ok)
	require.NotNil(t, cb.blockHook)

	cb.blockHook()
	require.Equal(t, int64(1), g.metrics.CBWriterBlocked.Load())
}

func TestNode_LinkRequiresBothInactive(t *testing.T) {
	g := NewGraph()
	a := g.MakeNode(nil)
	b := g.MakeNode(nil)
	b.state.Store(Active)

	err := a.Link(b, Par)
	require.ErrorIs(t, err, ErrNotInactive)
}

func TestNode_LinkIncrementsParentsAndRecordsNeighbor(t *testing.T) {
	g := NewGraph()
	a := g.MakeNode(nil)
	b := g.MakeNode(nil)

	require.NoError(t, a.Link(b, Seq))
	require.Equal(t, 1, b.parents)
	require.Len(t, a.neighbors, 1)
	require.Same(t, b, a.neighbors[0].target)
	require.Equal(t, Seq, a.neighbors[0].mode)
}

func TestNode_AddFlowRequiresConfiguredOutputSlot(t *testing.T) {
	g := NewGraph()
	a := g.MakeNode(nil)
	b := g.MakeNode(nil)

	err := a.AddFlow(0, b, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNode_AddFlowBindsAndIncrementsReaderCount(t *testing.T) {
	g := NewGraph()
	a := g.MakeNode(nil)
	b := g.MakeNode(nil)
	require.NoError(t, a.SetBuffer(0, BufferLinear, 16))

	require.NoError(t, a.AddFlow(0, b, 0))
	require.Equal(t, 1, a.outputs[0].readerCount)
	require.Equal(t, bindingBound, b.inputs[0].kind)
}

func TestNode_AddFlowRebindDecrementsPreviousOwner(t *testing.T) {
	g := NewGraph()
	a1 := g.MakeNode(nil)
	a2 := g.MakeNode(nil)
	b := g.MakeNode(nil)
	require.NoError(t, a1.SetBuffer(0, BufferLinear, 16))
	require.NoError(t, a2.SetBuffer(0, BufferLinear, 16))

	require.NoError(t, a1.AddFlow(0, b, 0))
	require.Equal(t, 1, a1.outputs[0].readerCount)

	require.NoError(t, a2.AddFlow(0, b, 0))
	require.Equal(t, 0, a1.outputs[0].readerCount, "rebinding must release the previous owner's count")
	require.Equal(t, 1, a2.outputs[0].readerCount)
}

func TestNode_WriteUnboundSlotIsDevNullSemantics(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	payload := []byte("discarded")
	written, err := n.Write(7, payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), written)
}

func TestNode_ReadUnboundSlotIsZeroNotError(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	got, err := n.Read(0, make([]byte, 8))
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestNode_WriteBoundSlotReachesBuffer(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)
	require.NoError(t, n.SetBuffer(0, BufferLinear, 16))

	written, err := n.Write(0, []byte("payload"))
	require.NoError(t, err)
	require.Equal(t, len("payload"), written)
}

func TestNode_SetBufferStatusRequiresConfiguredSlot(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)

	err := n.SetBufferStatus(0, BufActive)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNode_SetBufferStatusPropagates(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(nil)
	require.NoError(t, n.SetBuffer(0, BufferLinear, 16))

	require.NoError(t, n.SetBufferStatus(0, BufActive))
	require.Equal(t, BufActive, n.outputs[0].buffer.Status())
}

func TestNode_ResultAndErrAfterEntry(t *testing.T) {
	g := NewGraph()
	n := g.MakeNode(func(*Node) (any, error) { return 42, nil })
	n.ret, n.err = n.entry(n)

	require.Equal(t, 42, n.Result())
	require.NoError(t, n.Err())
}
