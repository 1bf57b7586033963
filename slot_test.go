package straph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputSlot_UnboundReadIsZeroNotError(t *testing.T) {
	var s inputSlot
	buf := make([]byte, 8)
	n, err := s.read(buf)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestInputSlot_BindActivateDeactivate(t *testing.T) {
	lb := NewLinearBuffer(16)
	out := &outputSlot{buffer: lb}

	var s inputSlot
	s.bind(out)
	require.Equal(t, bindingBound, s.kind)
	require.Same(t, out, s.owner)

	// Reading before activation still returns zero, not an error.
	n, err := s.read(make([]byte, 4))
	require.NoError(t, err)
	require.Equal(t, 0, n)

	s.activate()
	require.Equal(t, bindingCursor, s.kind)
	require.NotNil(t, s.cursor)

	_, err = lb.Write([]byte("data"))
	require.NoError(t, err)
	lb.SetStatus(BufInactive)

	got, err := s.read(make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, 4, got)

	s.deactivate()
	require.Equal(t, bindingBound, s.kind)
	require.Nil(t, s.cursor)

	// Deactivating twice is a no-op.
	s.deactivate()
	require.Equal(t, bindingBound, s.kind)
}

func TestInputSlot_ActivateNoOpWhenUnbound(t *testing.T) {
	var s inputSlot
	s.activate()
	require.Equal(t, bindingUnbound, s.kind)
}

func TestOutputSlot_ReaderCountBookkeeping(t *testing.T) {
	lb := NewLinearBuffer(8)
	out := &outputSlot{buffer: lb}
	require.Equal(t, 0, out.readerCount)

	var a, b inputSlot
	a.bind(out)
	out.readerCount++
	b.bind(out)
	out.readerCount++
	require.Equal(t, 2, out.readerCount)
}
