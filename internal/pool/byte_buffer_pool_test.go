package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("ab"))
	require.NoError(t, bb.WriteByte('c'))
	n, err := bb.Write([]byte("def"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.Equal(t, []byte("abcdef"), bb.Bytes())

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), written)
	require.Equal(t, "abcdef", out.String())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("Sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.Grow(16)
		require.Equal(t, 32, cap(bb.B))
	})

	t.Run("Small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("12345678"))
		bb.Grow(1)
		require.Equal(t, 8+SectionBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("12345678"), bb.Bytes())
	})

	t.Run("Large request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(SectionBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), SectionBufferDefaultSize*3)
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("Get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(128, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())

		bb.MustWrite([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("Put nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(128, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("Oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := NewByteBuffer(64)
		require.NotPanics(t, func() { p.Put(bb) })
	})

	t.Run("Default pools", func(t *testing.T) {
		sb := GetSectionBuffer()
		require.NotNil(t, sb)
		PutSectionBuffer(sb)

		st := GetStreamBuffer()
		require.NotNil(t, st)
		PutStreamBuffer(st)
	})
}
