package section

import (
	"testing"

	"github.com/arloliu/enbaya/errs"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	h := newTestHeader()
	h.Lengths[InitI16] = 6
	h.Lengths[DeltaI16] = 2
	h.Lengths[ParamU16] = 4

	var total int
	for _, l := range h.Lengths {
		total += int(l)
	}

	layout, err := NewLayout(h, HeaderSize+total)
	require.NoError(t, err)
	require.Equal(t, HeaderSize+total, layout.End())

	t.Run("Placement order", func(t *testing.T) {
		offset := HeaderSize
		for _, id := range PlacementOrder() {
			d := layout.Descriptor(id)
			require.Equal(t, id, d.ID)
			require.Equal(t, offset, d.Offset, "section %s", id)
			require.Equal(t, int(h.Lengths[id]), d.Length)
			require.Equal(t, id.Width(), d.Width)
			offset += d.Length
		}
	})

	t.Run("Widest sections first", func(t *testing.T) {
		require.Equal(t, HeaderSize, layout.Descriptor(InitI32).Offset)
		require.Less(t, layout.Descriptor(ParamU32).Offset, layout.Descriptor(InitI16).Offset)
		require.Less(t, layout.Descriptor(ParamU16).Offset, layout.Descriptor(InitCrumbs).Offset)
	})

	t.Run("Element counts", func(t *testing.T) {
		require.Equal(t, 3, layout.Descriptor(InitI16).Count())
		require.Equal(t, int(h.Lengths[InitI32])/4, layout.Descriptor(InitI32).Count())
	})

	t.Run("Slice is a view", func(t *testing.T) {
		data := make([]byte, layout.End())
		view := layout.Slice(data, TrackFlags)
		require.Len(t, view, 3)

		view[0] = 0x7F
		require.Equal(t, byte(0x7F), data[layout.Descriptor(TrackFlags).Offset])
	})
}

func TestNewLayout_Errors(t *testing.T) {
	t.Run("Section exceeds buffer", func(t *testing.T) {
		h := newTestHeader()
		_, err := NewLayout(h, HeaderSize+10)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Misaligned length", func(t *testing.T) {
		h := newTestHeader()
		h.Lengths[DeltaI32] = 5
		_, err := NewLayout(h, 1<<16)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Too few track flags", func(t *testing.T) {
		h := newTestHeader()
		h.TrackCount = 4
		_, err := NewLayout(h, 1<<16)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("Huge lengths do not wrap", func(t *testing.T) {
		h := newTestHeader()
		h.Lengths[InitI32] = 0xFFFFFFFC
		h.Lengths[DeltaI32] = 0xFFFFFFFC
		_, err := NewLayout(h, 1<<16)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})
}

func TestSectionID(t *testing.T) {
	require.Equal(t, "delta nibbles", DeltaNibbles.String())
	require.Equal(t, "unknown", SectionID(SectionCount).String())
	require.Equal(t, 0, SectionID(SectionCount).Width())
	require.Equal(t, 4, ParamU32.Width())
}
