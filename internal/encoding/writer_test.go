package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeltaWriterRoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 2, 8, -2, -9, 9, -10, 127, -128,
		128, 135, 136, -129, -136, -137, 1000, -32768, 32767,
		32768, -32769, math.MaxInt32, math.MinInt32,
	}

	w := NewDeltaWriter()
	defer w.Release()
	for _, v := range values {
		w.Put(v)
	}
	require.Equal(t, len(values), w.Count())

	d := NewDeltaDecoder(w.Sections())
	for _, want := range values {
		got, err := d.Next()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	for i := len(values) - 1; i >= 0; i-- {
		got, err := d.Prev()
		require.NoError(t, err)
		require.Equal(t, values[i], got)
	}
	require.Equal(t, Cursor{}, d.Cursor())
}

func TestDeltaWriterWidths(t *testing.T) {
	tests := []struct {
		name  string
		v     int32
		nibs  int
		bytes [3]int
	}{
		{"crumb only", -1, 0, [3]int{}},
		{"nibble", 8, 1, [3]int{}},
		{"literal byte", 100, 1, [3]int{1, 0, 0}},
		{"biased byte", 131, 1, [3]int{1, 0, 0}},
		{"int16", 136, 1, [3]int{1, 2, 0}},
		{"int32", 40000, 1, [3]int{1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDeltaWriter()
			defer w.Release()
			w.Put(tt.v)

			crumbs, nibbles, i8, i16, i32 := w.Sections()
			require.Len(t, crumbs, 1)
			require.Len(t, nibbles, tt.nibs)
			require.Equal(t, tt.bytes, [3]int{len(i8), len(i16), len(i32)})
		})
	}
}

func TestInitWriterRoundTrip(t *testing.T) {
	values := []int32{0, 5, -128, 127, 128, -32768, 32767, 32768, math.MinInt32}

	w := NewInitWriter()
	defer w.Release()
	for _, v := range values {
		w.Put(v)
	}
	require.Equal(t, len(values), w.Count())

	crumbs, i8, i16, i32 := w.Sections()
	require.Len(t, crumbs, 3)
	require.Len(t, i8, 3)
	require.Len(t, i16, 2*3)
	require.Len(t, i32, 4*2)

	d := NewInitDecoder(crumbs, i8, i16, i32)
	for _, want := range values {
		got, err := d.Next()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRunWriterRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 255, 256, 65535, 65536, math.MaxUint32, 0}

	w := NewRunWriter()
	defer w.Release()
	for _, v := range values {
		w.Put(v)
	}

	d := NewRunDecoder(w.Sections())
	for _, want := range values {
		got, err := d.Next()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	for i := len(values) - 1; i >= 1; i-- {
		got, err := d.Step(Backward)
		require.NoError(t, err)
		require.Equal(t, values[i-1], got)
	}
}
