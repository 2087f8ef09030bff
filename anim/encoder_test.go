package anim

import (
	"math"
	"testing"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/pose"
	"github.com/arloliu/enbaya/section"
	"github.com/stretchr/testify/require"
)

func requireRoundTrip(t *testing.T, data []byte, enc *Encoder, tracks [][]pose.Sample, maxErr float32) {
	t.Helper()

	c, err := New(data)
	require.NoError(t, err)
	defer c.Release()

	sps := c.SecondsPerSample()
	duration := c.Duration()
	last := enc.LastSample()
	want := func(j, k int) pose.Sample {
		return enc.target(tracks[j], min(float32(k)*sps, duration))
	}

	for k := 0; k <= last; k++ {
		at := float32(k) * sps
		require.NoError(t, c.SetTime(at))
		require.Equal(t, k, c.CurrentSample())

		for j := range tracks {
			got, err := c.Sample(at, j, format.InterpLerp, format.InterpLerp)
			require.NoError(t, err)
			requireSampleNear(t, want(j, k), got, float64(maxErr))
		}
	}

	// scrub back over the same samples; each lands as the earlier slot
	for k := last - 1; k >= 1; k-- {
		at := float32(k) * sps
		require.NoError(t, c.SetTime(at))
		require.Equal(t, k+1, c.CurrentSample())

		for j := range tracks {
			got, err := c.Sample(at, j, format.InterpLerp, format.InterpLerp)
			require.NoError(t, err)
			requireSampleNear(t, want(j, k), got, float64(maxErr))
		}
	}
}

func TestEncoder_RoundTrip(t *testing.T) {
	tracks := [][]pose.Sample{walkKeys(), stepKeys(), staticKeys()}

	tests := []struct {
		name   string
		opts   []EncoderOption
		maxErr float32
	}{
		{"defaults", nil, DefaultQuantizationError},
		{"coarse", []EncoderOption{WithQuantizationError(0.01), WithSampleRate(24)}, 0.01},
		{"fine lerp", []EncoderOption{
			WithQuantizationError(0.0001),
			WithQuatInterpolation(format.InterpLerp),
			WithSignature(section.SignatureA),
		}, 0.0001},
		{"stepped keys", []EncoderOption{
			WithQuatInterpolation(format.InterpNone),
			WithTransInterpolation(format.InterpNone),
			WithSampleRate(60),
		}, DefaultQuantizationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewEncoder(1, tt.opts...)
			require.NoError(t, err)
			for _, keys := range tracks {
				require.NoError(t, enc.AddTrack(keys))
			}
			require.Equal(t, len(tracks), enc.TrackCount())

			data, err := enc.Finish()
			require.NoError(t, err)
			requireRoundTrip(t, data, enc, tracks, tt.maxErr)
		})
	}
}

func TestEncoder_Header(t *testing.T) {
	data, enc := encodeTestStream(t)

	h, err := section.ParseStreamHeader(data)
	require.NoError(t, err)
	require.Equal(t, section.SignatureB, h.Signature)
	require.Equal(t, uint32(3), h.TrackCount)
	require.Equal(t, enc.Step(), h.QuantizationScale)
	require.Equal(t, float32(DefaultQuantizationError/4), h.QuantizationScale)
	require.Equal(t, float32(1), h.Duration)
	require.Equal(t, uint32(DefaultSampleRate), h.SampleRate)
	require.Equal(t, uint32(3), h.Lengths[section.TrackFlags])

	layout, err := section.NewLayout(h, len(data))
	require.NoError(t, err)
	require.Equal(t, len(data), layout.End())

	require.Equal(t, 30, enc.LastSample())
}

func TestEncoder_Deterministic(t *testing.T) {
	a, _ := encodeTestStream(t)
	b, _ := encodeTestStream(t)
	require.Equal(t, a, b)
}

func TestEncoder_StaticTrackIsCheap(t *testing.T) {
	enc, err := NewEncoder(2, WithSampleRate(30))
	require.NoError(t, err)
	require.NoError(t, enc.AddTrack([]pose.Sample{{Quat: pose.IdentityQuat(), Trans: pose.Vec3{X: 1}}}))

	data, err := enc.Finish()
	require.NoError(t, err)

	h, err := section.ParseStreamHeader(data)
	require.NoError(t, err)
	require.Zero(t, h.Lengths[section.DeltaCrumbs])
	require.Equal(t, []byte{0}, data[len(data)-1:], "no component is ever active")

	c, err := New(data)
	require.NoError(t, err)
	defer c.Release()
	require.NoError(t, c.SetTime(2))
	s, err := c.Sample(2, 0, format.InterpSlerp, format.InterpLerp)
	require.NoError(t, err)
	require.InDelta(t, 1, s.Trans.X, 1e-6)
	require.InDelta(t, 1, s.Quat.W, 1e-6)
}

func TestEncoder_EdgeShapes(t *testing.T) {
	t.Run("No tracks", func(t *testing.T) {
		enc, err := NewEncoder(1)
		require.NoError(t, err)
		data, err := enc.Finish()
		require.NoError(t, err)

		c, err := New(data)
		require.NoError(t, err)
		defer c.Release()
		require.NoError(t, c.SetTime(0.5))
		require.Equal(t, 0, c.TrackCount())
	})

	t.Run("Zero duration", func(t *testing.T) {
		enc, err := NewEncoder(0)
		require.NoError(t, err)
		require.Equal(t, 0, enc.LastSample())
		require.NoError(t, enc.AddTrack(walkKeys()))
		data, err := enc.Finish()
		require.NoError(t, err)

		res, err := Process(data, 30, format.InterpSlerp, format.InterpLerp)
		require.NoError(t, err)
		require.Equal(t, 1, res.Frames)
		s, err := res.Buffer.Sample(0, 0)
		require.NoError(t, err)
		requireSampleNear(t, walkKeys()[0], s, DefaultQuantizationError)
	})
}

func TestEncoder_Errors(t *testing.T) {
	t.Run("Duration", func(t *testing.T) {
		_, err := NewEncoder(-1)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
		_, err = NewEncoder(float32(math.Inf(1)))
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("Options", func(t *testing.T) {
		for _, opt := range []EncoderOption{
			WithSampleRate(0),
			WithQuantizationError(0),
			WithQuantizationError(float32NaN()),
			WithQuantizationError(float32(math.Inf(1))),
			WithQuatInterpolation(format.InterpMethod(7)),
			WithTransInterpolation(format.InterpMethod(7)),
			WithSignature(0x12345678),
		} {
			_, err := NewEncoder(1, opt)
			require.ErrorIs(t, err, errs.ErrInvalidOption)
		}
	})

	t.Run("Keys", func(t *testing.T) {
		enc, err := NewEncoder(1)
		require.NoError(t, err)

		require.ErrorIs(t, enc.AddTrack(nil), errs.ErrInvalidArgument)

		unordered := walkKeys()
		unordered[0].Time = 0.9
		require.ErrorIs(t, enc.AddTrack(unordered), errs.ErrInvalidArgument)

		nan := walkKeys()
		nan[1].Trans.Y = float32NaN()
		require.ErrorIs(t, enc.AddTrack(nan), errs.ErrInvalidArgument)

		require.Equal(t, 0, enc.TrackCount())
	})

	t.Run("Out of range", func(t *testing.T) {
		enc, err := NewEncoder(1, WithQuantizationError(1e-6))
		require.NoError(t, err)
		require.NoError(t, enc.AddTrack([]pose.Sample{{Quat: pose.IdentityQuat(), Trans: pose.Vec3{X: 1e6}}}))

		_, err = enc.Finish()
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}
