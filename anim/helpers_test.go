package anim

import (
	"math"
	"testing"

	"github.com/arloliu/enbaya/internal/encoding"
	"github.com/arloliu/enbaya/pose"
	"github.com/arloliu/enbaya/section"
	"github.com/stretchr/testify/require"
)

// buildStream assembles a stream from raw sections, filling in the lengths.
func buildStream(h section.StreamHeader, secs map[section.SectionID][]byte) []byte {
	for id := range h.Lengths {
		h.Lengths[id] = uint32(len(secs[section.SectionID(id)]))
	}

	data := h.Bytes()
	for _, id := range section.PlacementOrder() {
		data = append(data, secs[id]...)
	}

	return data
}

func testHeader(tracks uint32, rate uint32, duration float32) section.StreamHeader {
	return section.StreamHeader{
		Signature:         section.SignatureA,
		TrackCount:        tracks,
		QuantizationScale: 1.0 / 1024,
		Duration:          duration,
		SampleRate:        rate,
	}
}

func axisAngle(x, y, z, angle float64) pose.Quat {
	s := math.Sin(angle / 2)
	return pose.Quat{X: float32(x * s), Y: float32(y * s), Z: float32(z * s), W: float32(math.Cos(angle / 2))}
}

// walkKeys describes a bone turning about Z while moving along a curve.
func walkKeys() []pose.Sample {
	return []pose.Sample{
		{Quat: axisAngle(0, 0, 1, 0), Trans: pose.Vec3{X: 0, Y: 0, Z: 0}, Time: 0},
		{Quat: axisAngle(0, 0, 1, math.Pi/3), Trans: pose.Vec3{X: 0.5, Y: 1, Z: -0.25}, Time: 0.4},
		{Quat: axisAngle(0, 1, 0, math.Pi/2), Trans: pose.Vec3{X: 1, Y: 2, Z: -3}, Time: 1},
	}
}

// stepKeys holds still, then snaps and holds again.
func stepKeys() []pose.Sample {
	return []pose.Sample{
		{Quat: pose.IdentityQuat(), Trans: pose.Vec3{X: 2}, Time: 0},
		{Quat: pose.IdentityQuat(), Trans: pose.Vec3{X: 2}, Time: 0.3},
		{Quat: axisAngle(1, 0, 0, -math.Pi/4), Trans: pose.Vec3{X: 2, Y: -1}, Time: 0.5},
		{Quat: axisAngle(1, 0, 0, -math.Pi/4), Trans: pose.Vec3{X: 2, Y: -1}, Time: 1},
	}
}

func staticKeys() []pose.Sample {
	return []pose.Sample{{Quat: axisAngle(0, 1, 0, 1), Trans: pose.Vec3{X: -1, Y: 0.5, Z: 7}}}
}

// encodeTestStream encodes three tracks over one second at 30 samples per second.
func encodeTestStream(t *testing.T, opts ...EncoderOption) ([]byte, *Encoder) {
	t.Helper()

	enc, err := NewEncoder(1, opts...)
	require.NoError(t, err)
	require.NoError(t, enc.AddTrack(walkKeys()))
	require.NoError(t, enc.AddTrack(stepKeys()))
	require.NoError(t, enc.AddTrack(staticKeys()))

	data, err := enc.Finish()
	require.NoError(t, err)

	return data, enc
}

// snapshot captures every piece of decode state except the step mode and the
// committed slots.
type snapshot struct {
	deltas     encoding.Cursor
	runs       encoding.Cursor
	nextChange uint32
	prevChange uint32
	sample     int
	current    float32
	previous   float32
	selector   int
	acc        [][section.ComponentCount]float32
	flags      []uint8
}

func takeSnapshot(c *Context) snapshot {
	s := snapshot{
		deltas:     c.deltas.Cursor(),
		runs:       c.sched.runs.Cursor(),
		nextChange: c.sched.nextChange,
		prevChange: c.sched.prevChange,
		sample:     c.currentSample,
		current:    c.currentTime,
		previous:   c.previousTime,
		selector:   c.selector,
	}
	for _, tr := range c.tracks {
		s.acc = append(s.acc, tr.acc)
		s.flags = append(s.flags, tr.flags)
	}

	return s
}

func requireSampleNear(t *testing.T, want, got pose.Sample, delta float64) {
	t.Helper()

	wq := want.Quat
	if wq.Dot(got.Quat) < 0 {
		wq = wq.Neg()
	}
	require.InDelta(t, wq.X, got.Quat.X, delta)
	require.InDelta(t, wq.Y, got.Quat.Y, delta)
	require.InDelta(t, wq.Z, got.Quat.Z, delta)
	require.InDelta(t, wq.W, got.Quat.W, delta)
	require.InDelta(t, want.Trans.X, got.Trans.X, delta)
	require.InDelta(t, want.Trans.Y, got.Trans.Y, delta)
	require.InDelta(t, want.Trans.Z, got.Trans.Z, delta)
}
