package anim

import (
	"fmt"
	"math"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/pose"
)

// Sample returns the pose of a track at time t inside the current interval.
//
// Before the first SetTime, and after a failed one, the identity sample is returned. While the step mode is
// unset the newest committed sample is returned verbatim. Otherwise the two
// committed samples are blended by where t falls between their times, clamped to
// the interval.
//
// Parameters:
//   - t: Query time in seconds, normally the time last passed to SetTime
//   - trackIdx: Track index in [0, TrackCount)
//   - quatMethod: Rotation interpolation
//   - transMethod: Translation interpolation; InterpSlerp behaves as InterpLerp
//
// Returns:
//   - pose.Sample: Interpolated rotation, translation and time
//   - error: ErrInvalidTrack, ErrInvalidArgument or ErrReleased
func (c *Context) Sample(t float32, trackIdx int, quatMethod, transMethod format.InterpMethod) (pose.Sample, error) {
	if err := c.checkLive(); err != nil {
		return pose.Sample{}, err
	}
	if trackIdx < 0 || trackIdx >= len(c.tracks) {
		return pose.Sample{}, fmt.Errorf("%w: %d of %d", errs.ErrInvalidTrack, trackIdx, len(c.tracks))
	}
	if !quatMethod.Valid() || !transMethod.Valid() {
		return pose.Sample{}, fmt.Errorf("%w: interpolation %d/%d", errs.ErrInvalidArgument, quatMethod, transMethod)
	}
	if math.IsNaN(float64(t)) {
		return pose.Sample{}, fmt.Errorf("%w: time is NaN", errs.ErrInvalidArgument)
	}

	if c.currentSample < 0 {
		return pose.IdentitySample(), nil
	}

	tr := &c.tracks[trackIdx]
	if c.mode == ModeUnset {
		return tr.slots[c.selector^1], nil
	}

	x := tr.slots[c.selector]
	y := tr.slots[c.selector^1]
	blend := (t - c.previousTime) / (c.currentTime - c.previousTime)

	return pose.Interpolate(x, y, blend, quatMethod, transMethod), nil
}
