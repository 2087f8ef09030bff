package anim

import (
	"fmt"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/internal/encoding"
	"github.com/arloliu/enbaya/pose"
	"github.com/arloliu/enbaya/section"
)

// initTracks decodes the absolute first sample of every track into both slots and
// loads the first active flags.
func (c *Context) initTracks() error {
	if len(c.flags) < len(c.tracks) {
		return fmt.Errorf("%w: %d track flags for %d tracks", errs.ErrMalformedStream, len(c.flags), len(c.tracks))
	}

	c.inits.Rewind()
	for i := range c.tracks {
		tr := &c.tracks[i]
		for j := range tr.acc {
			v, err := c.inits.Next()
			if err != nil {
				return err
			}
			tr.acc[j] = float32(v)
		}
	}

	scale := c.header.QuantizationScale
	for i := range c.tracks {
		tr := &c.tracks[i]
		first := initialSample(tr.acc, scale)
		tr.slots = [2]pose.Sample{first, first}
		tr.acc = [section.ComponentCount]float32{}
		tr.flags = c.flags[i]
	}
	c.selector = 0

	return nil
}

// applyDeltas adds (forward) or removes (backward) one sample's worth of deltas
// under the current active flags.
func (c *Context) applyDeltas(dir encoding.Direction) error {
	if dir == encoding.Forward {
		for i := range c.tracks {
			tr := &c.tracks[i]
			if tr.flags == 0 {
				continue
			}
			for j := 0; j < section.ComponentCount; j++ {
				if tr.flags&(1<<j) == 0 {
					continue
				}
				v, err := c.deltas.Next()
				if err != nil {
					return err
				}
				tr.acc[j] += float32(v)
			}
		}

		return nil
	}

	for i := len(c.tracks) - 1; i >= 0; i-- {
		tr := &c.tracks[i]
		if tr.flags == 0 {
			continue
		}
		for j := section.ComponentCount - 1; j >= 0; j-- {
			if tr.flags&(1<<j) == 0 {
				continue
			}
			v, err := c.deltas.Prev()
			if err != nil {
				return err
			}
			tr.acc[j] -= float32(v)
		}
	}

	return nil
}

// commit writes a new sample into every track's double buffer.
//
// The scaled accumulator is added onto the sample it moves away from: forward
// commits chain onto the newest slot and overwrite the oldest, backward commits
// chain onto the oldest slot with the scale negated and overwrite the newest.
// Either way the selector ends up on the earlier of the two samples.
func (c *Context) commit(dir encoding.Direction, at float32) {
	var src, dst int
	scale := c.header.QuantizationScale
	if dir == encoding.Forward {
		dst = c.selector
		c.selector ^= 1
		src = c.selector
	} else {
		src = c.selector
		c.selector ^= 1
		dst = c.selector
		scale = -scale
	}

	for i := range c.tracks {
		tr := &c.tracks[i]
		tr.slots[dst] = commitSample(tr.acc, tr.slots[src], scale, at)
	}
}

// commitSample returns base advanced by acc*scale. It is shared with the encoder so
// both sides reconstruct the same bits.
func commitSample(acc [section.ComponentCount]float32, base pose.Sample, scale, at float32) pose.Sample {
	return pose.Sample{
		Quat: pose.Quat{
			X: float32(acc[0]*scale) + base.Quat.X,
			Y: float32(acc[1]*scale) + base.Quat.Y,
			Z: float32(acc[2]*scale) + base.Quat.Z,
			W: float32(acc[3]*scale) + base.Quat.W,
		}.Normalize(),
		Trans: pose.Vec3{
			X: float32(acc[4]*scale) + base.Trans.X,
			Y: float32(acc[5]*scale) + base.Trans.Y,
			Z: float32(acc[6]*scale) + base.Trans.Z,
		},
		Time: at,
	}
}
