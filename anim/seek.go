package anim

import (
	"fmt"
	"math"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/internal/encoding"
)

const (
	// minTime is the smallest time treated as past the first sample.
	minTime = 0.000001
	// endEpsilon is the slack under which the play head counts as at the end.
	endEpsilon = 0.00001
)

// SetTime moves the play head so that t falls inside the interval between the two
// committed samples.
//
// Requests adjacent to the current position step one native sample at a time.
// The first call, a time below 1e-6, a jump back to less than half the previous
// time, or a move from past the first interval into it resets the context to
// sample 0 and replays forward. Repeating the previous time is a no-op.
//
// Parameters:
//   - t: Time in seconds; values past the duration stop at the last sample
//
// Returns:
//   - error: ErrInvalidArgument for NaN, ErrMalformedStream when the stream runs out
//     mid-step. After an error no sample is committed and the next call starts
//     from a reset.
func (c *Context) SetTime(t float32) error {
	if err := c.checkLive(); err != nil {
		return err
	}
	if math.IsNaN(float64(t)) {
		return fmt.Errorf("%w: time is NaN", errs.ErrInvalidArgument)
	}

	if err := c.seek(t); err != nil {
		c.invalidate()
		return err
	}

	return nil
}

// invalidate drops a half-applied position. Sample reports identity until the
// next successful SetTime, which starts from a reset.
func (c *Context) invalidate() {
	c.requestedTime = -1
	c.currentSample = -1
	c.currentTime = -1
	c.previousTime = -1
	c.mode = ModeUnset
}

func (c *Context) seek(t float32) error {
	if t == c.requestedTime {
		return nil
	}

	last := c.requestedTime
	if c.needsReset(last, t) {
		if err := c.reset(); err != nil {
			return err
		}
	}

	c.requestedTime = t
	if t < minTime {
		return nil
	}

	duration := c.header.Duration
	for t > c.currentTime && duration-c.currentTime > endEpsilon {
		if err := c.stepForward(); err != nil {
			return err
		}
	}

	for t < c.previousTime {
		if err := c.stepBackward(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Context) needsReset(last, t float32) bool {
	return last == -1 ||
		t < minTime ||
		last-t > t ||
		(c.sps <= last && c.sps > t)
}

// reset rewinds every cursor and decodes sample 0.
func (c *Context) reset() error {
	c.currentSample = 0
	c.currentTime = 0
	c.previousTime = 0
	c.deltas.Rewind()
	c.mode = ModeUnset

	if err := c.sched.reset(); err != nil {
		return err
	}

	return c.initTracks()
}

func (c *Context) stepForward() error {
	if c.currentSample > 0 {
		if err := c.sched.scan(encoding.Forward, c.tracks); err != nil {
			return err
		}
		c.mode = ModeForward
	} else if c.mode == ModeBackward {
		c.mode = ModeForward
	}

	if err := c.applyDeltas(encoding.Forward); err != nil {
		return err
	}
	c.currentSample++

	at := float32(c.currentSample) * c.sps
	if c.header.Duration <= at {
		at = c.header.Duration
	}
	c.commit(encoding.Forward, at)
	c.updateTimes()

	return nil
}

func (c *Context) stepBackward() error {
	c.mode = ModeBackward

	if err := c.applyDeltas(encoding.Backward); err != nil {
		return err
	}
	c.currentSample--

	if c.currentSample > 0 {
		if err := c.sched.scan(encoding.Backward, c.tracks); err != nil {
			return err
		}
	}

	c.updateTimes()
	c.commit(encoding.Backward, c.previousTime)

	return nil
}

func (c *Context) updateTimes() {
	c.currentTime = float32(c.currentSample) * c.sps
	c.previousTime = float32(c.currentSample-1) * c.sps
}
