package anim

import (
	"fmt"
	"math"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/rtrd"
)

// MaxFPS is the highest output frame rate Process accepts.
const MaxFPS = 600

// Result is the outcome of Process.
type Result struct {
	Buffer   *rtrd.Buffer
	FPS      float32 // effective frame rate after clamping
	Duration float32
	Frames   int
}

// Process decodes a whole stream into a dense buffer sampled at fps.
//
// fps is clamped to MaxFPS, and raised to the native sample rate when below it.
// The frame count is round(duration*fps)+1, so both ends of the animation are
// sampled. Frame i is taken at time i/fps.
//
// Parameters:
//   - data: Encoded stream
//   - fps: Requested output frame rate
//   - quatMethod: Rotation interpolation between native samples
//   - transMethod: Translation interpolation between native samples
//
// Returns:
//   - Result: Output buffer and effective parameters
//   - error: Any error of New or SetTime, ErrInvalidArgument for a NaN frame rate,
//     ErrFrameCountOverflow when the output would not fit a 32-bit size
func Process(data []byte, fps float32, quatMethod, transMethod format.InterpMethod) (Result, error) {
	if math.IsNaN(float64(fps)) {
		return Result{}, fmt.Errorf("%w: fps is NaN", errs.ErrInvalidArgument)
	}
	if !quatMethod.Valid() || !transMethod.Valid() {
		return Result{}, fmt.Errorf("%w: interpolation %d/%d", errs.ErrInvalidArgument, quatMethod, transMethod)
	}

	ctx, err := New(data)
	if err != nil {
		return Result{}, err
	}
	defer ctx.Release()

	if fps > MaxFPS {
		fps = MaxFPS
	} else if fps < float32(ctx.SampleRate()) {
		fps = float32(ctx.SampleRate())
	}

	duration := ctx.Duration()
	frames, err := frameCount(duration, fps)
	if err != nil {
		return Result{}, err
	}

	buf, err := rtrd.New(rtrd.Header{
		TrackCount: uint32(ctx.TrackCount()),
		FrameCount: uint32(frames),
		FPS:        fps,
		Duration:   duration,
	})
	if err != nil {
		return Result{}, err
	}

	for i := range frames {
		t := float32(i) / fps
		if err := ctx.SetTime(t); err != nil {
			return Result{}, fmt.Errorf("frame %d: %w", i, err)
		}

		for j := range ctx.TrackCount() {
			s, err := ctx.Sample(t, j, quatMethod, transMethod)
			if err != nil {
				return Result{}, err
			}
			if err := buf.SetSample(i, j, s); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Buffer: buf, FPS: fps, Duration: duration, Frames: frames}, nil
}

func frameCount(duration, fps float32) (int, error) {
	span := math.Round(float64(duration * fps))
	if math.IsNaN(span) || span < 0 || span >= math.MaxInt32 {
		return 0, fmt.Errorf("%w: %g s at %g fps", errs.ErrFrameCountOverflow, duration, fps)
	}

	return int(span) + 1, nil
}
