// Package anim plays back and produces Enbaya skeletal animation streams.
//
// # Playback
//
// A Context borrows an encoded stream and reconstructs every track at the native
// sample rate. SetTime moves the play head one native sample at a time, forward
// during playback and backward while scrubbing; jumps that cannot be reached
// incrementally reset the context to the first sample and replay from there.
// Sample then blends the two most recent samples of a track at any time inside the
// current interval.
//
//	ctx, err := anim.New(stream)
//	if err != nil {
//		return err
//	}
//	defer ctx.Release()
//
//	if err := ctx.SetTime(1.25); err != nil {
//		return err
//	}
//	s, err := ctx.Sample(1.25, bone, format.InterpSlerp, format.InterpLerp)
//
// Process drives a Context over a whole stream at a fixed frame rate and returns a
// dense rtrd.Buffer.
//
// # Encoding
//
// Encoder is the inverse: it resamples keyframed tracks at the native rate,
// quantizes them and emits a stream that decodes within the configured error.
//
// # Thread Safety
//
// A Context is a single-owner mutable state machine and is not safe for concurrent
// use. Independent contexts may decode the same stream buffer concurrently since
// the buffer is never written.
package anim
