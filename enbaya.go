// Package enbaya decodes and encodes Enbaya skeletal animation streams.
//
// An Enbaya stream stores per-bone rotation and translation tracks as quantized
// second-order deltas. Each bone only spends bits on the components that are
// actually changing, and the change flags themselves are run-length coded across
// the whole stream. A playback context reconstructs the pose of every bone at any
// time, playing forward, scrubbing backward or seeking.
//
// # Basic Usage
//
// Sampling a stream at arbitrary times:
//
//	ctx, err := enbaya.Initialize(data)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Release()
//
//	if err := ctx.SetTime(0.5); err != nil {
//	    return err
//	}
//	s, err := ctx.Sample(0.5, 0, format.InterpSlerp, format.InterpLerp)
//
// Decoding a whole stream into a dense .rtrd buffer:
//
//	res, err := enbaya.Process(data, 60, format.InterpSlerp, format.InterpSlerp)
//	if err != nil {
//	    return err
//	}
//	_, err = res.Buffer.WriteTo(file)
//
// Encoding keyframed tracks:
//
//	data, err := enbaya.Encode(2.0, [][]pose.Sample{rootKeys, spineKeys},
//	    anim.WithSampleRate(30),
//	    anim.WithQuantizationError(0.0005),
//	)
//
// # Package Structure
//
// This package provides top-level wrappers around the anim package. Use anim
// directly for the encoder's incremental API and the playback context's
// diagnostics.
package enbaya

import (
	"github.com/arloliu/enbaya/anim"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/internal/hash"
	"github.com/arloliu/enbaya/pose"
)

// Initialize creates a playback context over an encoded stream.
//
// The context borrows data; the caller must keep it alive and unmodified until
// the context is released. No sample is committed until the first SetTime.
//
// Parameters:
//   - data: Encoded stream, header included
//
// Returns:
//   - *anim.Context: The playback context
//   - error: errs.ErrInvalidArgument for an empty buffer, errs.ErrInvalidFormat
//     for an unknown signature, errs.ErrMalformedStream when a section does not fit
func Initialize(data []byte) (*anim.Context, error) {
	return anim.New(data)
}

// Process decodes a whole stream into a dense buffer sampled at fps.
//
// See anim.Process for the frame rate clamping and frame count rules.
//
// Example:
//
//	res, err := enbaya.Process(data, 30, format.InterpSlerp, format.InterpSlerp)
//	fmt.Printf("%d frames at %g fps\n", res.Frames, res.FPS)
func Process(data []byte, fps float32, quatMethod, transMethod format.InterpMethod) (anim.Result, error) {
	return anim.Process(data, fps, quatMethod, transMethod)
}

// NewEncoder creates a stream encoder for an animation of the given duration in
// seconds.
//
// Available options:
//   - anim.WithSampleRate(rate)
//   - anim.WithQuantizationError(maxErr)
//   - anim.WithQuatInterpolation(method) / anim.WithTransInterpolation(method)
//   - anim.WithSignature(section.SignatureA|SignatureB)
func NewEncoder(duration float32, opts ...anim.EncoderOption) (*anim.Encoder, error) {
	return anim.NewEncoder(duration, opts...)
}

// Encode encodes keyframed tracks in one call.
//
// Each element of tracks holds the time-ordered keyframes of one bone; the track
// index in the stream is its position in the slice.
//
// Parameters:
//   - duration: Animation length in seconds
//   - tracks: Keyframes per track
//   - opts: Encoder options
//
// Returns:
//   - []byte: Encoded stream
//   - error: errs.ErrInvalidOption or errs.ErrInvalidArgument
func Encode(duration float32, tracks [][]pose.Sample, opts ...anim.EncoderOption) ([]byte, error) {
	enc, err := anim.NewEncoder(duration, opts...)
	if err != nil {
		return nil, err
	}

	for _, keys := range tracks {
		if err := enc.AddTrack(keys); err != nil {
			return nil, err
		}
	}

	return enc.Finish()
}

// Fingerprint returns the xxHash64 of a stream or decoded buffer.
//
// Two decodes of the same stream with the same parameters have equal fingerprints.
func Fingerprint(data []byte) uint64 {
	return hash.Fingerprint(data)
}
