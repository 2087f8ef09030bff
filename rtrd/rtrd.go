// Package rtrd implements the dense decoded-animation buffer written to .rtrd files.
//
// # Layout
//
// All numbers are little-endian.
//
//	0x00  u32  track count
//	0x04  u32  frame count
//	0x08  f32  frames per second
//	0x0C  f32  duration in seconds
//	0x10  frame-major samples, track-minor; each sample is eight f32:
//	      quat x, y, z, w, trans x, y, z, time
package rtrd

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/enbaya/endian"
	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/internal/hash"
	"github.com/arloliu/enbaya/pose"
)

const (
	HeaderSize = 0x10 // bytes before the first sample
	SampleSize = 0x20 // bytes per sample
)

// Header describes the shape of a buffer.
type Header struct {
	TrackCount uint32
	FrameCount uint32
	FPS        float32
	Duration   float32
}

// Size returns the total byte length of a buffer with this header.
//
// Returns:
//   - int: HeaderSize + TrackCount*FrameCount*SampleSize
//   - error: ErrFrameCountOverflow when the length does not fit a signed 32-bit size
func (h Header) Size() (int, error) {
	samples := uint64(h.TrackCount) * uint64(h.FrameCount)
	if samples > (math.MaxInt32-HeaderSize)/SampleSize {
		return 0, fmt.Errorf("%w: %d tracks x %d frames", errs.ErrFrameCountOverflow, h.TrackCount, h.FrameCount)
	}

	return HeaderSize + int(samples)*SampleSize, nil
}

// Buffer is a decoded animation: every track sampled at every frame.
type Buffer struct {
	header Header
	data   []byte
}

// New allocates a zeroed buffer and writes its header.
func New(h Header) (*Buffer, error) {
	size, err := h.Size()
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(data[0:], h.TrackCount)
	engine.PutUint32(data[4:], h.FrameCount)
	endian.PutFloat32(engine, data[8:], h.FPS)
	endian.PutFloat32(engine, data[12:], h.Duration)

	return &Buffer{header: h, data: data}, nil
}

// Parse wraps an existing .rtrd image without copying it.
//
// Returns:
//   - *Buffer: Buffer viewing data
//   - error: ErrInvalidHeaderSize when data is shorter than the header,
//     ErrMalformedStream when its length disagrees with the header
func Parse(data []byte) (*Buffer, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		TrackCount: engine.Uint32(data[0:]),
		FrameCount: engine.Uint32(data[4:]),
		FPS:        endian.Float32(engine, data[8:]),
		Duration:   endian.Float32(engine, data[12:]),
	}

	size, err := h.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedStream, err)
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: header describes %d bytes, have %d", errs.ErrMalformedStream, size, len(data))
	}

	return &Buffer{header: h, data: data}, nil
}

// Header returns the buffer header.
func (b *Buffer) Header() Header {
	return b.header
}

func (b *Buffer) offset(frame, trackIdx int) (int, error) {
	if frame < 0 || uint64(frame) >= uint64(b.header.FrameCount) {
		return 0, fmt.Errorf("%w: frame %d of %d", errs.ErrInvalidArgument, frame, b.header.FrameCount)
	}
	if trackIdx < 0 || uint64(trackIdx) >= uint64(b.header.TrackCount) {
		return 0, fmt.Errorf("%w: %d of %d", errs.ErrInvalidTrack, trackIdx, b.header.TrackCount)
	}

	return HeaderSize + (frame*int(b.header.TrackCount)+trackIdx)*SampleSize, nil
}

// SetSample stores s as the sample of a track at a frame.
func (b *Buffer) SetSample(frame, trackIdx int, s pose.Sample) error {
	off, err := b.offset(frame, trackIdx)
	if err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()
	dst := b.data[off : off+SampleSize]
	for i, v := range [8]float32{s.Quat.X, s.Quat.Y, s.Quat.Z, s.Quat.W, s.Trans.X, s.Trans.Y, s.Trans.Z, s.Time} {
		endian.PutFloat32(engine, dst[i*4:], v)
	}

	return nil
}

// Sample returns the sample of a track at a frame.
func (b *Buffer) Sample(frame, trackIdx int) (pose.Sample, error) {
	off, err := b.offset(frame, trackIdx)
	if err != nil {
		return pose.Sample{}, err
	}

	engine := endian.GetLittleEndianEngine()
	src := b.data[off : off+SampleSize]
	f := func(i int) float32 { return endian.Float32(engine, src[i*4:]) }

	return pose.Sample{
		Quat:  pose.Quat{X: f(0), Y: f(1), Z: f(2), W: f(3)},
		Trans: pose.Vec3{X: f(4), Y: f(5), Z: f(6)},
		Time:  f(7),
	}, nil
}

// Bytes returns the encoded buffer. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the encoded length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Fingerprint returns the xxHash64 of the encoded buffer.
func (b *Buffer) Fingerprint() uint64 {
	return hash.Fingerprint(b.data)
}

// WriteTo writes the encoded buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)
	return int64(n), err
}
