package section

import (
	"fmt"
	"math"

	"github.com/arloliu/enbaya/endian"
	"github.com/arloliu/enbaya/errs"
)

// StreamHeader represents the fixed-size header at the start of an Enbaya stream.
type StreamHeader struct {
	// Signature identifies the stream format. Must be SignatureA or SignatureB.
	Signature uint32 // byte offset 0-3
	// TrackCount is the number of animated tracks (bones) in the stream.
	TrackCount uint32 // byte offset 4-7
	// QuantizationScale converts decoded integers into floating-point units.
	QuantizationScale float32 // byte offset 8-11
	// Duration is the length of the animation in seconds.
	Duration float32 // byte offset 12-15
	// SampleRate is the native number of samples per second.
	SampleRate uint32 // byte offset 16-19
	// Lengths holds the byte length of every section, indexed by SectionID.
	Lengths [SectionCount]uint32 // byte offset 20-75
	// Reserved is a slot runtimes may overwrite with a data pointer; it is kept, never interpreted.
	Reserved uint32 // byte offset 76-79
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not HeaderSize bytes, ErrInvalidFormat on
//     an unknown signature
func (h *StreamHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h.Signature = engine.Uint32(data[0:4])
	h.TrackCount = engine.Uint32(data[4:8])
	h.QuantizationScale = endian.Float32(engine, data[8:12])
	h.Duration = endian.Float32(engine, data[12:16])
	h.SampleRate = engine.Uint32(data[16:20])
	for i := range h.Lengths {
		off := LengthsOffset + i*4
		h.Lengths[i] = engine.Uint32(data[off : off+4])
	}
	h.Reserved = engine.Uint32(data[ReservedOffset : ReservedOffset+4])

	if !h.IsValidSignature() {
		return fmt.Errorf("%w: signature 0x%08X", errs.ErrInvalidFormat, h.Signature)
	}

	return nil
}

// Bytes serializes the StreamHeader into a HeaderSize byte slice.
func (h *StreamHeader) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, HeaderSize)
	b = engine.AppendUint32(b, h.Signature)
	b = engine.AppendUint32(b, h.TrackCount)
	b = endian.AppendFloat32(engine, b, h.QuantizationScale)
	b = endian.AppendFloat32(engine, b, h.Duration)
	b = engine.AppendUint32(b, h.SampleRate)
	for _, length := range h.Lengths {
		b = engine.AppendUint32(b, length)
	}
	b = engine.AppendUint32(b, h.Reserved)

	return b
}

// IsValidSignature reports whether the signature is one of the accepted magics.
func (h StreamHeader) IsValidSignature() bool {
	return h.Signature == SignatureA || h.Signature == SignatureB
}

// Validate checks the numeric header fields that the decoder divides or multiplies by.
func (h StreamHeader) Validate() error {
	if h.SampleRate == 0 {
		return fmt.Errorf("%w: sample rate is zero", errs.ErrMalformedStream)
	}

	d := float64(h.Duration)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: duration %v", errs.ErrMalformedStream, h.Duration)
	}

	s := float64(h.QuantizationScale)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: quantization scale %v", errs.ErrMalformedStream, h.QuantizationScale)
	}

	return nil
}

// SecondsPerSample returns 1 / SampleRate in single precision.
func (h StreamHeader) SecondsPerSample() float32 {
	return 1.0 / float32(h.SampleRate)
}

// ParseStreamHeader parses a StreamHeader from the start of a stream.
//
// Parameters:
//   - data: Stream bytes (must be at least HeaderSize bytes)
//
// Returns:
//   - StreamHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrInvalidFormat or ErrMalformedStream
func ParseStreamHeader(data []byte) (StreamHeader, error) {
	if len(data) < HeaderSize {
		return StreamHeader{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := StreamHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return StreamHeader{}, err
	}

	if err := h.Validate(); err != nil {
		return StreamHeader{}, err
	}

	return h, nil
}
