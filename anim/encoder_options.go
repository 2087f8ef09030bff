package anim

import (
	"fmt"
	"math"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/internal/options"
)

// Encoder defaults.
const (
	DefaultSampleRate        = 30
	DefaultQuantizationError = 0.001
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithSampleRate sets the native sample rate in samples per second.
func WithSampleRate(rate uint32) EncoderOption {
	return options.New(func(e *Encoder) error {
		if rate == 0 {
			return fmt.Errorf("%w: sample rate must be positive", errs.ErrInvalidOption)
		}
		e.sampleRate = rate

		return nil
	})
}

// WithQuantizationError sets the largest per-component error the stream may carry
// at a native sample.
func WithQuantizationError(maxErr float32) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !(maxErr > 0) || math.IsInf(float64(maxErr), 0) {
			return fmt.Errorf("%w: quantization error %g", errs.ErrInvalidOption, maxErr)
		}
		e.quantError = maxErr

		return nil
	})
}

// WithQuatInterpolation sets how rotations are interpolated between keyframes.
func WithQuatInterpolation(m format.InterpMethod) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !m.Valid() {
			return fmt.Errorf("%w: interpolation %d", errs.ErrInvalidOption, m)
		}
		e.quatMethod = m

		return nil
	})
}

// WithTransInterpolation sets how translations are interpolated between keyframes.
func WithTransInterpolation(m format.InterpMethod) EncoderOption {
	return options.New(func(e *Encoder) error {
		if !m.Valid() {
			return fmt.Errorf("%w: interpolation %d", errs.ErrInvalidOption, m)
		}
		e.transMethod = m

		return nil
	})
}

// WithSignature sets the stream signature. Both accepted signatures decode
// identically.
func WithSignature(sig uint32) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.signature = sig
	})
}
