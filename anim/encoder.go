package anim

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/internal/encoding"
	"github.com/arloliu/enbaya/internal/options"
	"github.com/arloliu/enbaya/internal/pool"
	"github.com/arloliu/enbaya/pose"
	"github.com/arloliu/enbaya/section"
)

// Encoder builds an Enbaya stream from keyframed tracks.
//
// Every track is resampled at the native rate by interpolating its keys. Each
// component is then coded as the change of its per-sample step, measured against
// what the decoder will have reconstructed so far, so quantization error never
// accumulates. A component whose step does not change in a sample is inactive and
// costs nothing beyond its run length.
type Encoder struct {
	duration    float32
	sampleRate  uint32
	quantError  float32
	quatMethod  format.InterpMethod
	transMethod format.InterpMethod
	signature   uint32

	tracks [][]pose.Sample
}

// NewEncoder creates an encoder for an animation of the given duration.
//
// Parameters:
//   - duration: Animation length in seconds
//   - opts: Encoder options
//
// Returns:
//   - *Encoder: Encoder with no tracks
//   - error: ErrInvalidArgument for a negative or non-finite duration, or the
//     first failing option's error
func NewEncoder(duration float32, opts ...EncoderOption) (*Encoder, error) {
	if !finite(duration) || duration < 0 {
		return nil, fmt.Errorf("%w: duration %g", errs.ErrInvalidArgument, duration)
	}

	e := &Encoder{
		duration:    duration,
		sampleRate:  DefaultSampleRate,
		quantError:  DefaultQuantizationError,
		quatMethod:  format.InterpSlerp,
		transMethod: format.InterpLerp,
		signature:   section.SignatureB,
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.signature != section.SignatureA && e.signature != section.SignatureB {
		return nil, fmt.Errorf("%w: signature 0x%08X", errs.ErrInvalidOption, e.signature)
	}

	return e, nil
}

// AddTrack appends a track described by its keyframes. Keys must be ordered by
// time; the first and last keys are held outside their time range.
func (e *Encoder) AddTrack(keys []pose.Sample) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: track %d has no keys", errs.ErrInvalidArgument, len(e.tracks))
	}

	for i, k := range keys {
		if !finiteSample(k) {
			return fmt.Errorf("%w: track %d key %d is not finite", errs.ErrInvalidArgument, len(e.tracks), i)
		}
		if i > 0 && k.Time < keys[i-1].Time {
			return fmt.Errorf("%w: track %d key %d out of order", errs.ErrInvalidArgument, len(e.tracks), i)
		}
	}

	e.tracks = append(e.tracks, append([]pose.Sample(nil), keys...))

	return nil
}

// TrackCount returns the number of tracks added so far.
func (e *Encoder) TrackCount() int {
	return len(e.tracks)
}

// Step returns the quantization step written to the stream header.
func (e *Encoder) Step() float32 {
	return e.quantError / 4
}

// LastSample returns the index of the last native sample the decoder commits.
func (e *Encoder) LastSample() int {
	sps := 1.0 / float32(e.sampleRate)

	k := 0
	for e.duration-float32(k)*sps > endEpsilon {
		k++
	}

	return k
}

// trackCode is the coded form of one track.
type trackCode struct {
	init   [section.ComponentCount]int32
	deltas [][section.ComponentCount]int32 // deltas[k-1] belongs to sample k
}

// Finish encodes every track added so far into a stream.
//
// Returns:
//   - []byte: Encoded stream
//   - error: ErrInvalidArgument when a value does not fit the quantized range
func (e *Encoder) Finish() ([]byte, error) {
	last := e.LastSample()
	sps := 1.0 / float32(e.sampleRate)
	step := e.Step()

	codes := make([]trackCode, len(e.tracks))
	for i, keys := range e.tracks {
		code, err := e.codeTrack(keys, last, sps, step)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		codes[i] = code
	}

	var sections [section.SectionCount][]byte

	inits := encoding.NewInitWriter()
	defer inits.Release()
	for _, c := range codes {
		for _, v := range c.init {
			inits.Put(v)
		}
	}
	sections[section.InitCrumbs], sections[section.InitI8], sections[section.InitI16], sections[section.InitI32] = inits.Sections()

	deltas := encoding.NewDeltaWriter()
	defer deltas.Release()
	for k := 0; k < last; k++ {
		for _, c := range codes {
			for _, v := range c.deltas[k] {
				if v != 0 {
					deltas.Put(v)
				}
			}
		}
	}
	sections[section.DeltaCrumbs], sections[section.DeltaNibbles], sections[section.DeltaI8],
		sections[section.DeltaI16], sections[section.DeltaI32] = deltas.Sections()

	runs := encoding.NewRunWriter()
	defer runs.Release()
	if err := writeRuns(runs, codes, last); err != nil {
		return nil, err
	}
	sections[section.ParamCrumbs], sections[section.ParamU8], sections[section.ParamU16], sections[section.ParamU32] = runs.Sections()

	flags := make([]byte, len(codes))
	for i, c := range codes {
		if last > 0 {
			flags[i] = activeFlags(c.deltas[0])
		}
	}
	sections[section.TrackFlags] = flags

	header := section.StreamHeader{
		Signature:         e.signature,
		TrackCount:        uint32(len(codes)),
		QuantizationScale: step,
		Duration:          e.duration,
		SampleRate:        e.sampleRate,
	}
	total := section.HeaderSize
	for id, s := range sections {
		header.Lengths[id] = uint32(len(s))
		total += len(s)
	}

	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	buf.Grow(total)
	buf.MustWrite(header.Bytes())
	for _, id := range section.PlacementOrder() {
		buf.MustWrite(sections[id])
	}

	return bytes.Clone(buf.Bytes()), nil
}

// codeTrack runs the decoder's own reconstruction alongside the resampled targets
// and records the deltas that keep it within one quantization step.
func (e *Encoder) codeTrack(keys []pose.Sample, last int, sps, step float32) (trackCode, error) {
	code := trackCode{deltas: make([][section.ComponentCount]int32, last)}

	first := components(e.target(keys, 0))
	var initAcc [section.ComponentCount]float32
	for c, v := range first {
		q, err := quantize(float64(v) / float64(step))
		if err != nil {
			return trackCode{}, err
		}
		code.init[c] = q
		initAcc[c] = float32(q)
	}
	recon := initialSample(initAcc, step)

	var accInt [section.ComponentCount]int64
	var acc [section.ComponentCount]float32
	for k := 1; k <= last; k++ {
		at := float32(k) * sps
		if e.duration <= at {
			at = e.duration
		}

		target := e.target(keys, at)
		if target.Quat.Dot(recon.Quat) < 0 {
			target.Quat = target.Quat.Neg()
		}

		want := components(target)
		have := components(recon)
		for c := range want {
			a := math.Round((float64(want[c]) - float64(have[c])) / float64(step))
			d, err := quantize(a - float64(accInt[c]))
			if err != nil {
				return trackCode{}, err
			}
			code.deltas[k-1][c] = d
			accInt[c] += int64(d)
			acc[c] += float32(d)
		}

		recon = commitSample(acc, recon, step, at)
	}

	return code, nil
}

// target samples the keyframes of a track at time t.
func (e *Encoder) target(keys []pose.Sample, t float32) pose.Sample {
	var s pose.Sample
	switch {
	case t <= keys[0].Time:
		s = keys[0]
	case t >= keys[len(keys)-1].Time:
		s = keys[len(keys)-1]
	default:
		i := 0
		for keys[i+1].Time <= t {
			i++
		}
		x, y := keys[i], keys[i+1]
		s = pose.Interpolate(x, y, (t-x.Time)/(y.Time-x.Time), e.quatMethod, e.transMethod)
	}

	s.Quat = s.Quat.Normalize()
	s.Time = t

	return s
}

// writeRuns emits the run lengths between active-flag toggles. Slots are numbered
// per scheduled step (samples 2 and later), track-major, component-minor.
func writeRuns(runs *encoding.RunWriter, codes []trackCode, last int) error {
	perStep := uint64(len(codes)) * section.ComponentCount
	total := perStep * uint64(max(last-1, 0))
	if total > math.MaxUint32 {
		return fmt.Errorf("%w: %d schedule slots", errs.ErrInvalidArgument, total)
	}

	// the run before the first toggle starts the slot count at zero
	prev := int64(-1)
	for k := 2; k <= last; k++ {
		for i, c := range codes {
			toggled := activeFlags(c.deltas[k-2]) ^ activeFlags(c.deltas[k-1])
			for bit := 0; bit < section.ComponentCount; bit++ {
				if toggled&(1<<bit) == 0 {
					continue
				}
				slot := int64(uint64(k-2)*perStep) + int64(i*section.ComponentCount+bit)
				runs.Put(uint32(slot - prev - 1))
				prev = slot
			}
		}
	}
	runs.Put(uint32(int64(total) - prev - 1))

	return nil
}

// initialSample is the sample 0 reconstruction shared with Context.initTracks.
func initialSample(acc [section.ComponentCount]float32, scale float32) pose.Sample {
	return pose.Sample{
		Quat: pose.Quat{
			X: float32(acc[0] * scale),
			Y: float32(acc[1] * scale),
			Z: float32(acc[2] * scale),
			W: float32(acc[3] * scale),
		}.Normalize(),
		Trans: pose.Vec3{
			X: float32(acc[4] * scale),
			Y: float32(acc[5] * scale),
			Z: float32(acc[6] * scale),
		},
	}
}

func activeFlags(d [section.ComponentCount]int32) uint8 {
	var f uint8
	for c, v := range d {
		if v != 0 {
			f |= 1 << c
		}
	}

	return f
}

func components(s pose.Sample) [section.ComponentCount]float32 {
	return [section.ComponentCount]float32{
		s.Quat.X, s.Quat.Y, s.Quat.Z, s.Quat.W,
		s.Trans.X, s.Trans.Y, s.Trans.Z,
	}
}

func quantize(v float64) (int32, error) {
	r := math.Round(v)
	// decoder accumulators are float32 and only exact within 2^24
	if r > 1<<24 || r < -(1<<24) || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: value %g outside the quantized range", errs.ErrInvalidArgument, v)
	}

	return int32(r), nil
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func finiteSample(s pose.Sample) bool {
	for _, v := range components(s) {
		if !finite(v) {
			return false
		}
	}

	return finite(s.Time)
}
