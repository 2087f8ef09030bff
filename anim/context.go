package anim

import (
	"fmt"

	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/internal/encoding"
	"github.com/arloliu/enbaya/pose"
	"github.com/arloliu/enbaya/section"
)

// StepMode records the direction of the most recent sample step.
type StepMode uint8

const (
	// ModeUnset is the mode after a reset. It persists across the first step away
	// from sample 0, while the two slots still hold the first interval verbatim.
	ModeUnset StepMode = iota
	ModeForward
	ModeBackward
)

func (m StepMode) String() string {
	switch m {
	case ModeForward:
		return "forward"
	case ModeBackward:
		return "backward"
	default:
		return "unset"
	}
}

// track is the reconstruction state of one bone.
type track struct {
	// acc holds quat x,y,z,w and trans x,y,z in unscaled integer units.
	acc   [section.ComponentCount]float32
	flags uint8
	// slots is the double buffer of committed samples; Context.selector points at
	// the earlier one.
	slots [2]pose.Sample
}

// Context is the playback state of one stream.
type Context struct {
	data   []byte
	header section.StreamHeader
	layout section.Layout
	sps    float32

	inits  *encoding.InitDecoder
	deltas *encoding.DeltaDecoder
	sched  scheduler
	flags  []byte
	tracks []track

	currentSample int
	currentTime   float32
	previousTime  float32
	requestedTime float32
	mode          StepMode
	selector      int

	released bool
}

// New validates an encoded stream and creates a playback context over it.
//
// The context borrows data; it must stay unmodified until Release. No sample is
// decoded until the first SetTime.
//
// Parameters:
//   - data: Encoded stream, header included
//
// Returns:
//   - *Context: Context positioned before the first sample
//   - error: ErrInvalidArgument for empty input, ErrInvalidFormat for an unknown
//     signature, ErrMalformedStream when a header field or section is unusable
func New(data []byte) (*Context, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty stream", errs.ErrInvalidArgument)
	}

	header, err := section.ParseStreamHeader(data)
	if err != nil {
		return nil, err
	}

	layout, err := section.NewLayout(header, len(data))
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		data:   data,
		header: header,
		layout: layout,
		sps:    header.SecondsPerSample(),
		inits: encoding.NewInitDecoder(
			layout.Slice(data, section.InitCrumbs),
			layout.Slice(data, section.InitI8),
			layout.Slice(data, section.InitI16),
			layout.Slice(data, section.InitI32),
		),
		deltas: encoding.NewDeltaDecoder(
			layout.Slice(data, section.DeltaCrumbs),
			layout.Slice(data, section.DeltaNibbles),
			layout.Slice(data, section.DeltaI8),
			layout.Slice(data, section.DeltaI16),
			layout.Slice(data, section.DeltaI32),
		),
		sched: scheduler{runs: encoding.NewRunDecoder(
			layout.Slice(data, section.ParamCrumbs),
			layout.Slice(data, section.ParamU8),
			layout.Slice(data, section.ParamU16),
			layout.Slice(data, section.ParamU32),
		)},
		flags:         layout.Slice(data, section.TrackFlags),
		tracks:        make([]track, header.TrackCount),
		currentSample: -1,
		currentTime:   -1,
		previousTime:  -1,
		requestedTime: -1,
	}

	return ctx, nil
}

// Release drops every reference the context holds. Any later call fails with
// ErrReleased. Release is idempotent.
func (c *Context) Release() {
	c.data = nil
	c.flags = nil
	c.tracks = nil
	c.inits = nil
	c.deltas = nil
	c.sched = scheduler{}
	c.released = true
}

// Header returns the parsed stream header.
func (c *Context) Header() section.StreamHeader {
	return c.header
}

// TrackCount returns the number of tracks in the stream.
func (c *Context) TrackCount() int {
	return int(c.header.TrackCount)
}

// Duration returns the stream duration in seconds.
func (c *Context) Duration() float32 {
	return c.header.Duration
}

// SampleRate returns the native samples per second.
func (c *Context) SampleRate() uint32 {
	return c.header.SampleRate
}

// SecondsPerSample returns the native sample interval.
func (c *Context) SecondsPerSample() float32 {
	return c.sps
}

// CurrentSample returns the index of the newest committed sample, or -1 before the
// first SetTime.
func (c *Context) CurrentSample() int {
	return c.currentSample
}

// Mode returns the direction of the most recent step.
func (c *Context) Mode() StepMode {
	return c.mode
}

func (c *Context) checkLive() error {
	if c.released {
		return errs.ErrReleased
	}

	return nil
}
