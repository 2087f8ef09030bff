// Package errs defines the sentinel errors returned by enbaya packages.
//
// Callers match causes with errors.Is; the wrapping layers add context with
// fmt.Errorf("%w: ...").
package errs

import "errors"

var (
	// ErrInvalidArgument is returned when a required buffer or output slot is absent
	// or an argument is outside its accepted range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFormat is returned when the stream signature matches neither accepted magic.
	ErrInvalidFormat = errors.New("invalid stream format")

	// ErrAllocationFailure names the out-of-memory cause for exit-code reporting. Go
	// allocations panic instead of failing, so every size the decoder allocates is
	// bounded beforehand (track flags cover the track count, the output size fits
	// int32) and no enbaya package returns it.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrFrameCountOverflow is returned when the requested frame count exceeds the output range.
	ErrFrameCountOverflow = errors.New("frame count overflow")

	// ErrMalformedStream is returned when a header field or section read falls outside the buffer.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrInvalidHeaderSize is returned when a buffer is too short to hold a fixed-size header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidTrack is returned when a track index is out of range.
	ErrInvalidTrack = errors.New("invalid track index")

	// ErrInvalidOption is returned when an encoder option carries an unusable value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrReleased is returned when a released playback context is used.
	ErrReleased = errors.New("context released")
)

// Numeric codes reported at the tool boundary, one per failure cause. The first
// three keep the values legacy enbrip builds exit with (-100 - code).
const (
	CodeOK                 = 0
	CodeInvalidFormat      = 1
	CodeAllocationFailure  = 2
	CodeFrameCountOverflow = 3
	CodeInvalidArgument    = 4
	CodeMalformedStream    = 5
	CodeUnknown            = 99
)

var codes = []struct {
	err  error
	code int
}{
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrInvalidTrack, CodeInvalidArgument},
	{ErrInvalidOption, CodeInvalidArgument},
	{ErrReleased, CodeInvalidArgument},
	{ErrInvalidFormat, CodeInvalidFormat},
	{ErrAllocationFailure, CodeAllocationFailure},
	{ErrFrameCountOverflow, CodeFrameCountOverflow},
	{ErrMalformedStream, CodeMalformedStream},
	{ErrInvalidHeaderSize, CodeMalformedStream},
}

// Code maps err to the numeric code of its cause.
//
// Returns CodeOK for a nil error and CodeUnknown when no sentinel matches.
func Code(err error) int {
	if err == nil {
		return CodeOK
	}

	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return CodeUnknown
}
