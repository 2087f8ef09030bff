package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, CodeOK},
		{"invalid argument", ErrInvalidArgument, CodeInvalidArgument},
		{"invalid track", ErrInvalidTrack, CodeInvalidArgument},
		{"invalid format", ErrInvalidFormat, CodeInvalidFormat},
		{"allocation", ErrAllocationFailure, CodeAllocationFailure},
		{"overflow", ErrFrameCountOverflow, CodeFrameCountOverflow},
		{"malformed", ErrMalformedStream, CodeMalformedStream},
		{"short header", ErrInvalidHeaderSize, CodeMalformedStream},
		{"wrapped", fmt.Errorf("%w: signature 0x1", ErrInvalidFormat), CodeInvalidFormat},
		{"unknown", errors.New("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestCodesAreDistinctPerCause(t *testing.T) {
	seen := map[int]error{}
	for _, err := range []error{ErrInvalidArgument, ErrInvalidFormat, ErrAllocationFailure, ErrFrameCountOverflow, ErrMalformedStream} {
		code := Code(err)
		_, dup := seen[code]
		require.False(t, dup, "code %d reused by %v", code, err)
		seen[code] = err
	}
}

func TestLegacyCodes(t *testing.T) {
	require.Equal(t, 1, Code(ErrInvalidFormat))
	require.Equal(t, 2, Code(ErrAllocationFailure))
	require.Equal(t, 3, Code(ErrFrameCountOverflow))
}
