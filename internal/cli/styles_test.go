package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })

	return &out, &errOut
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, FormatBytes(tt.in))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	require.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
}

func TestPrintError_GoesToStderr(t *testing.T) {
	out, errOut := capture(t)

	PrintError("cannot open input")
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "cannot open input")
	require.Contains(t, errOut.String(), "Error:")
}

func TestPrintSummary(t *testing.T) {
	out, _ := capture(t)

	PrintSummary("Done", []Field{{"Frames", "31"}, {"FPS", "60"}})
	s := out.String()
	require.Contains(t, s, "Done")
	require.Contains(t, s, "Frames:")
	require.Contains(t, s, "31")
	require.Contains(t, s, "60")
}

func TestPrintInfo(t *testing.T) {
	out, _ := capture(t)

	PrintInfo("Duration", "1.000000")
	require.Contains(t, out.String(), "Duration:")
	require.Contains(t, out.String(), "1.000000")
}
