// Package format defines the enumerations shared by the enbaya decoder, encoder and tool.
package format

type (
	// InterpMethod selects how two committed samples are blended.
	InterpMethod uint8
	// CompressionType selects the codec applied to a decoded .rtrd buffer.
	CompressionType uint8
)

const (
	InterpNone  InterpMethod = 0 // InterpNone returns the newer sample verbatim (step interpolation).
	InterpLerp  InterpMethod = 1 // InterpLerp blends component-wise without renormalising.
	InterpSlerp InterpMethod = 2 // InterpSlerp blends quaternions along the great arc.

	CompressionNone CompressionType = 0x1 // CompressionNone writes the buffer as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Valid reports whether m is one of the defined interpolation methods.
func (m InterpMethod) Valid() bool {
	return m <= InterpSlerp
}

func (m InterpMethod) String() string {
	switch m {
	case InterpNone:
		return "None"
	case InterpLerp:
		return "Lerp"
	case InterpSlerp:
		return "Slerp"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file suffix appended to a compressed .rtrd file.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompressionType maps a lower-case codec name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
