package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const (
	// lz4MaxSize bounds the decompressed size accepted from a length prefix.
	lz4MaxSize = 1 << 31
	// lz4MaxRatio bounds the expansion accepted from a block; LZ4 tops out near 255.
	lz4MaxRatio = 300
)

var errLZ4Size = errors.New("lz4: invalid decompressed size")

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with the LZ4 block format.
//
// The block format does not record the decompressed size, so each block is
// prefixed with it as a little-endian uint32.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a size-prefixed LZ4 block.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if uint64(len(data)) >= lz4MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", errLZ4Size, len(data))
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4 compression produced no output for %d bytes", len(data))
	}

	return dst[:4+n], nil
}

// Decompress decodes a size-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated prefix", errLZ4Size)
	}

	size := binary.LittleEndian.Uint32(data)
	if uint64(size) >= lz4MaxSize || uint64(size) > uint64(len(data)-4)*lz4MaxRatio+16 {
		return nil, fmt.Errorf("%w: %d bytes from %d", errLZ4Size, size, len(data)-4)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("%w: got %d of %d bytes", errLZ4Size, n, size)
	}

	return buf, nil
}
