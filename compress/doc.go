// Package compress provides the optional compression codecs applied to decoded
// .rtrd buffers before they are written to disk.
//
// A decoded animation is a dense grid of float32 samples. Tracks that barely move
// repeat the same words frame after frame, which general-purpose compressors
// shrink well. Four codecs are available, selected by format.CompressionType:
//
//   - None: the buffer is written as is
//   - Zstd: best ratio, pure Go (klauspost/compress/zstd)
//   - S2: fast with a good ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4 block format)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, stats, err := compress.Measure(codec, format.CompressionZstd, buf.Bytes())
//
// Decompression needs the codec the file was written with; the tool encodes it in
// the file extension (format.CompressionType.Extension).
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4 keep
// their heavy state in sync.Pools.
package compress
