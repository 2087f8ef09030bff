// Package endian provides the byte order engine used for every number stored in an
// Enbaya stream or a decoded .rtrd buffer.
//
// Both formats are little-endian on disk. The engine combines binary.ByteOrder and
// binary.AppendByteOrder so readers and writers share one value, and adds float32
// helpers since most payload words are IEEE-754 singles.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	scale := endian.Float32(engine, header[8:12])
//	buf = endian.AppendFloat32(engine, buf, scale)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned engines are
// immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Float32 decodes an IEEE-754 single from the first four bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// PutFloat32 encodes v into the first four bytes of b.
func PutFloat32(engine EndianEngine, b []byte, v float32) {
	engine.PutUint32(b, math.Float32bits(v))
}

// AppendFloat32 appends the encoding of v to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}
