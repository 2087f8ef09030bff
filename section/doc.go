// Package section defines the low-level binary structures of an Enbaya animation stream.
//
// An Enbaya stream is a fixed 80-byte header followed by fourteen tightly packed
// sections. The header records the track count, the quantization scale, the duration,
// the native sample rate and the byte length of every section. Nothing in the stream
// is an index: samples are reachable only by sequential delta application, so this
// package only needs to locate the sections, never individual samples.
//
// # Stream Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (80 bytes, fixed, little-endian)                 │
//	├─────────────────────────────────────────────────────────┤
//	│ init i32 │ delta i32 │ param u32                        │  4-byte elements
//	├─────────────────────────────────────────────────────────┤
//	│ init i16 │ delta i16 │ param u16                        │  2-byte elements
//	├─────────────────────────────────────────────────────────┤
//	│ init crumbs │ init i8 │ delta crumbs │ delta nibbles    │  1-byte elements
//	│ delta i8 │ param crumbs │ param u8 │ track flags        │
//	└─────────────────────────────────────────────────────────┘
//
// Sections are placed widest element first so every multi-byte array stays naturally
// aligned when the header is. The header lists the lengths in a different, logical
// order (init, delta, param, flags); Layout translates between the two.
//
// # Header Format
//
//	Bytes  | Field              | Type    | Description
//	-------|--------------------|---------|-----------------------------------
//	0-3    | Signature          | uint32  | 0x100A9DA4 or 0x100AAD74
//	4-7    | TrackCount         | uint32  | Number of tracks
//	8-11   | QuantizationScale  | float32 | Multiplier for decoded integers
//	12-15  | Duration           | float32 | Seconds
//	16-19  | SampleRate         | uint32  | Native samples per second
//	20-75  | Lengths[14]        | uint32  | Section byte lengths, header order
//	76-79  | Reserved           | uint32  | Runtime data pointer slot, ignored
//
// # Thread Safety
//
// StreamHeader and Layout are immutable value types and safe for concurrent use.
package section
