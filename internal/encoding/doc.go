// Package encoding provides the variable-width field decoders and writers of the
// Enbaya stream.
//
// Every field in the stream is selected by a packed selector symbol: four 2-bit
// crumbs or two 4-bit nibbles per byte, most significant symbol first. A selector
// names the width of the next value, and the value itself lives in a separate
// width-specific array. Three decoders share this primitive:
//
//   - InitDecoder: absolute per-component values (crumb → 0 / int8 / int16 / int32)
//   - DeltaDecoder: per-component deltas with the crumb → nibble → int8 → int16 → int32
//     escape ladder
//   - RunDecoder: unsigned run lengths for the parameter scheduler
//
// # Cursor Symmetry
//
// Each stream keeps a single linear element index rather than a byte pointer plus
// a sub-byte counter. A forward step reads at the index and increments it; a
// backward step decrements it and reads. One forward step followed by one backward
// step therefore restores the cursor exactly, which the playback engine relies on
// for scrubbing.
//
// Every read is bounds-checked and fails with errs.ErrMalformedStream.
//
// # Writers
//
// InitWriter, DeltaWriter and RunWriter produce the inverse encodings, always picking
// the narrowest representation for a value.
package encoding
