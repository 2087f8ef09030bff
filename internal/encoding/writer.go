package encoding

import (
	"math"

	"github.com/arloliu/enbaya/endian"
	"github.com/arloliu/enbaya/internal/pool"
)

// symbolWriter packs 2- or 4-bit symbols most significant first.
type symbolWriter struct {
	buf   *pool.ByteBuffer
	bits  uint8
	count int
}

func newSymbolWriter(bits uint8) symbolWriter {
	return symbolWriter{buf: pool.GetSectionBuffer(), bits: bits}
}

func (w *symbolWriter) put(sym uint8) {
	per := 8 / int(w.bits)
	sub := w.count % per
	if sub == 0 {
		_ = w.buf.WriteByte(0)
	}

	shift := 8 - int(w.bits)*(sub+1)
	mask := uint8(1)<<w.bits - 1
	w.buf.B[len(w.buf.B)-1] |= (sym & mask) << shift
	w.count++
}

// widthWriter is the inverse of widthReader.
type widthWriter struct {
	sel  symbolWriter
	vals [3]*pool.ByteBuffer
}

func newWidthWriter() widthWriter {
	return widthWriter{
		sel:  newSymbolWriter(2),
		vals: [3]*pool.ByteBuffer{pool.GetSectionBuffer(), pool.GetSectionBuffer(), pool.GetSectionBuffer()},
	}
}

func (w *widthWriter) put(code uint8, raw uint32) {
	w.sel.put(code)

	engine := endian.GetLittleEndianEngine()
	switch code {
	case 1:
		_ = w.vals[0].WriteByte(byte(raw))
	case 2:
		w.vals[1].B = engine.AppendUint16(w.vals[1].B, uint16(raw))
	case 3:
		w.vals[2].B = engine.AppendUint32(w.vals[2].B, raw)
	}
}

func (w *widthWriter) sections() (sel, b1, b2, b4 []byte) {
	return w.sel.buf.Bytes(), w.vals[0].Bytes(), w.vals[1].Bytes(), w.vals[2].Bytes()
}

func (w *widthWriter) release() {
	pool.PutSectionBuffer(w.sel.buf)
	for _, v := range w.vals {
		pool.PutSectionBuffer(v)
	}
	w.sel.buf = nil
	w.vals = [3]*pool.ByteBuffer{}
}

// InitWriter encodes absolute component values for InitDecoder.
//
// Buffers come from the section pool; the slices returned by Sections stay valid
// until Release.
type InitWriter struct {
	w widthWriter
}

// NewInitWriter creates an empty InitWriter.
func NewInitWriter() *InitWriter {
	return &InitWriter{w: newWidthWriter()}
}

// Put appends v in the narrowest signed width.
func (iw *InitWriter) Put(v int32) {
	switch {
	case v == 0:
		iw.w.put(0, 0)
	case v >= math.MinInt8 && v <= math.MaxInt8:
		iw.w.put(1, uint32(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		iw.w.put(2, uint32(v))
	default:
		iw.w.put(3, uint32(v))
	}
}

// Count returns the number of values written.
func (iw *InitWriter) Count() int {
	return iw.w.sel.count
}

// Sections returns the crumb, 8-, 16- and 32-bit sections in header order.
func (iw *InitWriter) Sections() (crumbs, i8, i16, i32 []byte) {
	return iw.w.sections()
}

// Release returns the buffers to the pool.
func (iw *InitWriter) Release() {
	iw.w.release()
}

// RunWriter encodes unsigned run lengths for RunDecoder.
type RunWriter struct {
	w widthWriter
}

// NewRunWriter creates an empty RunWriter.
func NewRunWriter() *RunWriter {
	return &RunWriter{w: newWidthWriter()}
}

// Put appends v in the narrowest unsigned width.
func (rw *RunWriter) Put(v uint32) {
	switch {
	case v == 0:
		rw.w.put(0, 0)
	case v <= math.MaxUint8:
		rw.w.put(1, v)
	case v <= math.MaxUint16:
		rw.w.put(2, v)
	default:
		rw.w.put(3, v)
	}
}

// Count returns the number of run lengths written.
func (rw *RunWriter) Count() int {
	return rw.w.sel.count
}

// Sections returns the crumb, 8-, 16- and 32-bit sections in header order.
func (rw *RunWriter) Sections() (crumbs, u8, u16, u32 []byte) {
	return rw.w.sections()
}

// Release returns the buffers to the pool.
func (rw *RunWriter) Release() {
	rw.w.release()
}

// DeltaWriter encodes component deltas for DeltaDecoder using the shortest rung of
// the escape ladder.
type DeltaWriter struct {
	crumbs  symbolWriter
	nibbles symbolWriter
	vals    [3]*pool.ByteBuffer
}

// NewDeltaWriter creates an empty DeltaWriter.
func NewDeltaWriter() *DeltaWriter {
	return &DeltaWriter{
		crumbs:  newSymbolWriter(2),
		nibbles: newSymbolWriter(4),
		vals:    [3]*pool.ByteBuffer{pool.GetSectionBuffer(), pool.GetSectionBuffer(), pool.GetSectionBuffer()},
	}
}

func nibbleFor(v int32) (uint8, bool) {
	for i := 1; i < len(nibbleDeltas); i++ {
		if nibbleDeltas[i] == v {
			return uint8(i), true
		}
	}

	return 0, false
}

// Put appends one delta.
func (dw *DeltaWriter) Put(v int32) {
	switch v {
	case 0:
		dw.crumbs.put(0)
		return
	case 1:
		dw.crumbs.put(1)
		return
	case -1:
		dw.crumbs.put(3)
		return
	}

	dw.crumbs.put(crumbEscape)
	if nib, ok := nibbleFor(v); ok {
		dw.nibbles.put(nib)
		return
	}
	dw.nibbles.put(nibbleEscape)

	engine := endian.GetLittleEndianEngine()
	switch {
	case (v >= 9 && v <= math.MaxInt8) || (v >= math.MinInt8 && v <= -10):
		_ = dw.vals[0].WriteByte(byte(int8(v)))
		return
	case v >= 0x7F+1 && v <= 0x7F+8:
		_ = dw.vals[0].WriteByte(byte(v - byteBiasPos))
		return
	case v >= -0x80-8 && v <= -0x80-1:
		_ = dw.vals[0].WriteByte(byte(int8(v + byteBiasNeg)))
		return
	}
	_ = dw.vals[0].WriteByte(0)

	if v >= math.MinInt16 && v <= math.MaxInt16 {
		dw.vals[1].B = engine.AppendUint16(dw.vals[1].B, uint16(int16(v)))
		return
	}
	dw.vals[1].B = engine.AppendUint16(dw.vals[1].B, 0)
	dw.vals[2].B = engine.AppendUint32(dw.vals[2].B, uint32(v))
}

// Count returns the number of deltas written.
func (dw *DeltaWriter) Count() int {
	return dw.crumbs.count
}

// Sections returns the crumb, nibble, 8-, 16- and 32-bit sections in header order.
func (dw *DeltaWriter) Sections() (crumbs, nibbles, i8, i16, i32 []byte) {
	return dw.crumbs.buf.Bytes(), dw.nibbles.buf.Bytes(), dw.vals[0].Bytes(), dw.vals[1].Bytes(), dw.vals[2].Bytes()
}

// Release returns the buffers to the pool.
func (dw *DeltaWriter) Release() {
	pool.PutSectionBuffer(dw.crumbs.buf)
	pool.PutSectionBuffer(dw.nibbles.buf)
	for _, v := range dw.vals {
		pool.PutSectionBuffer(v)
	}
	dw.crumbs.buf, dw.nibbles.buf = nil, nil
	dw.vals = [3]*pool.ByteBuffer{}
}
