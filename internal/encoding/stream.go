package encoding

import (
	"fmt"

	"github.com/arloliu/enbaya/endian"
	"github.com/arloliu/enbaya/errs"
)

// Direction selects whether a decoder consumes or un-consumes its next field.
type Direction int8

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}

	return "forward"
}

// Cursor is a comparable snapshot of a decoder's stream positions.
type Cursor struct {
	Selector int    // symbols consumed from the primary (crumb) selector stream
	Nibble   int    // symbols consumed from the nibble stream, zero when unused
	Values   [3]int // elements consumed from the 1-, 2- and 4-byte value streams
}

// Offset returns the byte offset of the selector cursor for symbols of the given bit width.
func (c Cursor) Offset(bits int) int {
	return c.Selector / (8 / bits)
}

// SubCounter returns the position of the selector cursor inside its current byte.
func (c Cursor) SubCounter(bits int) int {
	return c.Selector % (8 / bits)
}

// symbolStream reads 2- or 4-bit selector symbols packed most significant first.
type symbolStream struct {
	name  string
	data  []byte
	bits  uint8
	index int
}

func newSymbolStream(name string, data []byte, bits uint8) symbolStream {
	return symbolStream{name: name, data: data, bits: bits}
}

func (s *symbolStream) at(i int) (uint8, error) {
	per := 8 / int(s.bits)
	pos := i / per
	if i < 0 || pos >= len(s.data) {
		return 0, fmt.Errorf("%w: %s symbol %d outside %d bytes", errs.ErrMalformedStream, s.name, i, len(s.data))
	}

	shift := 8 - int(s.bits)*(i%per+1)
	mask := uint8(1)<<s.bits - 1

	return (s.data[pos] >> shift) & mask, nil
}

func (s *symbolStream) step(dir Direction) (uint8, error) {
	if dir == Backward {
		sym, err := s.at(s.index - 1)
		if err != nil {
			return 0, err
		}
		s.index--

		return sym, nil
	}

	sym, err := s.at(s.index)
	if err != nil {
		return 0, err
	}
	s.index++

	return sym, nil
}

// valueStream reads little-endian elements of a fixed width.
type valueStream struct {
	name  string
	data  []byte
	width int
	index int
}

func newValueStream(name string, data []byte, width int) valueStream {
	return valueStream{name: name, data: data, width: width}
}

func (s *valueStream) at(i int) (uint32, error) {
	off := i * s.width
	if i < 0 || off+s.width > len(s.data) {
		return 0, fmt.Errorf("%w: %s element %d outside %d bytes", errs.ErrMalformedStream, s.name, i, len(s.data))
	}

	engine := endian.GetLittleEndianEngine()
	switch s.width {
	case 1:
		return uint32(s.data[off]), nil
	case 2:
		return uint32(engine.Uint16(s.data[off:])), nil
	default:
		return engine.Uint32(s.data[off:]), nil
	}
}

func (s *valueStream) step(dir Direction) (uint32, error) {
	if dir == Backward {
		v, err := s.at(s.index - 1)
		if err != nil {
			return 0, err
		}
		s.index--

		return v, nil
	}

	v, err := s.at(s.index)
	if err != nil {
		return 0, err
	}
	s.index++

	return v, nil
}

// signExtend interprets the low width bytes of raw as a two's complement integer.
func signExtend(raw uint32, width int) int32 {
	switch width {
	case 1:
		return int32(int8(raw))
	case 2:
		return int32(int16(raw))
	default:
		return int32(raw)
	}
}

// widthReader is the crumb-selected reader shared by the init and run decoders:
// code 0 yields zero, codes 1, 2 and 3 read the next 1-, 2- or 4-byte element.
type widthReader struct {
	sel  symbolStream
	vals [3]valueStream
}

func newWidthReader(prefix string, crumbs, b1, b2, b4 []byte) widthReader {
	return widthReader{
		sel: newSymbolStream(prefix+" crumbs", crumbs, 2),
		vals: [3]valueStream{
			newValueStream(prefix+" 8-bit", b1, 1),
			newValueStream(prefix+" 16-bit", b2, 2),
			newValueStream(prefix+" 32-bit", b4, 4),
		},
	}
}

func (r *widthReader) step(dir Direction) (uint8, uint32, error) {
	code, err := r.sel.step(dir)
	if err != nil || code == 0 {
		return code, 0, err
	}

	raw, err := r.vals[code-1].step(dir)

	return code, raw, err
}

// peekBehind returns the field immediately before the cursor without moving it.
func (r *widthReader) peekBehind() (uint8, uint32, error) {
	code, err := r.sel.at(r.sel.index - 1)
	if err != nil || code == 0 {
		return code, 0, err
	}

	vs := &r.vals[code-1]
	raw, err := vs.at(vs.index - 1)

	return code, raw, err
}

func (r *widthReader) rewind() {
	r.sel.index = 0
	for i := range r.vals {
		r.vals[i].index = 0
	}
}

func (r *widthReader) cursor() Cursor {
	return Cursor{
		Selector: r.sel.index,
		Values:   [3]int{r.vals[0].index, r.vals[1].index, r.vals[2].index},
	}
}
