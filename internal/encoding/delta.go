package encoding

// Escape codes of the delta ladder.
const (
	crumbEscape  = 2
	nibbleEscape = 0

	// byteBias shifts the signed bytes in (0, 9) and (-9, 0) past the nibble
	// range, which already covers -9..8.
	byteBiasPos = 0x7F
	byteBiasNeg = 0x80
)

var (
	crumbDeltas  = [4]int32{0, 1, 0, -1}
	nibbleDeltas = [16]int32{0, 8, 2, 3, 4, 5, 6, 7, -8, -7, -6, -5, -4, -3, -2, -9}
)

// DeltaDecoder reads the per-sample component deltas.
//
// A delta starts with a crumb: 0, +1 and -1 are coded directly and crumb 2 escapes
// to a nibble. Nibbles 1-15 index a small table; nibble 0 escapes to a signed byte,
// a zero byte escapes to int16 and a zero int16 escapes to int32.
type DeltaDecoder struct {
	crumbs  symbolStream
	nibbles symbolStream
	vals    [3]valueStream
}

// NewDeltaDecoder creates a decoder over the delta sections.
func NewDeltaDecoder(crumbs, nibbles, i8, i16, i32 []byte) *DeltaDecoder {
	return &DeltaDecoder{
		crumbs:  newSymbolStream("delta crumbs", crumbs, 2),
		nibbles: newSymbolStream("delta nibbles", nibbles, 4),
		vals: [3]valueStream{
			newValueStream("delta 8-bit", i8, 1),
			newValueStream("delta 16-bit", i16, 2),
			newValueStream("delta 32-bit", i32, 4),
		},
	}
}

// Next consumes the next delta.
func (d *DeltaDecoder) Next() (int32, error) {
	return d.Step(Forward)
}

// Prev un-consumes the most recent delta and returns it.
func (d *DeltaDecoder) Prev() (int32, error) {
	return d.Step(Backward)
}

// Step decodes one delta in direction dir. Backward touches exactly the elements
// the matching forward step consumed, so the two are inverses.
func (d *DeltaDecoder) Step(dir Direction) (int32, error) {
	crumb, err := d.crumbs.step(dir)
	if err != nil {
		return 0, err
	}
	if crumb != crumbEscape {
		return crumbDeltas[crumb], nil
	}

	nib, err := d.nibbles.step(dir)
	if err != nil {
		return 0, err
	}
	if nib != nibbleEscape {
		return nibbleDeltas[nib], nil
	}

	for i := range d.vals {
		raw, err := d.vals[i].step(dir)
		if err != nil {
			return 0, err
		}

		val := signExtend(raw, d.vals[i].width)
		if val == 0 && i < len(d.vals)-1 {
			continue
		}

		if i == 0 {
			switch {
			case val > 0 && val < 9:
				val += byteBiasPos
			case val > -9 && val < 0:
				val -= byteBiasNeg
			}
		}

		return val, nil
	}

	return 0, nil
}

// Rewind moves every cursor back to the start of its section.
func (d *DeltaDecoder) Rewind() {
	d.crumbs.index = 0
	d.nibbles.index = 0
	for i := range d.vals {
		d.vals[i].index = 0
	}
}

// Cursor returns the current stream positions.
func (d *DeltaDecoder) Cursor() Cursor {
	return Cursor{
		Selector: d.crumbs.index,
		Nibble:   d.nibbles.index,
		Values:   [3]int{d.vals[0].index, d.vals[1].index, d.vals[2].index},
	}
}
