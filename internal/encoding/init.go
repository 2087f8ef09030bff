package encoding

// InitDecoder reads the absolute starting value of every track component.
//
// Each value is selected by one crumb: 0 yields zero, 1, 2 and 3 read the next
// signed 8-, 16- or 32-bit element.
type InitDecoder struct {
	r widthReader
}

// NewInitDecoder creates a decoder over the init sections.
//
// Parameters:
//   - crumbs: init crumb selector section
//   - i8, i16, i32: signed value sections
//
// Returns:
//   - *InitDecoder: decoder positioned at the first value
func NewInitDecoder(crumbs, i8, i16, i32 []byte) *InitDecoder {
	return &InitDecoder{r: newWidthReader("init", crumbs, i8, i16, i32)}
}

// Next decodes the next absolute value.
func (d *InitDecoder) Next() (int32, error) {
	code, raw, err := d.r.step(Forward)
	if err != nil || code == 0 {
		return 0, err
	}

	return signExtend(raw, 1<<(code-1)), nil
}

// Rewind moves every cursor back to the start of its section.
func (d *InitDecoder) Rewind() {
	d.r.rewind()
}

// Cursor returns the current stream positions.
func (d *InitDecoder) Cursor() Cursor {
	return d.r.cursor()
}
