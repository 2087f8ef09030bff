package encoding

// RunDecoder reads the unsigned run lengths that drive the parameter scheduler.
//
// The cursor always sits just past the most recently consumed run. Stepping
// backward un-consumes that run and reports the one before it, which is still
// consumed: that value is how many slots the scheduler skipped since the previous
// toggle.
type RunDecoder struct {
	r widthReader
}

// NewRunDecoder creates a decoder over the param sections.
func NewRunDecoder(crumbs, u8, u16, u32 []byte) *RunDecoder {
	return &RunDecoder{r: newWidthReader("param", crumbs, u8, u16, u32)}
}

// Next consumes and returns the next run length.
func (d *RunDecoder) Next() (uint32, error) {
	return d.Step(Forward)
}

// Step moves the run cursor one field in direction dir.
//
// Forward consumes and returns the next run length. Backward un-consumes the
// current run length and returns the preceding one without moving past it.
//
// Returns:
//   - uint32: the run length now in effect
//   - error: errs.ErrMalformedStream when the move leaves the sections
func (d *RunDecoder) Step(dir Direction) (uint32, error) {
	if dir == Forward {
		_, raw, err := d.r.step(Forward)
		return raw, err
	}

	if _, _, err := d.r.step(Backward); err != nil {
		return 0, err
	}

	_, raw, err := d.r.peekBehind()

	return raw, err
}

// Rewind moves every cursor back to the start of its section.
func (d *RunDecoder) Rewind() {
	d.r.rewind()
}

// Cursor returns the current stream positions.
func (d *RunDecoder) Cursor() Cursor {
	return d.r.cursor()
}
