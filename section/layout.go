package section

import (
	"fmt"

	"github.com/arloliu/enbaya/errs"
)

// Descriptor locates one section inside the stream buffer.
type Descriptor struct {
	ID     SectionID
	Offset int // absolute byte offset from the start of the stream
	Length int // byte length
	Width  int // element width in bytes
}

// Count returns the number of elements in the section.
func (d Descriptor) Count() int {
	return d.Length / d.Width
}

// Layout holds the descriptors of all fourteen sections of a stream.
type Layout struct {
	descriptors [SectionCount]Descriptor
	end         int
}

// NewLayout derives the section descriptors from a header, consuming the lengths in
// placement order starting right after the header.
//
// Parameters:
//   - h: Parsed stream header
//   - dataLen: Length of the stream buffer the layout will be applied to
//
// Returns:
//   - Layout: Descriptors for every section
//   - error: ErrMalformedStream if a section exceeds the buffer, a length is not a
//     multiple of its element width, or the track flags do not cover every track
func NewLayout(h StreamHeader, dataLen int) (Layout, error) {
	var l Layout

	offset := uint64(HeaderSize)
	for _, id := range placementOrder {
		length := uint64(h.Lengths[id])
		width := id.Width()

		if length%uint64(width) != 0 {
			return Layout{}, fmt.Errorf("%w: %s length %d is not a multiple of %d",
				errs.ErrMalformedStream, id, length, width)
		}

		if offset+length > uint64(dataLen) {
			return Layout{}, fmt.Errorf("%w: %s section [%d, %d) exceeds buffer of %d bytes",
				errs.ErrMalformedStream, id, offset, offset+length, dataLen)
		}

		l.descriptors[id] = Descriptor{
			ID:     id,
			Offset: int(offset),
			Length: int(length),
			Width:  width,
		}
		offset += length
	}
	l.end = int(offset)

	if uint64(h.Lengths[TrackFlags]) < uint64(h.TrackCount) {
		return Layout{}, fmt.Errorf("%w: %d track flags for %d tracks",
			errs.ErrMalformedStream, h.Lengths[TrackFlags], h.TrackCount)
	}

	return l, nil
}

// Descriptor returns the descriptor of the given section.
func (l Layout) Descriptor(id SectionID) Descriptor {
	return l.descriptors[id]
}

// Slice returns the bytes of a section as a view into data, without copying.
//
// data must be the buffer the layout was computed for.
func (l Layout) Slice(data []byte, id SectionID) []byte {
	d := l.descriptors[id]
	return data[d.Offset : d.Offset+d.Length : d.Offset+d.Length]
}

// End returns the byte offset just past the last section.
func (l Layout) End() int {
	return l.end
}
