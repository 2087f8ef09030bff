package section

// Accepted stream signatures.
const (
	SignatureA uint32 = 0x100A9DA4
	SignatureB uint32 = 0x100AAD74
)

const (
	HeaderSize     = 0x50 // fixed stream header size in bytes
	LengthsOffset  = 0x14 // byte offset of the first section length
	ReservedOffset = 0x4C // byte offset of the reserved data word
	ComponentCount = 7    // quat x,y,z,w + trans x,y,z per track
)

// SectionID identifies one of the fourteen stream sections, numbered in header order.
type SectionID uint8

const (
	InitCrumbs SectionID = iota
	InitI8
	InitI16
	InitI32
	DeltaCrumbs
	DeltaNibbles
	DeltaI8
	DeltaI16
	DeltaI32
	ParamCrumbs
	ParamU8
	ParamU16
	ParamU32
	TrackFlags

	SectionCount = 14
)

// placementOrder is the order sections follow the header on disk.
var placementOrder = [SectionCount]SectionID{
	InitI32, DeltaI32, ParamU32,
	InitI16, DeltaI16, ParamU16,
	InitCrumbs, InitI8,
	DeltaCrumbs, DeltaNibbles, DeltaI8,
	ParamCrumbs, ParamU8,
	TrackFlags,
}

var elementWidths = [SectionCount]int{
	InitCrumbs:   1,
	InitI8:       1,
	InitI16:      2,
	InitI32:      4,
	DeltaCrumbs:  1,
	DeltaNibbles: 1,
	DeltaI8:      1,
	DeltaI16:     2,
	DeltaI32:     4,
	ParamCrumbs:  1,
	ParamU8:      1,
	ParamU16:     2,
	ParamU32:     4,
	TrackFlags:   1,
}

var sectionNames = [SectionCount]string{
	"init crumbs", "init i8", "init i16", "init i32",
	"delta crumbs", "delta nibbles", "delta i8", "delta i16", "delta i32",
	"param crumbs", "param u8", "param u16", "param u32",
	"track flags",
}

// Width returns the element width in bytes of the section.
func (id SectionID) Width() int {
	if id >= SectionCount {
		return 0
	}

	return elementWidths[id]
}

func (id SectionID) String() string {
	if id >= SectionCount {
		return "unknown"
	}

	return sectionNames[id]
}

// PlacementOrder returns the on-disk order of the sections.
func PlacementOrder() [SectionCount]SectionID {
	return placementOrder
}
