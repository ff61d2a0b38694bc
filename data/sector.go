package data

import (
	"fmt"
	"strconv"
)

// SectorID identifies a physical storage unit on the backing medium.
// Internally it is a plain unsigned integer; the decimal text form is
// only produced at the storage boundary, where it doubles as the
// resource name of the sector and as the trailing field of an index
// line.
type SectorID uint64

// ParseSectorID converts the stored decimal text form back into a
// SectorID. The text must be the canonical decimal form: a rewrite of
// the index re-emits ids through String, so anything that would not
// round-trip byte-for-byte (leading zeros, a plus sign) is rejected.
func ParseSectorID(text string) (SectorID, error) {
	id, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, err
	}

	sector := SectorID(id)
	if sector.String() != text {
		return 0, fmt.Errorf("non-canonical sector id %q", text)
	}

	return sector, nil
}

// String returns the decimal text form used on the medium.
func (id SectorID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
