package index

import "github.com/mwantia/sectorfs/data"

// Allocate picks the sector id for a new file: a single linear pass
// over the records in stored order, advancing a candidate whenever a
// record already holds it. An empty index allocates sector 0.
//
// The scan only yields the true minimum free id while records sit in
// ascending sector order, which append-on-create happens to produce.
// Deleting and recreating files out of creation order can make the
// result skip past free ids; callers accept that in exchange for the
// single pass. Do not replace this with a sort-and-gap scan without
// revisiting every consumer of the on-medium layout.
func Allocate(records []data.Record) data.SectorID {
	var candidate data.SectorID

	for _, record := range records {
		if record.Sector == candidate {
			candidate++
		}
	}

	return candidate
}
