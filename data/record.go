package data

// Record is a single entry of the persisted index: the mapping of one
// absolute virtual path to the sector holding its content.
type Record struct {
	// Path is the absolute virtual path, always with a leading slash.
	Path string

	// Sector is the storage unit the file content lives in.
	Sector SectorID
}
