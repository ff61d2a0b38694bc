package sectorfs

import "github.com/mwantia/sectorfs/data"

// Sentinel errors re-exported from the data package so callers can
// match with errors.Is without importing it.
var (
	ErrInitFailed       = data.ErrInitFailed
	ErrMediumFailed     = data.ErrMediumFailed
	ErrCannotOpenIndex  = data.ErrCannotOpenIndex
	ErrIndexMalformed   = data.ErrIndexMalformed
	ErrCannotOpenSector = data.ErrCannotOpenSector
	ErrNotExist         = data.ErrNotExist
	ErrExist            = data.ErrExist
)
