package data

import "errors"

// Standard sectorfs errors shared across the service, the index store
// and the medium implementations.
var (
	// Lifecycle errors
	ErrInitFailed   = errors.New("sectorfs: init failed")
	ErrMediumFailed = errors.New("sectorfs: medium unavailable")

	// Index errors
	ErrCannotOpenIndex = errors.New("sectorfs: cannot open index")
	ErrIndexMalformed  = errors.New("sectorfs: malformed index line")

	// File operation errors
	ErrCannotOpenSector = errors.New("sectorfs: cannot open sector")
	ErrNotExist         = errors.New("sectorfs: file does not exist")
	ErrExist            = errors.New("sectorfs: file already exists")

	// I/O errors
	ErrClosed  = errors.New("sectorfs: resource already closed")
	ErrInvalid = errors.New("sectorfs: invalid argument")
)
