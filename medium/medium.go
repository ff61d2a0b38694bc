package medium

import (
	"context"
	"io"
)

// Medium is the host storage layer sectorfs runs on. It exposes a flat
// namespace of named resources: the index resource plus one resource
// per sector, named by the decimal sector id. There are no directories
// and no metadata beyond the content itself.
type Medium interface {
	// Name returns the identifier name defined for this medium.
	Name() string

	// Open is part of the lifecycle behaviour and gets called once
	// before any resource I/O. It verifies the medium is reachable.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and releases any
	// handles or connections held by the medium.
	Close(ctx context.Context) error

	// Capabilities returns a list of capabilities supported by this medium.
	Capabilities() *Capabilities

	// OpenRead opens the named resource for reading.
	// Opening an absent resource fails.
	OpenRead(ctx context.Context, name string) (io.ReadCloser, error)

	// OpenAppend opens the named resource for appending, creating it
	// empty when absent. Written bytes become durable on Close at the
	// latest.
	OpenAppend(ctx context.Context, name string) (io.WriteCloser, error)

	// OpenTruncate opens the named resource for a full overwrite,
	// creating it when absent and discarding any previous content.
	OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error)
}
