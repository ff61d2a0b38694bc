// Package sectorfs implements a minimal virtual file system layered on
// a host medium that only exposes flat, numbered storage units. A
// line-oriented text index maps hierarchical virtual paths onto sector
// ids; all file content lives in the sector resource the index points
// at.
package sectorfs

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/sectorfs/index"
	"github.com/mwantia/sectorfs/log"
	"github.com/mwantia/sectorfs/medium"
)

// VirtualFileSystem composes the index store and the backing medium
// into the public file operation surface. A single mutex serializes
// every operation: each one re-reads the whole index, decides, then
// writes, so two interleaved mutations could otherwise corrupt the
// mapping.
type VirtualFileSystem struct {
	mu sync.Mutex

	medium medium.Medium
	index  *index.Store
	log    *log.Logger
}

func New(m medium.Medium, opts ...Option) (*VirtualFileSystem, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := log.NewLogger("sectorfs", options.LogLevel, options.LogFile, options.NoTerminalLog)

	return &VirtualFileSystem{
		medium: m,
		index:  index.NewStore(m, options.IndexResource),
		log:    logger,
	}, nil
}

// Init opens the medium and ensures the index resource exists,
// creating it empty when absent. Every file operation assumes Init has
// succeeded.
func (v *VirtualFileSystem) Init(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.medium.Open(ctx); err != nil {
		return fmt.Errorf("%w: medium %s: %v", ErrInitFailed, v.medium.Name(), err)
	}

	if err := v.index.Probe(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}

	caps := v.medium.Capabilities()
	v.log.Info("initialized on medium '%s' (capabilities: %v)", v.medium.Name(), caps.Capabilities)

	if !caps.Contains(medium.CapabilityPersistent) {
		v.log.Warn("medium '%s' is not persistent; contents are lost on shutdown", v.medium.Name())
	}

	return nil
}

// Shutdown releases the medium. The filesystem must not be used after.
func (v *VirtualFileSystem) Shutdown(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.log.Debug("shutting down medium '%s'", v.medium.Name())
	return v.medium.Close(ctx)
}
