package ephemeral

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/sectorfs/medium"
)

// EphemeralMedium keeps every resource in process memory. Nothing
// survives Close; it exists for tests and for hosts that only need a
// scratch filesystem.
type EphemeralMedium struct {
	mu        sync.RWMutex
	resources *btree.Map[string, []byte]
}

func NewEphemeralMedium() *EphemeralMedium {
	return &EphemeralMedium{
		resources: btree.NewMap[string, []byte](0),
	}
}

// Name returns the identifier name defined for this medium.
func (*EphemeralMedium) Name() string {
	return "ephemeral"
}

func (em *EphemeralMedium) Open(ctx context.Context) error {
	return nil
}

func (em *EphemeralMedium) Close(ctx context.Context) error {
	em.mu.Lock()
	defer em.mu.Unlock()

	em.resources.Clear()
	return nil
}

// Capabilities returns a list of capabilities supported by this medium.
func (em *EphemeralMedium) Capabilities() *medium.Capabilities {
	return &medium.Capabilities{
		Capabilities: []medium.Capability{
			medium.CapabilityAppend,
		},
	}
}

func (em *EphemeralMedium) OpenRead(ctx context.Context, name string) (io.ReadCloser, error) {
	em.mu.RLock()
	defer em.mu.RUnlock()

	content, ok := em.resources.Get(name)
	if !ok {
		return nil, fs.ErrNotExist
	}

	// Copy so later writes cannot mutate an open reader.
	buf := make([]byte, len(content))
	copy(buf, content)

	return io.NopCloser(bytes.NewReader(buf)), nil
}

func (em *EphemeralMedium) OpenAppend(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		em.mu.Lock()
		defer em.mu.Unlock()

		content, _ := em.resources.Get(name)
		em.resources.Set(name, append(content[:len(content):len(content)], buf...))
		return nil
	}), nil
}

func (em *EphemeralMedium) OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		em.mu.Lock()
		defer em.mu.Unlock()

		content := make([]byte, len(buf))
		copy(content, buf)
		em.resources.Set(name, content)
		return nil
	}), nil
}
