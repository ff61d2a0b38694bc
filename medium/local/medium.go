package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/medium"
)

// LocalMedium stores every resource as a plain file inside a single
// host directory. It is the closest analogue to the removable flash
// medium the on-disk format was designed for.
type LocalMedium struct {
	mu   sync.RWMutex
	path string
}

func NewLocalMedium(path string) (*LocalMedium, error) {
	if path == "" {
		return nil, data.ErrInvalid
	}

	return &LocalMedium{
		path: filepath.Clean(path),
	}, nil
}

// Name returns the identifier name defined for this medium.
func (*LocalMedium) Name() string {
	return "local"
}

// Open verifies the backing directory exists and is a directory.
func (lm *LocalMedium) Open(ctx context.Context) error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	info, err := os.Stat(lm.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data.ErrMediumFailed
		}

		return err
	}

	if !info.IsDir() {
		return data.ErrMediumFailed
	}

	return nil
}

// Close is a no-op; the underlying filesystem persists independently.
func (lm *LocalMedium) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns a list of capabilities supported by this medium.
func (lm *LocalMedium) Capabilities() *medium.Capabilities {
	return &medium.Capabilities{
		Capabilities: []medium.Capability{
			medium.CapabilityPersistent,
			medium.CapabilityAppend,
		},
	}
}

func (lm *LocalMedium) resolve(name string) string {
	return filepath.Join(lm.path, filepath.Base(name))
}

func (lm *LocalMedium) OpenRead(ctx context.Context, name string) (io.ReadCloser, error) {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	return os.Open(lm.resolve(name))
}

func (lm *LocalMedium) OpenAppend(ctx context.Context, name string) (io.WriteCloser, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return os.OpenFile(lm.resolve(name), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
}

func (lm *LocalMedium) OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return os.OpenFile(lm.resolve(name), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
}
