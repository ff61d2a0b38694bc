package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (CGO_ENABLED=0 compatible)

	"github.com/mwantia/sectorfs/medium"
)

// SQLiteMedium stores resources as rows of a single table inside a
// SQLite database. The dbPath can be ":memory:" for an in-memory
// database or a file path.
type SQLiteMedium struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteMedium(dbPath string) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A pooled ":memory:" database would open one fresh database per
	// connection; a single connection keeps every statement on the
	// same database and serializes writers.
	db.SetMaxOpenConns(1)

	return &SQLiteMedium{
		db: db,
	}, nil
}

// Name returns the identifier name defined for this medium.
func (*SQLiteMedium) Name() string {
	return "sqlite"
}

// Open pings the database and creates the resource table.
func (sm *SQLiteMedium) Open(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := sm.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sectorfs_resources (
		name TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	if _, err := sm.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (sm *SQLiteMedium) Close(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.db.Close()
}

// Capabilities returns a list of capabilities supported by this medium.
func (sm *SQLiteMedium) Capabilities() *medium.Capabilities {
	return &medium.Capabilities{
		Capabilities: []medium.Capability{
			medium.CapabilityPersistent,
		},
		// SQLite defaults to a 1GB blob limit
		MaxResourceSize: 1073741824,
	}
}

func (sm *SQLiteMedium) OpenRead(ctx context.Context, name string) (io.ReadCloser, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var content []byte
	row := sm.db.QueryRowContext(ctx, `SELECT content FROM sectorfs_resources WHERE name = ?`, name)
	if err := row.Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return nil, fs.ErrNotExist
		}

		return nil, err
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

func (sm *SQLiteMedium) OpenAppend(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		sm.mu.Lock()
		defer sm.mu.Unlock()

		_, err := sm.db.ExecContext(ctx, `
			INSERT INTO sectorfs_resources (name, content, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				content = content || excluded.content,
				updated_at = excluded.updated_at
		`, name, buf, time.Now().Unix())

		return err
	}), nil
}

func (sm *SQLiteMedium) OpenTruncate(ctx context.Context, name string) (io.WriteCloser, error) {
	return medium.NewCommitWriter(func(buf []byte) error {
		sm.mu.Lock()
		defer sm.mu.Unlock()

		_, err := sm.db.ExecContext(ctx, `
			INSERT INTO sectorfs_resources (name, content, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				content = excluded.content,
				updated_at = excluded.updated_at
		`, name, buf, time.Now().Unix())

		return err
	}), nil
}
