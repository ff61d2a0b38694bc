package cmd

import (
	"context"
	"io"

	"github.com/mwantia/sectorfs/data"
)

// API is the slice of the filesystem surface exposed to commands.
// It matches the operation set of sectorfs.VirtualFileSystem.
type API interface {
	// Exists reports whether a file is present at the given path.
	Exists(ctx context.Context, path string) (bool, error)

	// SectorOf returns the sector holding the file, with found=false
	// for absent paths.
	SectorOf(ctx context.Context, path string) (data.SectorID, bool, error)

	// List returns the entries visible under dir.
	List(ctx context.Context, dir string, recursive bool) ([]string, error)

	// IsDirectory reports whether the path names a directory.
	IsDirectory(path string) bool

	// Create allocates a sector and registers the file in the index.
	Create(ctx context.Context, path string, overwrite bool) (data.SectorID, error)

	// Delete removes the file and empties its sector.
	Delete(ctx context.Context, path string) error

	// Write replaces the file content, creating the file when absent.
	Write(ctx context.Context, path string, content string) (data.SectorID, error)

	// Read returns the file content, line-terminated.
	Read(ctx context.Context, path string) (string, error)
}

// Command represents an executable command against the filesystem.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls [-r] [path]")
	Usage() string

	// Execute runs the command with parsed arguments, writing output
	// to writer. Returns exit code (0 = success) and error.
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// Flags returns the flag set for this command (may be nil)
	Flags() *CommandFlagSet
}
