package sectorfs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/index"
)

// Exists reports whether an exact match for the path is present in the
// index. Absence is a normal outcome, never an error.
func (v *VirtualFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	records, err := v.index.Load(ctx)
	if err != nil {
		return false, err
	}

	_, ok := find(records, ToAbsolutePath(path))
	return ok, nil
}

// SectorOf returns the sector holding the file at path. The second
// return value is false when the path is not in the index; an error is
// only returned for I/O failure.
func (v *VirtualFileSystem) SectorOf(ctx context.Context, path string) (data.SectorID, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	records, err := v.index.Load(ctx)
	if err != nil {
		return 0, false, err
	}

	sector, ok := find(records, ToAbsolutePath(path))
	return sector, ok, nil
}

// IsDirectory reports whether the normalized path names a directory.
// Directories are not stored entities; this is purely the syntactic
// trailing-slash check listing remainders rely on.
func (v *VirtualFileSystem) IsDirectory(path string) bool {
	return strings.HasSuffix(ToAbsolutePath(path), "/")
}

// List returns the entries visible under dir, in the order their
// records appear in the index, deduplicated. Matching is by substring
// containment of dir anywhere in a record's path, not prefix matching;
// everything up to and including the first occurrence of dir is
// stripped. Without recursive, a remainder that still descends into a
// sub-directory collapses to its first segment plus a trailing slash.
func (v *VirtualFileSystem) List(ctx context.Context, dir string, recursive bool) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	dir = ToAbsolutePath(dir)

	records, err := v.index.Load(ctx)
	if err != nil {
		return nil, err
	}

	var entries []string
	seen := make(map[string]struct{})

	for _, record := range records {
		at := strings.Index(record.Path, dir)
		if at < 0 {
			continue
		}

		name := record.Path[at+len(dir):]
		if !recursive {
			if cut := strings.Index(name, "/"); cut >= 0 {
				name = name[:cut+1]
			}
		}

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, name)
	}

	return entries, nil
}

// Create allocates a sector for a new file at path and registers it in
// the index. With overwrite, an existing file is deleted first (its
// sector id may change); without it, an existing path fails with
// ErrExist. The sector resource is created empty.
func (v *VirtualFileSystem) Create(ctx context.Context, path string, overwrite bool) (data.SectorID, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.create(ctx, ToAbsolutePath(path), overwrite)
}

// Delete removes the file at path: its sector is truncated to empty
// (the sector number stays on the medium, free for reuse) and the
// index is rewritten without the record.
func (v *VirtualFileSystem) Delete(ctx context.Context, path string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.delete(ctx, ToAbsolutePath(path))
}

// Write replaces the content of the file at path, creating it first
// when absent. The data is split on \n and every resulting line is
// written with a terminating line break, normalizing arbitrary input
// into the medium's line-oriented form. Returns the sector written to.
func (v *VirtualFileSystem) Write(ctx context.Context, path string, content string) (data.SectorID, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	path = ToAbsolutePath(path)

	// Line normalization appends one terminator beyond the input.
	size := int64(len(content)) + 1
	if caps := v.medium.Capabilities(); caps.MaxResourceSize > 0 && size > caps.MaxResourceSize {
		return 0, fmt.Errorf("%w: %d bytes exceeds medium limit of %d",
			data.ErrInvalid, size, caps.MaxResourceSize)
	}

	records, err := v.index.Load(ctx)
	if err != nil {
		return 0, err
	}

	sector, ok := find(records, path)
	if !ok {
		if sector, err = v.create(ctx, path, true); err != nil {
			return 0, err
		}
	}

	w, err := v.medium.OpenTruncate(ctx, sector.String())
	if err != nil {
		return 0, fmt.Errorf("%w: sector %s: %v", data.ErrCannotOpenSector, sector, err)
	}

	for _, line := range strings.Split(content, "\n") {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			w.Close()
			return 0, err
		}
	}

	if err := w.Close(); err != nil {
		return 0, err
	}

	v.log.Debug("wrote %d bytes to '%s' (sector %s)", len(content), path, sector)
	return sector, nil
}

// Read returns the content of the file at path. Every line comes back
// terminated by \n, including the last, regardless of how the content
// was written.
func (v *VirtualFileSystem) Read(ctx context.Context, path string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	path = ToAbsolutePath(path)

	records, err := v.index.Load(ctx)
	if err != nil {
		return "", err
	}

	sector, ok := find(records, path)
	if !ok {
		return "", fmt.Errorf("%w: %s", data.ErrNotExist, path)
	}

	r, err := v.medium.OpenRead(ctx, sector.String())
	if err != nil {
		return "", fmt.Errorf("%w: sector %s: %v", data.ErrCannotOpenSector, sector, err)
	}
	defer r.Close()

	var sb strings.Builder

	// Lines have no length bound, so read them with ReadString rather
	// than a token-capped scanner.
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// create implements Create with the lock held and the path normalized.
func (v *VirtualFileSystem) create(ctx context.Context, path string, overwrite bool) (data.SectorID, error) {
	// Probe appendability first so an unopenable index wins over the
	// exists check.
	if err := v.index.Probe(ctx); err != nil {
		return 0, err
	}

	records, err := v.index.Load(ctx)
	if err != nil {
		return 0, err
	}

	if _, ok := find(records, path); ok {
		if !overwrite {
			return 0, fmt.Errorf("%w: %s", data.ErrExist, path)
		}

		if err := v.delete(ctx, path); err != nil {
			return 0, err
		}

		// The delete rewrote the index; allocate against the fresh state.
		if records, err = v.index.Load(ctx); err != nil {
			return 0, err
		}
	}

	sector := index.Allocate(records)

	if err := v.index.Append(ctx, data.Record{Path: path, Sector: sector}); err != nil {
		return 0, err
	}

	w, err := v.medium.OpenTruncate(ctx, sector.String())
	if err != nil {
		return 0, fmt.Errorf("%w: sector %s: %v", data.ErrCannotOpenSector, sector, err)
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	v.log.Debug("created '%s' on sector %s", path, sector)
	return sector, nil
}

// delete implements Delete with the lock held and the path normalized.
func (v *VirtualFileSystem) delete(ctx context.Context, path string) error {
	records, err := v.index.Load(ctx)
	if err != nil {
		return err
	}

	sector, ok := find(records, path)
	if !ok {
		return fmt.Errorf("%w: %s", data.ErrNotExist, path)
	}

	// Empty the sector; the id itself stays allocated on the medium
	// until the allocator hands it out again.
	w, err := v.medium.OpenTruncate(ctx, sector.String())
	if err != nil {
		return fmt.Errorf("%w: sector %s: %v", data.ErrCannotOpenSector, sector, err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	survivors := make([]data.Record, 0, len(records))
	for _, record := range records {
		if record.Path != path {
			survivors = append(survivors, record)
		}
	}

	if err := v.index.Rewrite(ctx, survivors); err != nil {
		return err
	}

	v.log.Debug("deleted '%s' (sector %s emptied)", path, sector)
	return nil
}

// find scans records for an exact path match.
func find(records []data.Record, path string) (data.SectorID, bool) {
	for _, record := range records {
		if record.Path == path {
			return record.Sector, true
		}
	}

	return 0, false
}
