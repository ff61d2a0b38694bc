package sectorfs_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/mwantia/sectorfs"
	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/log"
	"github.com/mwantia/sectorfs/medium"
	"github.com/mwantia/sectorfs/medium/ephemeral"
	"github.com/mwantia/sectorfs/medium/local"
	"github.com/mwantia/sectorfs/medium/sqlite"
)

type TestMediumFactory func(tst *testing.T) (medium.Medium, error)

func GetTestMediumFactories() map[string]TestMediumFactory {
	return map[string]TestMediumFactory{
		"ephemeral": func(tst *testing.T) (medium.Medium, error) {
			return ephemeral.NewEphemeralMedium(), nil
		},
		"local": func(tst *testing.T) (medium.Medium, error) {
			return local.NewLocalMedium(tst.TempDir())
		},
		"sqlite": func(tst *testing.T) (medium.Medium, error) {
			return sqlite.NewSQLiteMedium(":memory:")
		},
	}
}

func newTestFs(tst *testing.T, factory TestMediumFactory) *sectorfs.VirtualFileSystem {
	tst.Helper()
	ctx := tst.Context()

	m, err := factory(tst)
	if err != nil {
		tst.Fatalf("Failed to create medium: %v", err)
	}

	fs, err := sectorfs.New(m, sectorfs.WithLogLevel(log.Error))
	if err != nil {
		tst.Fatalf("Failed to initialize sectorfs: %v", err)
	}

	if err := fs.Init(ctx); err != nil {
		tst.Fatalf("Failed to init: %v", err)
	}
	tst.Cleanup(func() {
		fs.Shutdown(ctx)
	})

	return fs
}

// TestAllMedia_FileOperations verifies create, write and read across
// all medium implementations.
func TestAllMedia_FileOperations(t *testing.T) {
	for name, factory := range GetTestMediumFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()
			fs := newTestFs(tst, factory)

			sector, err := fs.Create(ctx, "/test.txt", true)
			if err != nil {
				tst.Fatalf("Create failed: %v", err)
			}
			if sector != 0 {
				tst.Errorf("Expected first sector 0, got %s", sector)
			}

			exists, err := fs.Exists(ctx, "/test.txt")
			if err != nil {
				tst.Fatalf("Exists failed: %v", err)
			}
			if !exists {
				tst.Error("Expected file to exist after create")
			}

			if _, err := fs.Write(ctx, "/test.txt", "hello world"); err != nil {
				tst.Fatalf("Write failed: %v", err)
			}

			got, err := fs.Read(ctx, "/test.txt")
			if err != nil {
				tst.Fatalf("Read failed: %v", err)
			}
			if got != "hello world\n" {
				tst.Errorf("Expected 'hello world\\n', got %q", got)
			}
		})
	}
}

// TestAllMedia_Delete verifies delete removes the index record and
// empties the sector.
func TestAllMedia_Delete(t *testing.T) {
	for name, factory := range GetTestMediumFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()
			fs := newTestFs(tst, factory)

			if _, err := fs.Write(ctx, "/doomed.txt", "content"); err != nil {
				tst.Fatalf("Write failed: %v", err)
			}

			if err := fs.Delete(ctx, "/doomed.txt"); err != nil {
				tst.Fatalf("Delete failed: %v", err)
			}

			exists, err := fs.Exists(ctx, "/doomed.txt")
			if err != nil {
				tst.Fatalf("Exists failed: %v", err)
			}
			if exists {
				tst.Error("Expected file to be gone after delete")
			}

			if _, err := fs.Read(ctx, "/doomed.txt"); !errors.Is(err, sectorfs.ErrNotExist) {
				tst.Errorf("Expected ErrNotExist from Read, got %v", err)
			}

			if err := fs.Delete(ctx, "/doomed.txt"); !errors.Is(err, sectorfs.ErrNotExist) {
				tst.Errorf("Expected ErrNotExist from second Delete, got %v", err)
			}
		})
	}
}

// TestCreate_NoOverwrite verifies that refusing overwrite leaves both
// the index record and the sector content untouched.
func TestCreate_NoOverwrite(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	original, err := fs.Write(ctx, "/keep.txt", "original")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := fs.Create(ctx, "/keep.txt", false); !errors.Is(err, sectorfs.ErrExist) {
		t.Fatalf("Expected ErrExist, got %v", err)
	}

	sector, found, err := fs.SectorOf(ctx, "/keep.txt")
	if err != nil || !found {
		t.Fatalf("SectorOf failed: found=%v err=%v", found, err)
	}
	if sector != original {
		t.Errorf("Expected sector %s to survive, got %s", original, sector)
	}

	got, err := fs.Read(ctx, "/keep.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "original\n" {
		t.Errorf("Expected content to survive, got %q", got)
	}
}

// TestCreate_Overwrite verifies overwrite is a delete and recreate,
// not an in-place update.
func TestCreate_Overwrite(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	if _, err := fs.Write(ctx, "/file.txt", "old"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := fs.Create(ctx, "/file.txt", true); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := fs.Read(ctx, "/file.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "" {
		t.Errorf("Expected recreated file to be empty, got %q", got)
	}
}

// TestWrite_NormalizesLineEndings verifies the documented lossy
// round-trip: every line comes back terminated, trailing newline or not.
func TestWrite_NormalizesLineEndings(t *testing.T) {
	cases := map[string]struct {
		input    string
		expected string
	}{
		"no-trailing-newline": {"alpha\nbeta", "alpha\nbeta\n"},
		"trailing-newline":    {"alpha\nbeta\n", "alpha\nbeta\n\n"},
		"single-line":         {"alpha", "alpha\n"},
		"empty":               {"", "\n"},
	}

	for name, tc := range cases {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()
			fs := newTestFs(tst, GetTestMediumFactories()["ephemeral"])

			if _, err := fs.Write(ctx, "/lines.txt", tc.input); err != nil {
				tst.Fatalf("Write failed: %v", err)
			}

			got, err := fs.Read(ctx, "/lines.txt")
			if err != nil {
				tst.Fatalf("Read failed: %v", err)
			}
			if got != tc.expected {
				tst.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestWrite_LongLine verifies single lines far beyond any fixed token
// buffer survive the write/read round trip.
func TestWrite_LongLine(t *testing.T) {
	for name, factory := range GetTestMediumFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()
			fs := newTestFs(tst, factory)

			long := strings.Repeat("x", 70*1024)
			if _, err := fs.Write(ctx, "/big.txt", long); err != nil {
				tst.Fatalf("Write failed: %v", err)
			}

			got, err := fs.Read(ctx, "/big.txt")
			if err != nil {
				tst.Fatalf("Read failed: %v", err)
			}
			if got != long+"\n" {
				tst.Errorf("Expected %d bytes back, got %d", len(long)+1, len(got))
			}
		})
	}
}

// limitedMedium caps the resource size of a wrapped medium.
type limitedMedium struct {
	medium.Medium
}

func (lm *limitedMedium) Capabilities() *medium.Capabilities {
	caps := lm.Medium.Capabilities()
	return &medium.Capabilities{
		Capabilities:    caps.Capabilities,
		MaxResourceSize: 16,
	}
}

// TestWrite_ExceedsMediumLimit verifies the medium's declared resource
// size limit is honored before any sector is touched.
func TestWrite_ExceedsMediumLimit(t *testing.T) {
	ctx := t.Context()

	fs, err := sectorfs.New(&limitedMedium{Medium: ephemeral.NewEphemeralMedium()},
		sectorfs.WithLogLevel(log.Error))
	if err != nil {
		t.Fatalf("Failed to initialize sectorfs: %v", err)
	}
	if err := fs.Init(ctx); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	defer fs.Shutdown(ctx)

	if _, err := fs.Write(ctx, "/big.txt", strings.Repeat("x", 32)); !errors.Is(err, data.ErrInvalid) {
		t.Errorf("Expected ErrInvalid beyond the limit, got %v", err)
	}

	if exists, err := fs.Exists(ctx, "/big.txt"); err != nil || exists {
		t.Errorf("Expected no file after rejected write: exists=%v err=%v", exists, err)
	}

	if _, err := fs.Write(ctx, "/small.txt", "ok"); err != nil {
		t.Errorf("Expected write under the limit to succeed, got %v", err)
	}
}

// TestList verifies the collapse and dedup rules for both listing modes.
func TestList(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	for _, path := range []string{"/a/x.txt", "/a/b/y.txt", "/a/b/z.txt"} {
		if _, err := fs.Create(ctx, path, true); err != nil {
			t.Fatalf("Create %s failed: %v", path, err)
		}
	}

	flat, err := fs.List(ctx, "/a/", false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !slices.Equal(flat, []string{"x.txt", "b/"}) {
		t.Errorf("Expected [x.txt b/], got %v", flat)
	}

	deep, err := fs.List(ctx, "/a/", true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !slices.Equal(deep, []string{"x.txt", "b/y.txt", "b/z.txt"}) {
		t.Errorf("Expected [x.txt b/y.txt b/z.txt], got %v", deep)
	}
}

// TestList_SubstringContainment pins the containment behaviour: a dir
// matching in the middle of a path still matches.
func TestList_SubstringContainment(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	if _, err := fs.Create(ctx, "/logs/archive/logs/old.txt", true); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entries, err := fs.List(ctx, "/logs/", false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	// Stripping ends after the first occurrence of the dir.
	if !slices.Equal(entries, []string{"archive/"}) {
		t.Errorf("Expected [archive/], got %v", entries)
	}
}

// TestSectorReuse replays the allocation scenario: deleting the lowest
// sector frees its id for the next create.
func TestSectorReuse(t *testing.T) {
	for name, factory := range GetTestMediumFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()
			fs := newTestFs(tst, factory)

			sector, err := fs.Create(ctx, "/f", true)
			if err != nil || sector != 0 {
				tst.Fatalf("Expected /f on sector 0, got %s err=%v", sector, err)
			}

			sector, err = fs.Create(ctx, "/g", true)
			if err != nil || sector != 1 {
				tst.Fatalf("Expected /g on sector 1, got %s err=%v", sector, err)
			}

			if err := fs.Delete(ctx, "/f"); err != nil {
				tst.Fatalf("Delete failed: %v", err)
			}

			sector, err = fs.Create(ctx, "/h", true)
			if err != nil || sector != 0 {
				tst.Fatalf("Expected /h to reuse sector 0, got %s err=%v", sector, err)
			}
		})
	}
}

// TestSectorOf_Absent verifies absence is a value, not an error.
func TestSectorOf_Absent(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	_, found, err := fs.SectorOf(ctx, "/nope.txt")
	if err != nil {
		t.Fatalf("SectorOf failed: %v", err)
	}
	if found {
		t.Error("Expected absent path to report found=false")
	}
}

// TestDistinctSectors verifies unique ids for never-deleted paths.
func TestDistinctSectors(t *testing.T) {
	ctx := t.Context()
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	seen := make(map[data.SectorID]string)
	for _, path := range []string{"/one", "/two", "/three", "/four"} {
		sector, err := fs.Create(ctx, path, true)
		if err != nil {
			t.Fatalf("Create %s failed: %v", path, err)
		}
		if prev, ok := seen[sector]; ok {
			t.Fatalf("Sector %s allocated for both %s and %s", sector, prev, path)
		}
		seen[sector] = path
	}
}

func TestIsDirectory(t *testing.T) {
	fs := newTestFs(t, GetTestMediumFactories()["ephemeral"])

	if !fs.IsDirectory("/a/b/") {
		t.Error("Expected trailing slash to mark a directory")
	}
	if fs.IsDirectory("/a/b") {
		t.Error("Expected plain path to not be a directory")
	}
	if !fs.IsDirectory("a/b/") {
		t.Error("Expected normalization before the check")
	}
}
