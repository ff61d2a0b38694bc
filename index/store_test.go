package index_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/index"
	"github.com/mwantia/sectorfs/medium/ephemeral"
)

func writeIndex(tst *testing.T, m *ephemeral.EphemeralMedium, content string) {
	tst.Helper()

	w, err := m.OpenTruncate(tst.Context(), index.DefaultResource)
	if err != nil {
		tst.Fatalf("OpenTruncate failed: %v", err)
	}
	if _, err := io.WriteString(w, content); err != nil {
		tst.Fatalf("WriteString failed: %v", err)
	}
	if err := w.Close(); err != nil {
		tst.Fatalf("Close failed: %v", err)
	}
}

func TestStore_LoadSplitsAtLastSlash(t *testing.T) {
	m := ephemeral.NewEphemeralMedium()
	writeIndex(t, m, "/a/b.txt/3\n/f/0\n//12\n")

	records, err := index.NewStore(m, "").Load(t.Context())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []data.Record{
		{Path: "/a/b.txt", Sector: 3},
		{Path: "/f", Sector: 0},
		{Path: "/", Sector: 12},
	}

	if len(records) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(records))
	}
	for i, record := range records {
		if record != expected[i] {
			t.Errorf("Record %d: expected %+v, got %+v", i, expected[i], record)
		}
	}
}

func TestStore_LoadMissingResource(t *testing.T) {
	m := ephemeral.NewEphemeralMedium()

	if _, err := index.NewStore(m, "").Load(t.Context()); !errors.Is(err, data.ErrCannotOpenIndex) {
		t.Errorf("Expected ErrCannotOpenIndex, got %v", err)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	cases := map[string]string{
		"no-slash":           "garbage\n",
		"non-numeric-sector": "/a/b.txt/xyz\n",
		"empty-line":         "/a/0\n\n/b/1\n",

		// A leading zero would not survive a rewrite byte-for-byte
		"leading-zero-sector": "/a/01\n",
		"signed-sector":       "/a/+1\n",
	}

	for name, content := range cases {
		t.Run(name, func(tst *testing.T) {
			m := ephemeral.NewEphemeralMedium()
			writeIndex(tst, m, content)

			if _, err := index.NewStore(m, "").Load(tst.Context()); !errors.Is(err, data.ErrIndexMalformed) {
				tst.Errorf("Expected ErrIndexMalformed, got %v", err)
			}
		})
	}
}

// TestStore_LoadLongLine verifies index lines are not subject to any
// fixed token size.
func TestStore_LoadLongLine(t *testing.T) {
	longPath := "/" + strings.Repeat("p", 70*1024)

	m := ephemeral.NewEphemeralMedium()
	writeIndex(t, m, longPath+"/4\n")

	records, err := index.NewStore(m, "").Load(t.Context())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 1 || records[0].Path != longPath || records[0].Sector != 4 {
		t.Fatalf("Expected long record back, got %d records", len(records))
	}
}

func TestStore_AppendAndRewrite(t *testing.T) {
	ctx := t.Context()
	m := ephemeral.NewEphemeralMedium()
	store := index.NewStore(m, "")

	if err := store.Probe(ctx); err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	records := []data.Record{
		{Path: "/one", Sector: 0},
		{Path: "/two", Sector: 1},
		{Path: "/three", Sector: 2},
	}
	for _, record := range records {
		if err := store.Append(ctx, record); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 3 || loaded[1] != records[1] {
		t.Fatalf("Expected appended records back, got %+v", loaded)
	}

	// Drop the middle record, order of survivors preserved
	if err := store.Rewrite(ctx, []data.Record{records[0], records[2]}); err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != records[0] || loaded[1] != records[2] {
		t.Fatalf("Expected survivors in order, got %+v", loaded)
	}
}

func TestStore_PersistedFormat(t *testing.T) {
	ctx := t.Context()
	m := ephemeral.NewEphemeralMedium()
	store := index.NewStore(m, "")

	if err := store.Append(ctx, data.Record{Path: "/a/b.txt", Sector: 7}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	r, err := m.OpenRead(ctx, index.DefaultResource)
	if err != nil {
		t.Fatalf("OpenRead failed: %v", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(raw) != "/a/b.txt/7\n" {
		t.Errorf("Expected exact line format, got %q", string(raw))
	}

	if !strings.HasSuffix(string(raw), "\n") {
		t.Error("Expected line-terminated index")
	}
}
