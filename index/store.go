package index

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/sectorfs/data"
	"github.com/mwantia/sectorfs/medium"
)

// DefaultResource is the name of the index resource on the medium.
const DefaultResource = "index.txt"

// Store owns the persisted index: the ordered sequence of path→sector
// records backed by a single line-oriented text resource. Every call
// performs a full open/close cycle against the medium; no handle is
// held across calls, so the resource stays the single source of truth.
type Store struct {
	medium   medium.Medium
	resource string
}

func NewStore(m medium.Medium, resource string) *Store {
	if resource == "" {
		resource = DefaultResource
	}

	return &Store{
		medium:   m,
		resource: resource,
	}
}

// Resource returns the name of the backing index resource.
func (s *Store) Resource() string {
	return s.resource
}

// Load reads and parses the full index. Each line maps to one record,
// split at the last slash: everything before is the path, everything
// after is the sector id. A line without a slash or with a non-numeric
// sector field fails with ErrIndexMalformed.
func (s *Store) Load(ctx context.Context) ([]data.Record, error) {
	r, err := s.medium.OpenRead(ctx, s.resource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", data.ErrCannotOpenIndex, s.resource, err)
	}
	defer r.Close()

	var records []data.Record

	// Paths have no length bound, so read lines with ReadString rather
	// than a token-capped scanner.
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		eof := err == io.EOF

		if text == "" && eof {
			break
		}

		text = strings.TrimSuffix(text, "\n")

		cut := strings.LastIndex(text, "/")
		if cut < 0 {
			return nil, fmt.Errorf("%w: line %d", data.ErrIndexMalformed, line)
		}

		sector, err := data.ParseSectorID(text[cut+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", data.ErrIndexMalformed, line, err)
		}

		records = append(records, data.Record{
			Path:   text[:cut],
			Sector: sector,
		})

		if eof {
			break
		}
	}

	return records, nil
}

// Append adds a single record to the end of the index.
func (s *Store) Append(ctx context.Context, record data.Record) error {
	w, err := s.medium.OpenAppend(ctx, s.resource)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", data.ErrCannotOpenIndex, s.resource, err)
	}

	if _, err := fmt.Fprintf(w, "%s/%s\n", record.Path, record.Sector); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// Rewrite replaces the whole index with the given records, preserving
// their order. Used by delete to drop exactly one record.
func (s *Store) Rewrite(ctx context.Context, records []data.Record) error {
	w, err := s.medium.OpenTruncate(ctx, s.resource)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", data.ErrCannotOpenIndex, s.resource, err)
	}

	for _, record := range records {
		if _, err := fmt.Fprintf(w, "%s/%s\n", record.Path, record.Sector); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// Probe verifies the index resource can be opened for append, creating
// it empty when absent. No bytes are written.
func (s *Store) Probe(ctx context.Context) error {
	w, err := s.medium.OpenAppend(ctx, s.resource)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", data.ErrCannotOpenIndex, s.resource, err)
	}

	return w.Close()
}
