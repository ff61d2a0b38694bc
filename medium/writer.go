package medium

import (
	"bytes"

	"github.com/mwantia/sectorfs/data"
)

// CommitWriter buffers written bytes and hands the full buffer to a
// commit callback on Close. Media without native streaming writes
// (key-value and object stores) use it to implement OpenAppend and
// OpenTruncate with a single store call.
type CommitWriter struct {
	buf    bytes.Buffer
	commit func([]byte) error
	closed bool
}

func NewCommitWriter(commit func([]byte) error) *CommitWriter {
	return &CommitWriter{commit: commit}
}

func (cw *CommitWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, data.ErrClosed
	}
	return cw.buf.Write(p)
}

func (cw *CommitWriter) Close() error {
	if cw.closed {
		return data.ErrClosed
	}
	cw.closed = true

	return cw.commit(cw.buf.Bytes())
}
