package chunk

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/chunkio/internal/writer"
)

var errInjected = errors.New("injected stream failure")

// faultyStream fails every Seek to an absolute position once armed.
type faultyStream struct {
	*writer.MemStream
	failAbsSeek bool
}

func (f *faultyStream) Seek(off int64, whence int) (int64, error) {
	if f.failAbsSeek && whence == io.SeekStart {
		return 0, errInjected
	}
	return f.MemStream.Seek(off, whence)
}

// node describes a chunk tree for round-trip tests. Payload and Children
// are mutually exclusive.
type node struct {
	Type     uint32
	Payload  []byte
	Children []node
}

func writeTree(t *testing.T, w *Writer, n node) {
	t.Helper()
	require.NoError(t, w.BeginChunk(n.Type))
	if len(n.Children) > 0 {
		for _, c := range n.Children {
			writeTree(t, w, c)
		}
	} else if len(n.Payload) > 0 {
		got, err := w.Write(n.Payload)
		require.NoError(t, err)
		require.Equal(t, len(n.Payload), got)
	}
	require.NoError(t, w.EndChunk())
}

func readTree(t *testing.T, r *Reader) node {
	t.Helper()
	n := node{Type: r.ChunkID()}
	if r.ContainsChunks() {
		for r.OpenChunk() == nil {
			n.Children = append(n.Children, readTree(t, r))
			require.NoError(t, r.CloseChunk())
		}
		return n
	}
	if r.ChunkLength() > 0 {
		p, err := r.ReadAll()
		require.NoError(t, err)
		n.Payload = p
	}
	return n
}

func encodeTree(t *testing.T, roots ...node) []byte {
	t.Helper()
	ms := writer.NewMemStream()
	w := NewWriter(ms, nil)
	for _, n := range roots {
		writeTree(t, w, n)
	}
	require.NoError(t, w.Close())
	return ms.Bytes()
}

func newReader(b []byte) *Reader {
	return NewReader(writer.NewMemStreamFrom(b), nil)
}
