package chunkfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/chunkio/chunk"
)

const (
	chunkMesh       = 0x00000000
	chunkMeshHeader = 0x0000001F
	chunkVertices   = 0x00000002
	chunkHierarchy  = 0x00000100
	chunkPivots     = 0x00000102
)

// buildSample writes a small mesh-like file:
//
//	mesh (container)
//	  header  (payload: name + micro fields)
//	  vertices (payload: 2 x Vector3)
//	hierarchy (container)
//	  pivots (payload: 4 bytes)
func buildSample(w *chunk.Writer) error {
	mesh, err := w.Container(chunkMesh)
	if err != nil {
		return err
	}
	hdr, err := mesh.Payload(chunkMeshHeader)
	if err != nil {
		return err
	}
	hw, err := hdr.Writer()
	if err != nil {
		return err
	}
	if err := hw.WriteName("BOX", 16); err != nil {
		return err
	}
	if err := hw.WriteMicroUint32(1, 8); err != nil {
		return err
	}
	if err := hdr.End(); err != nil {
		return err
	}
	verts, err := mesh.Payload(chunkVertices)
	if err != nil {
		return err
	}
	vw, err := verts.Writer()
	if err != nil {
		return err
	}
	if err := vw.WriteVector3(chunk.Vector3{X: 1}); err != nil {
		return err
	}
	if err := vw.WriteVector3(chunk.Vector3{Y: 1}); err != nil {
		return err
	}
	if err := verts.End(); err != nil {
		return err
	}
	if err := mesh.End(); err != nil {
		return err
	}

	htree, err := w.Container(chunkHierarchy)
	if err != nil {
		return err
	}
	pivots, err := htree.Payload(chunkPivots)
	if err != nil {
		return err
	}
	if _, err := pivots.Write([]byte{1, 2, 3, 4}); err != nil {
		return err
	}
	if err := pivots.End(); err != nil {
		return err
	}
	return htree.End()
}

func sampleFile(t *testing.T) (string, []byte) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.w3d")
	require.NoError(t, Save(path, buildSample, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return path, data
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path, _ := sampleFile(t)

	var name string
	var verts []chunk.Vector3
	err := Load(path, func(r *chunk.Reader) error {
		for r.OpenChunk() == nil {
			if r.ChunkID() == chunkMesh {
				for r.OpenChunk() == nil {
					switch r.ChunkID() {
					case chunkMeshHeader:
						var err error
						if name, err = r.ReadName(16); err != nil {
							return err
						}
					case chunkVertices:
						for r.Remaining() > 0 {
							v, err := r.ReadVector3()
							if err != nil {
								return err
							}
							verts = append(verts, v)
						}
					}
					if err := r.CloseChunk(); err != nil {
						return err
					}
				}
			}
			if err := r.CloseChunk(); err != nil {
				return err
			}
		}
		return nil
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "BOX", name)
	require.Equal(t, []chunk.Vector3{{X: 1}, {Y: 1}}, verts)
}

func TestSaveFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.w3d")

	boom := errors.New("boom")
	err := Save(path, func(w *chunk.Writer) error {
		_ = w.BeginChunk(1)
		return boom
	}, nil)
	require.ErrorIs(t, err, boom)

	err = Save(path, func(w *chunk.Writer) error { return w.BeginChunk(1) }, nil)
	require.ErrorIs(t, err, chunk.ErrUnbalanced)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "missing.w3d"), func(*chunk.Reader) error { return nil }, nil)
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	_, data := sampleFile(t)
	nodes, err := Inspect(context.Background(), bytes.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	mesh := nodes[0]
	assert.EqualValues(t, chunkMesh, mesh.ID)
	assert.True(t, mesh.HasSubChunks)
	assert.Zero(t, mesh.Offset)
	require.Len(t, mesh.Children, 2)
	assert.EqualValues(t, chunkMeshHeader, mesh.Children[0].ID)
	assert.EqualValues(t, 16+6, mesh.Children[0].Length)
	assert.EqualValues(t, 8, mesh.Children[0].Offset)
	assert.EqualValues(t, chunkVertices, mesh.Children[1].ID)
	assert.EqualValues(t, 24, mesh.Children[1].Length)
	assert.EqualValues(t, 8+8+22, mesh.Children[1].Offset)
	assert.Equal(t, 1, mesh.Children[1].Depth)
	assert.EqualValues(t, (8+22)+(8+24), mesh.Length)

	htree := nodes[1]
	assert.EqualValues(t, chunkHierarchy, htree.ID)
	assert.EqualValues(t, 8+mesh.Length, htree.Offset)
	require.Len(t, htree.Children, 1)

	s := Summarize(nodes)
	assert.Equal(t, 5, s.Chunks)
	assert.Equal(t, 2, s.Containers)
	assert.Equal(t, 2, s.MaxDepth)
	assert.EqualValues(t, 22+24+4, s.PayloadBytes)
	assert.Equal(t, 1, s.ByType[chunkPivots])
}

func TestInspectLimits(t *testing.T) {
	_, data := sampleFile(t)

	nodes, err := Inspect(context.Background(), bytes.NewReader(data), &InspectOptions{MaxNodes: 2})
	require.ErrorIs(t, err, ErrTooManyNodes)
	require.Len(t, nodes, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Inspect(ctx, bytes.NewReader(data), nil)
	require.ErrorIs(t, err, context.Canceled)

	_, err = Inspect(context.Background(), bytes.NewReader(data),
		&InspectOptions{Reader: &chunk.Options{MaxDepth: 1}})
	require.ErrorIs(t, err, chunk.ErrDepthExceeded)
}

func TestInspectCorrupt(t *testing.T) {
	_, data := sampleFile(t)
	data = append([]byte(nil), data...)
	data[8+4] = 0xFF // mesh header chunk now overruns the mesh

	nodes, err := Inspect(context.Background(), bytes.NewReader(data), nil)
	require.ErrorIs(t, err, chunk.ErrBoundary)
	require.Len(t, nodes, 1)

	// Top-level chunk declaring 100 bytes with only 2 present.
	short := []byte{1, 0, 0, 0, 100, 0, 0, 0, 'a', 'b'}
	nodes, err = Inspect(context.Background(), bytes.NewReader(short), nil)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Len(t, nodes, 1)

	rep, err := Verify(context.Background(), short, nil)
	require.NoError(t, err)
	require.False(t, rep.OK())
}

func TestVerify(t *testing.T) {
	_, data := sampleFile(t)

	rep, err := Verify(context.Background(), data, nil)
	require.NoError(t, err)
	require.True(t, rep.OK(), "issues: %v", rep.Issues)
	require.Equal(t, 5, rep.Chunks)
	require.Equal(t, 2, rep.MaxDepth)
}

func TestVerifyIssues(t *testing.T) {
	_, good := sampleFile(t)
	clone := func() []byte { return append([]byte(nil), good...) }

	t.Run("child overrun keeps walking siblings of parent", func(t *testing.T) {
		data := clone()
		data[8+4] = 0xFF
		rep, err := Verify(context.Background(), data, nil)
		require.NoError(t, err)
		require.Len(t, rep.Issues, 1)
		require.Equal(t, IssueOverrun, rep.Issues[0].Kind)
		require.EqualValues(t, 8, rep.Issues[0].Offset)
		// mesh, hierarchy and pivots are still counted.
		require.Equal(t, 3, rep.Chunks)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := append(clone(), 1, 2, 3)
		rep, err := Verify(context.Background(), data, nil)
		require.NoError(t, err)
		require.Len(t, rep.Issues, 1)
		require.Equal(t, IssueTruncatedHeader, rep.Issues[0].Kind)
		require.EqualValues(t, len(good), rep.Issues[0].Offset)
	})

	t.Run("depth", func(t *testing.T) {
		rep, err := Verify(context.Background(), clone(), &VerifyOptions{MaxDepth: 1})
		require.NoError(t, err)
		require.Len(t, rep.Issues, 2)
		require.Equal(t, IssueDepth, rep.Issues[0].Kind)
		require.Equal(t, "depth", rep.Issues[0].Kind.String())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Verify(ctx, clone(), nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}
