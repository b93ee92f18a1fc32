/*
Package chunkfile provides file-level helpers on top of package chunk.

# Quick Start

Save a chunk file atomically:

	err := chunkfile.Save("box.w3d", func(w *chunk.Writer) error {
	    mesh, err := w.Container(W3DChunkMesh)
	    if err != nil {
	        return err
	    }
	    ...
	    return mesh.End()
	}, nil)

Load it back:

	err := chunkfile.Load("box.w3d", func(r *chunk.Reader) error {
	    for r.OpenChunk() == nil {
	        ...
	    }
	    return nil
	}, nil)

# Inspection

Inspect walks the chunk tree through a chunk.Reader and returns one Node per
chunk, descending into chunks whose sub-chunk flag is set. Verify audits a
raw buffer without a Reader so it can keep going after the first problem and
report every structural issue it finds.
*/
package chunkfile
