// Package chunk implements the nested, length-prefixed binary chunk format
// used by the W3D family of 3D asset files (meshes, hierarchies, animations
// and aggregates).
//
// # Wire Format
//
// Every chunk starts with an 8-byte header (little-endian):
//
//	Offset  Size  Field
//	0x00    4     Type tag
//	0x04    4     Bit 31: payload holds sub-chunks
//	              Bits 0-30: payload length, excluding this header
//
// A chunk's payload is either raw bytes or a back-to-back sequence of child
// chunks. Inside a raw payload, small scalar fields are usually stored as
// micro-chunks with a 2-byte header (1-byte type, 1-byte length), so a
// micro-chunk carries at most 255 bytes.
//
// # Writing
//
// A Writer wraps an io.WriteSeeker. Sizes are unknown while a chunk is open,
// so BeginChunk writes a placeholder header and EndChunk seeks back to patch
// it with the accumulated size:
//
//	w := chunk.NewWriter(stream, nil)
//	w.BeginChunk(MeshChunk)
//	w.BeginChunk(MeshHeaderChunk)
//	w.Write(headerBytes)
//	w.EndChunk()
//	w.EndChunk()
//
// Container and Payload handles give the same protocol a typed shape: a
// Container can only hold chunks and a Payload can only hold bytes.
//
// # Reading
//
// A Reader wraps an io.ReadSeeker and enforces each open chunk's declared
// boundary. Children are enumerated until OpenChunk returns io.EOF, and
// CloseChunk skips whatever the caller did not read, so unknown chunk types
// are passed over:
//
//	for r.OpenChunk() == nil {
//	    switch r.ChunkID() {
//	    case MeshHeaderChunk:
//	        readHeader(r)
//	    }
//	    if err := r.CloseChunk(); err != nil {
//	        return err
//	    }
//	}
//
// # Failure Semantics
//
// Neither side retries or rolls back. After any error the caller must abandon
// the whole save or load; the stream and the open-chunk stack are no longer
// guaranteed to agree. A Writer that failed in the middle of patching a
// header is poisoned and reports ErrPoisoned from every later call.
//
// Writers and Readers are not safe for concurrent use, and no other code may
// touch the underlying stream while chunks are open.
package chunk
