package chunk

import (
	"errors"

	"github.com/joshuapare/chunkio/internal/format"
)

var (
	// ErrDepthExceeded indicates a chunk was opened past the nesting limit.
	ErrDepthExceeded = errors.New("chunk: nesting depth exceeded")
	// ErrNoOpenChunk indicates an operation needed an open chunk and none was.
	ErrNoOpenChunk = errors.New("chunk: no open chunk")
	// ErrMicroChunkOpen indicates a micro-chunk was still open. Micro-chunks
	// do not nest and must be closed before chunks are opened or closed.
	ErrMicroChunkOpen = errors.New("chunk: micro chunk still open")
	// ErrNoMicroChunk indicates a micro-chunk close without a matching open.
	ErrNoMicroChunk = errors.New("chunk: no open micro chunk")
	// ErrContainerWrite indicates raw bytes were written to a chunk that
	// already holds sub-chunks.
	ErrContainerWrite = errors.New("chunk: raw write into a chunk holding sub-chunks")
	// ErrPayloadChunk indicates a sub-chunk was opened inside a chunk that
	// already holds raw bytes.
	ErrPayloadChunk = errors.New("chunk: sub-chunk inside a chunk holding raw bytes")
	// ErrMicroChunkFull indicates a write would push a micro-chunk past 255 bytes.
	ErrMicroChunkFull = errors.New("chunk: micro chunk payload exceeds 255 bytes")
	// ErrSizeOverflow indicates a chunk payload would exceed MaxChunkSize.
	ErrSizeOverflow = format.ErrSizeOverflow
	// ErrBoundary indicates a read, skip or nested header would cross the
	// boundary of the enclosing chunk or micro-chunk.
	ErrBoundary = errors.New("chunk: request crosses chunk boundary")
	// ErrPoisoned indicates an earlier header patch failed and the stream
	// position is indeterminate.
	ErrPoisoned = errors.New("chunk: writer poisoned by earlier failure")
	// ErrUnbalanced indicates Close was called with chunks or a micro-chunk
	// still open.
	ErrUnbalanced = errors.New("chunk: unbalanced chunk stack")
	// ErrNotInnermost indicates a handle was used while a deeper chunk was open.
	ErrNotInnermost = errors.New("chunk: handle is not the innermost open chunk")
)
