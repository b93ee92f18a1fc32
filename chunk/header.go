package chunk

import "github.com/joshuapare/chunkio/internal/format"

// ChunkHeader is the 8-byte header preceding every chunk payload.
type ChunkHeader = format.ChunkHeader

// MicroChunkHeader is the 2-byte header preceding every micro-chunk payload.
type MicroChunkHeader = format.MicroChunkHeader

const (
	// ChunkHeaderSize is the encoded size of a ChunkHeader.
	ChunkHeaderSize = format.ChunkHeaderSize
	// MicroChunkHeaderSize is the encoded size of a MicroChunkHeader.
	MicroChunkHeaderSize = format.MicroChunkHeaderSize
	// MaxMicroChunkSize is the largest micro-chunk payload.
	MaxMicroChunkSize = format.MaxMicroChunkSize
	// MaxChunkSize is the largest chunk payload a header can describe.
	MaxChunkSize = format.MaxChunkSize
	// DefaultMaxDepth is the default nesting limit for writers and readers.
	DefaultMaxDepth = format.DefaultMaxDepth
)

// NewChunkHeader returns a header with the given type and size and no
// sub-chunk flag.
func NewChunkHeader(typ, size uint32) ChunkHeader {
	return format.NewChunkHeader(typ, size)
}
