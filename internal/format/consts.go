// Package format houses the wire layout of chunk and micro-chunk headers.
// The goal is to keep encoding focused, allocation-free, and independent from
// the stateful writer and reader so higher-level packages can reuse it when
// scanning raw buffers.
package format

const (
	// ChunkHeaderSize is the size of a chunk header in bytes.
	//
	//	Offset  Size  Field
	//	0x00    4     Type tag (opaque to this package)
	//	0x04    4     Size and flag: bit 31 = payload holds sub-chunks,
	//	              bits 0-30 = payload length excluding this header
	ChunkHeaderSize = 8

	// Chunk header field offsets.
	ChunkTypeOffset = 0x00
	ChunkSizeOffset = 0x04

	// SubChunkFlag marks a chunk whose payload is a sequence of child chunks.
	SubChunkFlag uint32 = 0x80000000

	// SizeMask selects the payload length bits of the size field.
	SizeMask uint32 = 0x7FFFFFFF

	// MaxChunkSize is the largest payload length a chunk header can describe.
	MaxChunkSize = SizeMask

	// MicroChunkHeaderSize is the size of a micro-chunk header in bytes.
	//
	//	Offset  Size  Field
	//	0x00    1     Type tag
	//	0x01    1     Payload length excluding this header
	MicroChunkHeaderSize = 2

	// Micro-chunk header field offsets.
	MicroTypeOffset = 0x00
	MicroSizeOffset = 0x01

	// MaxMicroChunkSize is the largest payload a micro-chunk can carry.
	MaxMicroChunkSize = 0xFF

	// DefaultMaxDepth is the nesting limit inherited from the fixed 256-entry
	// header stacks of existing readers and writers of the format.
	DefaultMaxDepth = 256
)
