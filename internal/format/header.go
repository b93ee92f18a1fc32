package format

import (
	"fmt"

	"github.com/joshuapare/chunkio/internal/buf"
)

// ChunkHeader is the 8-byte header preceding every chunk payload.
// The top bit of SizeAndFlag doubles as the "contains sub-chunks" flag.
type ChunkHeader struct {
	ChunkType   uint32
	SizeAndFlag uint32
}

// NewChunkHeader returns a header with the given type and payload size and a
// cleared sub-chunk flag.
func NewChunkHeader(typ, size uint32) ChunkHeader {
	return ChunkHeader{ChunkType: typ, SizeAndFlag: size & SizeMask}
}

func (h ChunkHeader) Type() uint32      { return h.ChunkType }
func (h *ChunkHeader) SetType(t uint32) { h.ChunkType = t }

// Size returns the payload length, excluding the header and the flag bit.
func (h ChunkHeader) Size() uint32 { return h.SizeAndFlag & SizeMask }

// SetSize replaces the payload length, leaving the flag bit untouched.
func (h *ChunkHeader) SetSize(size uint32) {
	h.SizeAndFlag = (h.SizeAndFlag & SubChunkFlag) | (size & SizeMask)
}

// AddSize grows the payload length by n, leaving the flag bit untouched.
func (h *ChunkHeader) AddSize(n uint32) {
	h.SetSize(h.Size() + n)
}

// HasSubChunks reports whether the payload is a sequence of child chunks.
func (h ChunkHeader) HasSubChunks() bool { return h.SizeAndFlag&SubChunkFlag != 0 }

// SetSubChunkFlag sets or clears the sub-chunk flag.
func (h *ChunkHeader) SetSubChunkFlag(on bool) {
	if on {
		h.SizeAndFlag |= SubChunkFlag
	} else {
		h.SizeAndFlag &^= SubChunkFlag
	}
}

// Encode writes the header into b in little-endian order.
func (h ChunkHeader) Encode(b []byte) error {
	if len(b) < ChunkHeaderSize {
		return fmt.Errorf("chunk header: %w", ErrTruncated)
	}
	buf.PutU32LE(b[ChunkTypeOffset:], h.ChunkType)
	buf.PutU32LE(b[ChunkSizeOffset:], h.SizeAndFlag)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h ChunkHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, ChunkHeaderSize)
	return b, h.Encode(b)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *ChunkHeader) UnmarshalBinary(b []byte) error {
	parsed, err := ParseChunkHeader(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseChunkHeader decodes the chunk header at the start of b.
func ParseChunkHeader(b []byte) (ChunkHeader, error) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, fmt.Errorf("chunk header: %w", ErrTruncated)
	}
	return ChunkHeader{
		ChunkType:   buf.U32LE(b[ChunkTypeOffset:]),
		SizeAndFlag: buf.U32LE(b[ChunkSizeOffset:]),
	}, nil
}

func (h ChunkHeader) String() string {
	return fmt.Sprintf("chunk{type=0x%08X size=%d sub=%t}", h.ChunkType, h.Size(), h.HasSubChunks())
}
