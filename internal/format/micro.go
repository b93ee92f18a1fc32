package format

import "fmt"

// MicroChunkHeader is the 2-byte header used for small scalar fields where
// a full chunk header would be wasteful.
type MicroChunkHeader struct {
	ChunkType uint8
	ChunkSize uint8
}

func (h MicroChunkHeader) Type() uint8      { return h.ChunkType }
func (h *MicroChunkHeader) SetType(t uint8) { h.ChunkType = t }
func (h MicroChunkHeader) Size() uint8      { return h.ChunkSize }
func (h *MicroChunkHeader) SetSize(s uint8) { h.ChunkSize = s }

// AddSize grows the payload length by n. Callers check the 255-byte cap
// with CanAdd first; AddSize itself wraps like the underlying byte.
func (h *MicroChunkHeader) AddSize(n uint8) { h.ChunkSize += n }

// CanAdd reports whether n more payload bytes fit in the size field.
func (h MicroChunkHeader) CanAdd(n int) bool {
	return n >= 0 && int(h.ChunkSize)+n <= MaxMicroChunkSize
}

// Encode writes the header into b.
func (h MicroChunkHeader) Encode(b []byte) error {
	if len(b) < MicroChunkHeaderSize {
		return fmt.Errorf("micro chunk header: %w", ErrTruncated)
	}
	b[MicroTypeOffset] = h.ChunkType
	b[MicroSizeOffset] = h.ChunkSize
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h MicroChunkHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, MicroChunkHeaderSize)
	return b, h.Encode(b)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *MicroChunkHeader) UnmarshalBinary(b []byte) error {
	parsed, err := ParseMicroChunkHeader(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseMicroChunkHeader decodes the micro-chunk header at the start of b.
func ParseMicroChunkHeader(b []byte) (MicroChunkHeader, error) {
	if len(b) < MicroChunkHeaderSize {
		return MicroChunkHeader{}, fmt.Errorf("micro chunk header: %w", ErrTruncated)
	}
	return MicroChunkHeader{ChunkType: b[MicroTypeOffset], ChunkSize: b[MicroSizeOffset]}, nil
}

func (h MicroChunkHeader) String() string {
	return fmt.Sprintf("micro{type=0x%02X size=%d}", h.ChunkType, h.ChunkSize)
}
