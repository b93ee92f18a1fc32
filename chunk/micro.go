package chunk

import (
	"fmt"
	"io"

	"github.com/joshuapare/chunkio/internal/buf"
	"github.com/joshuapare/chunkio/internal/format"
)

// WriteMicroChunk writes a complete micro-chunk of type typ holding p.
func (w *Writer) WriteMicroChunk(typ uint8, p []byte) error {
	if len(p) > format.MaxMicroChunkSize {
		return fmt.Errorf("chunk: micro 0x%02X of %d bytes: %w", typ, len(p), ErrMicroChunkFull)
	}
	if err := w.BeginMicroChunk(typ); err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}
	return w.EndMicroChunk()
}

// WriteMicroUint32 writes a micro-chunk holding a little-endian uint32.
func (w *Writer) WriteMicroUint32(typ uint8, v uint32) error {
	var b [4]byte
	buf.PutU32LE(b[:], v)
	return w.WriteMicroChunk(typ, b[:])
}

// WriteMicroFloat32 writes a micro-chunk holding a little-endian float32.
func (w *Writer) WriteMicroFloat32(typ uint8, f float32) error {
	var b [4]byte
	buf.PutF32LE(b[:], f)
	return w.WriteMicroChunk(typ, b[:])
}

// WriteMicroString writes a micro-chunk holding s and a terminating NUL. The
// string must be at most 254 bytes.
func (w *Writer) WriteMicroString(typ uint8, s string) error {
	return w.WriteMicroChunk(typ, append([]byte(s), 0))
}

// MicroField is one micro-chunk read by ReadMicroChunks.
type MicroField struct {
	Type uint8
	Data []byte
}

// ReadMicroChunks reads every remaining micro-chunk in the current chunk.
func (r *Reader) ReadMicroChunks() ([]MicroField, error) {
	var fields []MicroField
	for {
		err := r.OpenMicroChunk()
		if err != nil {
			if err == io.EOF {
				return fields, nil
			}
			return fields, err
		}
		data, err := r.ReadAll()
		if err != nil {
			return fields, err
		}
		fields = append(fields, MicroField{Type: r.MicroChunkID(), Data: data})
		if err := r.CloseMicroChunk(); err != nil {
			return fields, err
		}
	}
}
