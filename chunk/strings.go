package chunk

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Asset tools that produce chunk files write names as ANSI (Windows-1252)
// and wide strings as UTF-16LE.
var (
	nameEncoding = charmap.Windows1252
	wideEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// WriteName writes name as a fixed-width, NUL-padded Windows-1252 field of
// width bytes. Names longer than width-1 bytes are truncated so the field is
// always NUL-terminated.
func (w *Writer) WriteName(name string, width int) error {
	if width <= 0 {
		return fmt.Errorf("chunk: write name %q: invalid width %d", name, width)
	}
	enc, err := nameEncoding.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return fmt.Errorf("chunk: write name %q: %w", name, err)
	}
	field := make([]byte, width)
	copy(field[:width-1], enc)
	_, err = w.Write(field)
	return err
}

// ReadName reads a fixed-width Windows-1252 field written by WriteName.
func (r *Reader) ReadName(width int) (string, error) {
	if width <= 0 {
		return "", fmt.Errorf("chunk: read name: invalid width %d", width)
	}
	field := make([]byte, width)
	if _, err := r.Read(field); err != nil {
		return "", err
	}
	dec, err := nameEncoding.NewDecoder().Bytes(cutNUL(field))
	if err != nil {
		return "", fmt.Errorf("chunk: read name: %w", err)
	}
	return string(dec), nil
}

// WriteStringChunk writes a chunk of type typ holding s and a terminating NUL.
func (w *Writer) WriteStringChunk(typ uint32, s string) error {
	return w.writeWholeChunk(typ, append([]byte(s), 0))
}

// WriteWideStringChunk writes a chunk of type typ holding s as UTF-16LE with
// a terminating NUL code unit.
func (w *Writer) WriteWideStringChunk(typ uint32, s string) error {
	enc, err := wideEncoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("chunk: write wide string 0x%08X: %w", typ, err)
	}
	return w.writeWholeChunk(typ, append(enc, 0, 0))
}

// ReadString reads the rest of the current micro-chunk or chunk and returns
// the bytes up to the first NUL.
func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadAll()
	if err != nil {
		return "", err
	}
	return string(cutNUL(p)), nil
}

// ReadWideString reads the rest of the current chunk as UTF-16LE text and
// returns it up to the first NUL code unit.
func (r *Reader) ReadWideString() (string, error) {
	p, err := r.ReadAll()
	if err != nil {
		return "", err
	}
	for i := 0; i+1 < len(p); i += 2 {
		if p[i] == 0 && p[i+1] == 0 {
			p = p[:i]
			break
		}
	}
	dec, err := wideEncoding.NewDecoder().Bytes(p)
	if err != nil {
		return "", fmt.Errorf("chunk: read wide string: %w", err)
	}
	return string(dec), nil
}

func (w *Writer) writeWholeChunk(typ uint32, p []byte) error {
	if err := w.BeginChunk(typ); err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}
	return w.EndChunk()
}

func cutNUL(p []byte) []byte {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return p[:i]
	}
	return p
}
