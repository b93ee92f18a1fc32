package writer

import (
	"errors"
	"fmt"
	"io"
)

// ErrStreamFull is returned by a MemStream whose capacity limit was reached.
var ErrStreamFull = errors.New("writer: stream full")

// MemStream is a growable in-memory io.ReadWriteSeeker. Seeking past the
// end and writing zero-fills the gap, matching file semantics.
type MemStream struct {
	buf   []byte
	pos   int64
	limit int64 // 0 => unlimited
}

// NewMemStream returns an empty, unlimited stream.
func NewMemStream() *MemStream { return &MemStream{} }

// NewMemStreamFrom returns a stream positioned at the start of data. The
// stream takes ownership of data.
func NewMemStreamFrom(data []byte) *MemStream { return &MemStream{buf: data} }

// NewLimitedMemStream returns a stream that accepts at most limit bytes in
// total. Writes that would cross the limit are short.
func NewLimitedMemStream(limit int64) *MemStream { return &MemStream{limit: limit} }

// Bytes returns the stream contents. The slice aliases internal storage.
func (m *MemStream) Bytes() []byte { return m.buf }

// Len returns the stream length.
func (m *MemStream) Len() int64 { return int64(len(m.buf)) }

func (m *MemStream) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	n := len(p)
	var err error
	if m.limit > 0 && end > m.limit {
		n = int(max(m.limit-m.pos, 0))
		end = m.pos + int64(n)
		err = fmt.Errorf("write %d bytes at %d: %w", len(p), m.pos, ErrStreamFull)
	}
	if end > int64(len(m.buf)) {
		if end > int64(cap(m.buf)) {
			grown := make([]byte, end, max(end, 2*int64(cap(m.buf))))
			copy(grown, m.buf)
			m.buf = grown
		} else {
			m.buf = m.buf[:end]
		}
	}
	copy(m.buf[m.pos:], p[:n])
	m.pos = end
	return n, err
}

func (m *MemStream) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemStream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("writer: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("writer: negative position %d", abs)
	}
	m.pos = abs
	return abs, nil
}
