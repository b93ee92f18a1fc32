package chunk

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/chunkio/internal/format"
)

type frameKind uint8

const (
	kindAny frameKind = iota
	kindContainer
	kindPayload
)

type writerFrame struct {
	pos    int64 // stream offset of the chunk header
	header ChunkHeader
	kind   frameKind // set by the typed handles
}

// Writer emits nested chunks to an io.WriteSeeker, back-patching each
// chunk's header with its final size when the chunk is closed.
//
// Writer implements io.Writer; bytes written are credited to the innermost
// open chunk and, when one is open, to the current micro-chunk.
//
// Thread safety: Writer instances are NOT thread-safe.
type Writer struct {
	ws       io.WriteSeeker
	stack    []writerFrame
	maxDepth int
	log      *slog.Logger

	inMicro  bool
	microPos int64
	micro    MicroChunkHeader

	err     error // sticky; set when the stream position is indeterminate
	scratch [format.ChunkHeaderSize]byte
}

// NewWriter returns a Writer emitting chunks at the current position of ws.
// The caller keeps ownership of ws. A nil opts uses DefaultOptions().
func NewWriter(ws io.WriteSeeker, opts *Options) *Writer {
	depth := opts.maxDepth()
	return &Writer{
		ws:       ws,
		stack:    make([]writerFrame, 0, stackHint(depth)),
		maxDepth: depth,
		log:      opts.logger(),
	}
}

// Depth returns the number of open chunks.
func (w *Writer) Depth() int { return len(w.stack) }

// InMicroChunk reports whether a micro-chunk is open.
func (w *Writer) InMicroChunk() bool { return w.inMicro }

// Err returns the error that poisoned the writer, if any.
func (w *Writer) Err() error { return w.err }

// BeginChunk opens a chunk of the given type inside the current chunk (or at
// top level) and writes a placeholder header. The parent, if any, is marked
// as holding sub-chunks.
//
// On a failed header write the chunk stays on the stack and the writer is
// poisoned; the caller must abandon the save.
func (w *Writer) BeginChunk(typ uint32) error {
	if w.err != nil {
		return w.poisoned()
	}
	if w.inMicro {
		return fmt.Errorf("chunk: begin 0x%08X: %w", typ, ErrMicroChunkOpen)
	}
	if len(w.stack) >= w.maxDepth {
		return fmt.Errorf("chunk: begin 0x%08X at depth %d: %w", typ, len(w.stack), ErrDepthExceeded)
	}
	if parent := w.top(); parent != nil {
		if parent.kind == kindPayload || (!parent.header.HasSubChunks() && parent.header.Size() > 0) {
			return fmt.Errorf("chunk: begin 0x%08X in 0x%08X: %w", typ, parent.header.Type(), ErrPayloadChunk)
		}
	}

	pos, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return w.fail("begin", fmt.Errorf("chunk: begin 0x%08X: tell: %w", typ, err))
	}
	if parent := w.top(); parent != nil {
		parent.header.SetSubChunkFlag(true)
	}
	hdr := format.NewChunkHeader(typ, 0)
	w.stack = append(w.stack, writerFrame{pos: pos, header: hdr})

	if err := w.writeHeader(hdr); err != nil {
		return w.fail("begin", fmt.Errorf("chunk: begin 0x%08X: %w", typ, err))
	}
	return nil
}

// EndChunk closes the innermost chunk: it seeks back to the chunk's header,
// rewrites it with the accumulated size and flag, and restores the write
// cursor. The parent's size grows by the child's size plus its header.
//
// Any failure in the seek-write-seek sequence poisons the writer.
func (w *Writer) EndChunk() error {
	if w.err != nil {
		return w.poisoned()
	}
	if len(w.stack) == 0 {
		return fmt.Errorf("chunk: end: %w", ErrNoOpenChunk)
	}
	if w.inMicro {
		return fmt.Errorf("chunk: end 0x%08X: %w", w.top().header.Type(), ErrMicroChunkOpen)
	}

	cur, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return w.fail("end", fmt.Errorf("chunk: end: tell: %w", err))
	}
	frame := w.stack[len(w.stack)-1]
	if len(w.stack) > 1 {
		parent := &w.stack[len(w.stack)-2]
		if err := w.reserve(parent, int(frame.header.Size())+format.ChunkHeaderSize); err != nil {
			return fmt.Errorf("chunk: end 0x%08X: %w", frame.header.Type(), err)
		}
	}
	w.stack = w.stack[:len(w.stack)-1]

	if err := w.patch(frame.pos, cur, func() error { return w.writeHeader(frame.header) }); err != nil {
		return w.fail("end", fmt.Errorf("chunk: end 0x%08X: %w", frame.header.Type(), err))
	}
	if parent := w.top(); parent != nil {
		parent.header.AddSize(frame.header.Size() + format.ChunkHeaderSize)
	}
	return nil
}

// BeginMicroChunk opens a micro-chunk inside the innermost chunk. The 2-byte
// header counts toward the enclosing chunk's size. Micro-chunks do not nest.
func (w *Writer) BeginMicroChunk(typ uint8) error {
	if w.err != nil {
		return w.poisoned()
	}
	if w.inMicro {
		return fmt.Errorf("chunk: begin micro 0x%02X: %w", typ, ErrMicroChunkOpen)
	}
	top := w.top()
	if top == nil {
		return fmt.Errorf("chunk: begin micro 0x%02X: %w", typ, ErrNoOpenChunk)
	}
	if err := w.checkPayload(top, format.MicroChunkHeaderSize); err != nil {
		return fmt.Errorf("chunk: begin micro 0x%02X: %w", typ, err)
	}

	pos, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return w.fail("begin micro", fmt.Errorf("chunk: begin micro 0x%02X: tell: %w", typ, err))
	}
	hdr := MicroChunkHeader{ChunkType: typ}
	if err := w.writeMicroHeader(hdr); err != nil {
		return w.fail("begin micro", fmt.Errorf("chunk: begin micro 0x%02X: %w", typ, err))
	}
	top.header.AddSize(format.MicroChunkHeaderSize)

	w.inMicro = true
	w.microPos = pos
	w.micro = hdr
	return nil
}

// EndMicroChunk closes the open micro-chunk, patching its size byte.
func (w *Writer) EndMicroChunk() error {
	if w.err != nil {
		return w.poisoned()
	}
	if !w.inMicro {
		return fmt.Errorf("chunk: end micro: %w", ErrNoMicroChunk)
	}

	cur, err := w.ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return w.fail("end micro", fmt.Errorf("chunk: end micro: tell: %w", err))
	}
	hdr := w.micro
	if err := w.patch(w.microPos, cur, func() error { return w.writeMicroHeader(hdr) }); err != nil {
		return w.fail("end micro", fmt.Errorf("chunk: end micro 0x%02X: %w", hdr.Type(), err))
	}
	w.inMicro = false
	return nil
}

// Write appends p to the innermost chunk. It refuses, writing nothing, when
// no chunk is open, when the chunk already holds sub-chunks, or when an open
// micro-chunk would exceed 255 bytes. A short stream write returns 0 with no
// size credit and poisons the writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.poisoned()
	}
	top := w.top()
	if top == nil {
		return 0, fmt.Errorf("chunk: write %d bytes: %w", len(p), ErrNoOpenChunk)
	}
	if err := w.checkPayload(top, len(p)); err != nil {
		return 0, fmt.Errorf("chunk: write %d bytes to 0x%08X: %w", len(p), top.header.Type(), err)
	}
	if w.inMicro && !w.micro.CanAdd(len(p)) {
		return 0, fmt.Errorf("chunk: write %d bytes to micro 0x%02X holding %d: %w",
			len(p), w.micro.Type(), w.micro.Size(), ErrMicroChunkFull)
	}
	if len(p) == 0 {
		return 0, nil
	}

	if err := writeFull(w.ws, p); err != nil {
		return 0, w.fail("write", fmt.Errorf("chunk: write %d bytes: %w", len(p), err))
	}
	top.header.AddSize(uint32(len(p)))
	if w.inMicro {
		w.micro.AddSize(uint8(len(p)))
	}
	return len(p), nil
}

// Close verifies the writer ended in a well-formed state: no open chunks and
// no open micro-chunk. It does not close the underlying stream.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.poisoned()
	}
	if len(w.stack) > 0 || w.inMicro {
		return fmt.Errorf("chunk: close with %d open chunks (micro open: %t): %w",
			len(w.stack), w.inMicro, ErrUnbalanced)
	}
	return nil
}

func (w *Writer) top() *writerFrame {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

// checkPayload verifies n raw bytes may be added to f.
func (w *Writer) checkPayload(f *writerFrame, n int) error {
	if f.kind == kindContainer || f.header.HasSubChunks() {
		return ErrContainerWrite
	}
	return w.reserve(f, n)
}

// reserve verifies f's size field can grow by n bytes.
func (w *Writer) reserve(f *writerFrame, n int) error {
	if n < 0 || uint64(f.header.Size())+uint64(n) > uint64(format.MaxChunkSize) {
		return ErrSizeOverflow
	}
	return nil
}

// patch seeks to at, runs write, then seeks back to resume.
func (w *Writer) patch(at, resume int64, write func() error) error {
	if _, err := w.ws.Seek(at, io.SeekStart); err != nil {
		return fmt.Errorf("seek to header at %d: %w", at, err)
	}
	if err := write(); err != nil {
		return err
	}
	if _, err := w.ws.Seek(resume, io.SeekStart); err != nil {
		return fmt.Errorf("restore cursor to %d: %w", resume, err)
	}
	return nil
}

func (w *Writer) writeHeader(h ChunkHeader) error {
	b := w.scratch[:format.ChunkHeaderSize]
	if err := h.Encode(b); err != nil {
		return err
	}
	return writeFull(w.ws, b)
}

func (w *Writer) writeMicroHeader(h MicroChunkHeader) error {
	b := w.scratch[:format.MicroChunkHeaderSize]
	if err := h.Encode(b); err != nil {
		return err
	}
	return writeFull(w.ws, b)
}

// fail poisons the writer with err and returns it.
func (w *Writer) fail(op string, err error) error {
	w.err = err
	w.log.Warn("chunk writer poisoned", "op", op, "depth", len(w.stack), "err", err)
	return err
}

func (w *Writer) poisoned() error {
	return fmt.Errorf("%w: %w", ErrPoisoned, w.err)
}

// writeFull writes all of p, reporting a short write as io.ErrShortWrite.
func writeFull(ws io.Writer, p []byte) error {
	n, err := ws.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
