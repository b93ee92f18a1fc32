package chunk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/chunkio/internal/buf"
	"github.com/joshuapare/chunkio/internal/format"
)

type readerFrame struct {
	header   ChunkHeader
	consumed int64 // payload bytes consumed so far, children included
}

func (f *readerFrame) size() int64 { return int64(f.header.Size()) }

// Reader walks nested chunks from an io.ReadSeeker, refusing any read or skip
// that would cross the boundary of the innermost open chunk or micro-chunk.
//
// Thread safety: Reader instances are NOT thread-safe.
type Reader struct {
	rs       io.ReadSeeker
	stack    []readerFrame
	maxDepth int
	log      *slog.Logger

	end int64 // stream length, -1 until first measured

	inMicro       bool
	micro         MicroChunkHeader
	microConsumed int64

	scratch [format.ChunkHeaderSize]byte
}

// NewReader returns a Reader consuming chunks from the current position of
// rs. The caller keeps ownership of rs. A nil opts uses DefaultOptions().
func NewReader(rs io.ReadSeeker, opts *Options) *Reader {
	depth := opts.maxDepth()
	return &Reader{
		rs:       rs,
		stack:    make([]readerFrame, 0, stackHint(depth)),
		maxDepth: depth,
		log:      opts.logger(),
		end:      -1,
	}
}

// OpenChunk reads the next chunk header and makes that chunk current.
//
// It returns io.EOF, unwrapped, when the enclosing chunk has no bytes left or
// when the stream ends cleanly between top-level chunks, so children are
// enumerated with:
//
//	for r.OpenChunk() == nil {
//	    ...
//	    r.CloseChunk()
//	}
//
// A header whose declared size overruns the enclosing chunk is rejected
// with ErrBoundary. Like every other failure, the stream position is then
// indeterminate and the load must be abandoned.
func (r *Reader) OpenChunk() error {
	if r.inMicro {
		return fmt.Errorf("chunk: open: %w", ErrMicroChunkOpen)
	}
	if len(r.stack) >= r.maxDepth {
		return fmt.Errorf("chunk: open at depth %d: %w", len(r.stack), ErrDepthExceeded)
	}
	parent := r.top()
	if parent != nil {
		if parent.consumed >= parent.size() {
			return io.EOF
		}
		if !buf.Fits(parent.consumed, format.ChunkHeaderSize, parent.size()) {
			return r.debug("open", fmt.Errorf("chunk: open: %d bytes left in 0x%08X: %w",
				parent.size()-parent.consumed, parent.header.Type(), ErrBoundary))
		}
	}

	b := r.scratch[:format.ChunkHeaderSize]
	if _, err := io.ReadFull(r.rs, b); err != nil {
		if errors.Is(err, io.EOF) && parent == nil {
			return io.EOF
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return r.debug("open", fmt.Errorf("chunk: open: read header: %w", err))
	}
	hdr, err := format.ParseChunkHeader(b)
	if err != nil {
		return fmt.Errorf("chunk: open: %w", err)
	}
	if parent != nil && !buf.Fits(parent.consumed+format.ChunkHeaderSize, int64(hdr.Size()), parent.size()) {
		return r.debug("open", fmt.Errorf("chunk: open 0x%08X of %d bytes in 0x%08X with %d left: %w",
			hdr.Type(), hdr.Size(), parent.header.Type(),
			parent.size()-parent.consumed-format.ChunkHeaderSize, ErrBoundary))
	}

	r.stack = append(r.stack, readerFrame{header: hdr})
	return nil
}

// CloseChunk closes the current chunk, seeking over any payload the caller
// did not consume, and credits the parent with the whole child.
func (r *Reader) CloseChunk() error {
	if r.inMicro {
		return fmt.Errorf("chunk: close: %w", ErrMicroChunkOpen)
	}
	top := r.top()
	if top == nil {
		return fmt.Errorf("chunk: close: %w", ErrNoOpenChunk)
	}
	if rem := buf.Remaining(top.consumed, top.size()); rem > 0 {
		if err := r.skipStream(rem); err != nil {
			return r.debug("close", fmt.Errorf("chunk: close 0x%08X: skip %d bytes: %w", top.header.Type(), rem, err))
		}
	}
	size := top.size()
	r.stack = r.stack[:len(r.stack)-1]
	if parent := r.top(); parent != nil {
		parent.consumed += size + format.ChunkHeaderSize
	}
	return nil
}

// CloseAll closes every open micro-chunk and chunk, leaving the stream
// positioned just past the outermost chunk.
func (r *Reader) CloseAll() error {
	if r.inMicro {
		if err := r.CloseMicroChunk(); err != nil {
			return err
		}
	}
	for len(r.stack) > 0 {
		if err := r.CloseChunk(); err != nil {
			return err
		}
	}
	return nil
}

// Depth returns the number of open chunks.
func (r *Reader) Depth() int { return len(r.stack) }

// Header returns the current chunk's header, or the zero header at depth 0.
func (r *Reader) Header() ChunkHeader {
	if top := r.top(); top != nil {
		return top.header
	}
	return ChunkHeader{}
}

// ChunkID returns the current chunk's type tag.
func (r *Reader) ChunkID() uint32 { return r.Header().Type() }

// ChunkLength returns the current chunk's payload length.
func (r *Reader) ChunkLength() uint32 { return r.Header().Size() }

// ContainsChunks reports whether the current chunk's payload holds sub-chunks.
func (r *Reader) ContainsChunks() bool { return r.Header().HasSubChunks() }

// Remaining returns the unconsumed payload bytes of the current micro-chunk,
// or of the current chunk when no micro-chunk is open.
func (r *Reader) Remaining() int64 {
	if r.inMicro {
		return buf.Remaining(r.microConsumed, int64(r.micro.Size()))
	}
	if top := r.top(); top != nil {
		return buf.Remaining(top.consumed, top.size())
	}
	return 0
}

// OpenMicroChunk reads the next micro-chunk header inside the current chunk.
// The header counts as consumed payload of the chunk. It returns io.EOF,
// unwrapped, when the chunk has no bytes left.
func (r *Reader) OpenMicroChunk() error {
	if r.inMicro {
		return fmt.Errorf("chunk: open micro: %w", ErrMicroChunkOpen)
	}
	top := r.top()
	if top == nil {
		return fmt.Errorf("chunk: open micro: %w", ErrNoOpenChunk)
	}
	if top.consumed >= top.size() {
		return io.EOF
	}

	b := r.scratch[:format.MicroChunkHeaderSize]
	if _, err := r.Read(b); err != nil {
		return fmt.Errorf("chunk: open micro: %w", err)
	}
	hdr, err := format.ParseMicroChunkHeader(b)
	if err != nil {
		return fmt.Errorf("chunk: open micro: %w", err)
	}
	if !buf.Fits(top.consumed, int64(hdr.Size()), top.size()) {
		return r.debug("open micro", fmt.Errorf("chunk: open micro 0x%02X of %d bytes in 0x%08X: %w",
			hdr.Type(), hdr.Size(), top.header.Type(), ErrBoundary))
	}

	r.inMicro = true
	r.micro = hdr
	r.microConsumed = 0
	return nil
}

// CloseMicroChunk closes the current micro-chunk, skipping and crediting any
// payload bytes the caller did not read.
func (r *Reader) CloseMicroChunk() error {
	if !r.inMicro {
		return fmt.Errorf("chunk: close micro: %w", ErrNoMicroChunk)
	}
	r.inMicro = false
	rem := buf.Remaining(r.microConsumed, int64(r.micro.Size()))
	if rem == 0 {
		return nil
	}
	if err := r.skipStream(rem); err != nil {
		return r.debug("close micro", fmt.Errorf("chunk: close micro 0x%02X: skip %d bytes: %w", r.micro.Type(), rem, err))
	}
	if top := r.top(); top != nil {
		top.consumed += rem
	}
	return nil
}

// MicroChunkID returns the current micro-chunk's type tag.
func (r *Reader) MicroChunkID() uint8 { return r.micro.Type() }

// MicroChunkLength returns the current micro-chunk's payload length.
func (r *Reader) MicroChunkLength() uint8 { return r.micro.Size() }

// InMicroChunk reports whether a micro-chunk is open.
func (r *Reader) InMicroChunk() bool { return r.inMicro }

// Read fills p entirely from the current chunk. A request that would cross
// the chunk's boundary, or the open micro-chunk's, is refused with
// ErrBoundary and reads nothing. A truncated stream yields
// io.ErrUnexpectedEOF with no bytes credited.
//
// Unlike a plain io.Reader, Read never returns a partial count.
func (r *Reader) Read(p []byte) (int, error) {
	if err := r.check("read", int64(len(p))); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := io.ReadFull(r.rs, p); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, r.debug("read", fmt.Errorf("chunk: read %d bytes: %w", len(p), err))
	}
	r.credit(int64(len(p)))
	return len(p), nil
}

// Skip advances n bytes within the current chunk under the same boundary
// rules as Read.
func (r *Reader) Skip(n int64) (int64, error) {
	if err := r.check("skip", n); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if err := r.skipStream(n); err != nil {
		return 0, r.debug("skip", fmt.Errorf("chunk: skip %d bytes: %w", n, err))
	}
	r.credit(n)
	return n, nil
}

// ReadAll reads the rest of the current micro-chunk, or of the current chunk
// when no micro-chunk is open.
func (r *Reader) ReadAll() ([]byte, error) {
	if r.top() == nil {
		return nil, fmt.Errorf("chunk: read all: %w", ErrNoOpenChunk)
	}
	n := r.Remaining()
	if err := r.check("read all", n); err != nil {
		return nil, err
	}
	// The declared size is untrusted; grow with the bytes actually read.
	p, err := io.ReadAll(io.LimitReader(r.rs, n))
	if err == nil && int64(len(p)) < n {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, r.debug("read all", fmt.Errorf("chunk: read all %d bytes: %w", n, err))
	}
	r.credit(n)
	return p, nil
}

// skipStream advances the stream n bytes, failing with io.ErrUnexpectedEOF
// when that lands past the stream end. The length is measured once.
func (r *Reader) skipStream(n int64) error {
	if r.end < 0 {
		cur, err := r.rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		end, err := r.rs.Seek(0, io.SeekEnd)
		if err != nil {
			return err
		}
		if _, err := r.rs.Seek(cur, io.SeekStart); err != nil {
			return err
		}
		r.end = end
	}
	pos, err := r.rs.Seek(n, io.SeekCurrent)
	if err != nil {
		return err
	}
	if pos > r.end {
		return fmt.Errorf("skip to %d past stream end %d: %w", pos, r.end, io.ErrUnexpectedEOF)
	}
	return nil
}

func (r *Reader) top() *readerFrame {
	if len(r.stack) == 0 {
		return nil
	}
	return &r.stack[len(r.stack)-1]
}

// check enforces chunk and micro-chunk boundaries for an n byte request.
func (r *Reader) check(op string, n int64) error {
	top := r.top()
	if top == nil {
		return fmt.Errorf("chunk: %s: %w", op, ErrNoOpenChunk)
	}
	if !buf.Fits(top.consumed, n, top.size()) {
		return r.debug(op, fmt.Errorf("chunk: %s %d bytes at %d of 0x%08X (%d bytes): %w",
			op, n, top.consumed, top.header.Type(), top.size(), ErrBoundary))
	}
	if r.inMicro && !buf.Fits(r.microConsumed, n, int64(r.micro.Size())) {
		return r.debug(op, fmt.Errorf("chunk: %s %d bytes at %d of micro 0x%02X (%d bytes): %w",
			op, n, r.microConsumed, r.micro.Type(), r.micro.Size(), ErrBoundary))
	}
	return nil
}

func (r *Reader) credit(n int64) {
	r.top().consumed += n
	if r.inMicro {
		r.microConsumed += n
	}
}

func (r *Reader) debug(op string, err error) error {
	r.log.Debug("chunk reader failure", "op", op, "depth", len(r.stack), "err", err)
	return err
}
