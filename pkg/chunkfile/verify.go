package chunkfile

import (
	"context"
	"fmt"

	"github.com/joshuapare/chunkio/internal/buf"
	"github.com/joshuapare/chunkio/internal/format"
)

// IssueKind classifies a structural problem found by Verify.
type IssueKind uint8

const (
	IssueTruncatedHeader IssueKind = iota + 1 // fewer than 8 bytes where a header was due
	IssueOverrun                              // declared size runs past the parent or the buffer
	IssueDepth                                // nesting exceeds the depth limit
)

func (k IssueKind) String() string {
	switch k {
	case IssueTruncatedHeader:
		return "truncated-header"
	case IssueOverrun:
		return "overrun"
	case IssueDepth:
		return "depth"
	default:
		return fmt.Sprintf("IssueKind(%d)", uint8(k))
	}
}

// Issue is one structural problem.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Offset int64     `json:"offset"`
	ID     uint32    `json:"id"`
	Msg    string    `json:"msg"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s at 0x%X (chunk 0x%08X): %s", i.Kind, i.Offset, i.ID, i.Msg)
}

// Report is the result of Verify.
type Report struct {
	Chunks   int     `json:"chunks"`
	MaxDepth int     `json:"max_depth"`
	Issues   []Issue `json:"issues,omitempty"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// VerifyOptions controls Verify.
type VerifyOptions struct {
	// MaxDepth bounds nesting. Zero uses format.DefaultMaxDepth.
	MaxDepth int
}

// Verify audits data as a sequence of top-level chunks. A chunk flagged as
// holding sub-chunks must be tiled exactly by complete children. An overrun
// or leftover is reported and the rest of the enclosing chunk is skipped;
// the walk resumes after it. Raw payloads are not inspected.
//
// The returned error is non-nil only when ctx is done.
func Verify(ctx context.Context, data []byte, opts *VerifyOptions) (*Report, error) {
	maxDepth := format.DefaultMaxDepth
	if opts != nil && opts.MaxDepth > 0 {
		maxDepth = opts.MaxDepth
	}
	v := &verifier{ctx: ctx, data: data, maxDepth: maxDepth, rep: &Report{}}
	if err := v.span(0, int64(len(data)), 0, 0); err != nil {
		return v.rep, err
	}
	return v.rep, nil
}

type verifier struct {
	ctx      context.Context
	data     []byte
	maxDepth int
	rep      *Report
}

// span verifies the chunks tiling data[start:end]. parent is the enclosing
// chunk's type, for issue messages.
func (v *verifier) span(start, end int64, depth int, parent uint32) error {
	off := start
	for off < end {
		if err := v.ctx.Err(); err != nil {
			return err
		}
		if !buf.Fits(off, format.ChunkHeaderSize, end) {
			v.issue(IssueTruncatedHeader, off, parent, "%d trailing bytes cannot hold a chunk header", end-off)
			return nil
		}
		hdr, err := format.ParseChunkHeader(v.data[off:end])
		if err != nil {
			v.issue(IssueTruncatedHeader, off, parent, "%v", err)
			return nil
		}
		payload := off + format.ChunkHeaderSize
		if !buf.Fits(payload, int64(hdr.Size()), end) {
			v.issue(IssueOverrun, off, hdr.Type(), "declares %d bytes, %d available", hdr.Size(), end-payload)
			return nil
		}

		v.rep.Chunks++
		v.rep.MaxDepth = max(v.rep.MaxDepth, depth+1)
		next := payload + int64(hdr.Size())
		if hdr.HasSubChunks() {
			if depth+1 >= v.maxDepth {
				v.issue(IssueDepth, off, hdr.Type(), "children would nest past depth %d", v.maxDepth)
			} else if err := v.span(payload, next, depth+1, hdr.Type()); err != nil {
				return err
			}
		}
		off = next
	}
	return nil
}

func (v *verifier) issue(kind IssueKind, off int64, id uint32, msg string, args ...any) {
	v.rep.Issues = append(v.rep.Issues, Issue{Kind: kind, Offset: off, ID: id, Msg: fmt.Sprintf(msg, args...)})
}
