package chunkfile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/chunkio/chunk"
)

// ErrTooManyNodes is returned by Inspect when InspectOptions.MaxNodes is hit.
var ErrTooManyNodes = errors.New("chunkfile: node limit reached")

// Node describes one chunk found by Inspect.
type Node struct {
	ID           uint32  `json:"id"`
	Length       uint32  `json:"length"`
	Offset       int64   `json:"offset"` // stream offset of the chunk header
	HasSubChunks bool    `json:"has_sub_chunks"`
	Depth        int     `json:"depth"`
	Children     []*Node `json:"children,omitempty"`
}

// InspectOptions controls Inspect.
type InspectOptions struct {
	// MaxNodes stops the walk with ErrTooManyNodes once exceeded. 0 = unlimited.
	MaxNodes int

	// Reader configures the underlying chunk.Reader. Nil uses defaults.
	Reader *chunk.Options
}

// Inspect walks every chunk in rs, starting at its current position, and
// returns the top-level nodes. On error the nodes gathered so far are
// returned alongside it.
func Inspect(ctx context.Context, rs io.ReadSeeker, opts *InspectOptions) ([]*Node, error) {
	if opts == nil {
		opts = &InspectOptions{}
	}
	in := &inspector{ctx: ctx, rs: rs, r: chunk.NewReader(rs, opts.Reader), max: opts.MaxNodes}
	return in.children(0)
}

type inspector struct {
	ctx   context.Context
	rs    io.ReadSeeker
	r     *chunk.Reader
	max   int
	count int
}

// children reads sibling chunks until the enclosing chunk (or the stream)
// is exhausted.
func (in *inspector) children(depth int) ([]*Node, error) {
	var nodes []*Node
	for {
		if err := in.ctx.Err(); err != nil {
			return nodes, err
		}
		off, err := in.rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return nodes, fmt.Errorf("inspect: tell: %w", err)
		}
		if err := in.r.OpenChunk(); err != nil {
			if err == io.EOF {
				return nodes, nil
			}
			return nodes, fmt.Errorf("inspect: chunk at offset %d: %w", off, err)
		}
		in.count++
		if in.max > 0 && in.count > in.max {
			return nodes, ErrTooManyNodes
		}

		n := &Node{
			ID:           in.r.ChunkID(),
			Length:       in.r.ChunkLength(),
			Offset:       off,
			HasSubChunks: in.r.ContainsChunks(),
			Depth:        depth,
		}
		nodes = append(nodes, n)
		if n.HasSubChunks {
			n.Children, err = in.children(depth + 1)
			if err != nil {
				return nodes, err
			}
		}
		if err := in.r.CloseChunk(); err != nil {
			return nodes, fmt.Errorf("inspect: chunk at offset %d: %w", off, err)
		}
	}
}

// Walk calls fn for every node in pre-order. Returning false from fn skips
// that node's children.
func Walk(nodes []*Node, fn func(n *Node) bool) {
	for _, n := range nodes {
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// Stats summarizes an inspected tree.
type Stats struct {
	Chunks       int            `json:"chunks"`
	Containers   int            `json:"containers"`
	PayloadBytes int64          `json:"payload_bytes"`
	MaxDepth     int            `json:"max_depth"`
	ByType       map[uint32]int `json:"by_type"`
}

// Summarize computes Stats for nodes. PayloadBytes counts raw payload only,
// excluding headers and container payloads.
func Summarize(nodes []*Node) Stats {
	s := Stats{ByType: make(map[uint32]int)}
	Walk(nodes, func(n *Node) bool {
		s.Chunks++
		s.ByType[n.ID]++
		s.MaxDepth = max(s.MaxDepth, n.Depth+1)
		if n.HasSubChunks {
			s.Containers++
		} else {
			s.PayloadBytes += int64(n.Length)
		}
		return true
	})
	return s
}
