package chunk

import "fmt"

// Container is an open chunk whose payload is a sequence of sub-chunks. It
// exposes no way to write raw bytes, so mixing payload kinds cannot be
// expressed through it.
type Container struct{ handle }

// Payload is an open chunk whose payload is raw bytes and micro-chunks. It
// exposes no way to open sub-chunks.
type Payload struct{ handle }

// handle pins an open chunk by depth and header position, so a handle whose
// chunk was closed is rejected even when a sibling now sits at its depth.
type handle struct {
	w     *Writer
	typ   uint32
	depth int
	pos   int64
	kind  frameKind
}

func (w *Writer) open(typ uint32, kind frameKind) (handle, error) {
	if err := w.BeginChunk(typ); err != nil {
		return handle{}, err
	}
	top := w.top()
	top.kind = kind
	return handle{w: w, typ: typ, depth: w.Depth(), pos: top.pos, kind: kind}, nil
}

func (k frameKind) String() string {
	switch k {
	case kindContainer:
		return "container"
	case kindPayload:
		return "payload"
	default:
		return "chunk"
	}
}

// Type returns the chunk's type tag.
func (h *handle) Type() uint32 { return h.typ }

func (h *handle) innermost() error {
	if h.w.Depth() != h.depth || h.w.top().pos != h.pos {
		return fmt.Errorf("chunk: %s 0x%08X at depth %d, writer at %d: %w",
			h.kind, h.typ, h.depth, h.w.Depth(), ErrNotInnermost)
	}
	return nil
}

func (h *handle) end() error {
	if err := h.innermost(); err != nil {
		return err
	}
	return h.w.EndChunk()
}

// Container opens a container chunk at the writer's current level.
func (w *Writer) Container(typ uint32) (*Container, error) {
	h, err := w.open(typ, kindContainer)
	if err != nil {
		return nil, err
	}
	return &Container{h}, nil
}

// Payload opens a payload chunk at the writer's current level.
func (w *Writer) Payload(typ uint32) (*Payload, error) {
	h, err := w.open(typ, kindPayload)
	if err != nil {
		return nil, err
	}
	return &Payload{h}, nil
}

// Container opens a nested container chunk.
func (c *Container) Container(typ uint32) (*Container, error) {
	if err := c.innermost(); err != nil {
		return nil, err
	}
	return c.w.Container(typ)
}

// Payload opens a nested payload chunk.
func (c *Container) Payload(typ uint32) (*Payload, error) {
	if err := c.innermost(); err != nil {
		return nil, err
	}
	return c.w.Payload(typ)
}

// End closes the container.
func (c *Container) End() error { return c.end() }

// Write appends b to the payload.
func (p *Payload) Write(b []byte) (int, error) {
	if err := p.innermost(); err != nil {
		return 0, err
	}
	return p.w.Write(b)
}

// Writer returns the underlying writer for the typed Write helpers
// (WriteVector3, WriteName and friends). It fails unless the payload is the
// innermost open chunk. The writer refuses to open sub-chunks inside it.
func (p *Payload) Writer() (*Writer, error) {
	if err := p.innermost(); err != nil {
		return nil, err
	}
	return p.w, nil
}

// BeginMicroChunk opens a micro-chunk inside the payload.
func (p *Payload) BeginMicroChunk(typ uint8) error {
	if err := p.innermost(); err != nil {
		return err
	}
	return p.w.BeginMicroChunk(typ)
}

// EndMicroChunk closes the open micro-chunk.
func (p *Payload) EndMicroChunk() error {
	if err := p.innermost(); err != nil {
		return err
	}
	return p.w.EndMicroChunk()
}

// WriteMicroChunk writes a complete micro-chunk into the payload.
func (p *Payload) WriteMicroChunk(typ uint8, b []byte) error {
	if err := p.innermost(); err != nil {
		return err
	}
	return p.w.WriteMicroChunk(typ, b)
}

// End closes the payload chunk.
func (p *Payload) End() error { return p.end() }
