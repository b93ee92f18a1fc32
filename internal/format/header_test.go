package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestChunkHeaderSizeAndFlag(t *testing.T) {
	h := NewChunkHeader(0x10, 4)
	h.SetSubChunkFlag(true)
	h.AddSize(6)
	if h.Size() != 10 || !h.HasSubChunks() {
		t.Fatalf("AddSize lost the flag or size: %v", h)
	}
	if h.SizeAndFlag != 0x8000000A {
		t.Fatalf("raw field = 0x%08X, want 0x8000000A", h.SizeAndFlag)
	}
	h.SetSize(3)
	if h.SizeAndFlag != 0x80000003 {
		t.Fatalf("SetSize clobbered the flag: 0x%08X", h.SizeAndFlag)
	}
	h.SetSubChunkFlag(false)
	if h.HasSubChunks() || h.Size() != 3 {
		t.Fatalf("clearing the flag changed the size: %v", h)
	}
	h.SetSize(0xFFFFFFFF)
	if h.HasSubChunks() || h.Size() != MaxChunkSize {
		t.Fatalf("oversized SetSize leaked into the flag bit: %v", h)
	}
}

func TestChunkHeaderEncode(t *testing.T) {
	h := NewChunkHeader(0x10, 10)
	h.SetSubChunkFlag(true)
	b, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	want := []byte{0x10, 0, 0, 0, 0x0A, 0, 0, 0x80}
	if !bytes.Equal(b, want) {
		t.Fatalf("encoded % x, want % x", b, want)
	}

	var back ChunkHeader
	if err := back.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if back != h {
		t.Fatalf("decoded %v, want %v", back, h)
	}
}

func TestChunkHeaderTruncated(t *testing.T) {
	if _, err := ParseChunkHeader(make([]byte, 7)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if err := (ChunkHeader{}).Encode(make([]byte, 4)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated on encode, got %v", err)
	}
}
