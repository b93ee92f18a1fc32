package format

import (
	"errors"
	"testing"
)

func TestMicroChunkHeader(t *testing.T) {
	var h MicroChunkHeader
	h.SetType(0x07)
	h.AddSize(4)
	h.AddSize(4)
	if h.Type() != 0x07 || h.Size() != 8 {
		t.Fatalf("unexpected header %v", h)
	}

	b, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(b) != MicroChunkHeaderSize || b[0] != 0x07 || b[1] != 8 {
		t.Fatalf("encoded % x", b)
	}
	var back MicroChunkHeader
	if err := back.UnmarshalBinary(b); err != nil || back != h {
		t.Fatalf("round trip: %v, %v", back, err)
	}
	if _, err := ParseMicroChunkHeader(b[:1]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestMicroChunkHeaderCap(t *testing.T) {
	h := MicroChunkHeader{ChunkSize: 250}
	if !h.CanAdd(5) {
		t.Fatalf("250+5 should fit")
	}
	if h.CanAdd(6) {
		t.Fatalf("250+6 should not fit")
	}
	if (MicroChunkHeader{}).CanAdd(300) {
		t.Fatalf("300 bytes can never fit a micro chunk")
	}
}
