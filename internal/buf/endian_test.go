package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
	if U32LE(short) != 0 || F32LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutHelpers(t *testing.T) {
	b := make([]byte, 4)
	if !PutU32LE(b, 0x80000010) {
		t.Fatalf("PutU32LE reported no room")
	}
	if b[0] != 0x10 || b[3] != 0x80 {
		t.Fatalf("PutU32LE wrote % x", b)
	}
	if !PutU16LE(b[2:], 0xBEEF) || U16LE(b[2:]) != 0xBEEF {
		t.Fatalf("PutU16LE round trip failed: % x", b)
	}
	if !PutF32LE(b, 1.5) || F32LE(b) != 1.5 {
		t.Fatalf("PutF32LE round trip failed: % x", b)
	}
	if PutU32LE(b[:3], 1) || PutU16LE(b[:1], 1) {
		t.Fatalf("put into a short buffer should fail")
	}
}
