package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/chunkio/internal/buf"
)

// Vector2 is a 2D vector stored as two little-endian float32s.
type Vector2 struct{ X, Y float32 }

// Vector3 is a 3D vector stored as three little-endian float32s.
type Vector3 struct{ X, Y, Z float32 }

// Vector4 is a 4D vector stored as four little-endian float32s.
type Vector4 struct{ X, Y, Z, W float32 }

// Quaternion is a rotation stored as four little-endian float32s in
// X, Y, Z, W order.
type Quaternion struct{ X, Y, Z, W float32 }

// WriteVector2 writes v to the current chunk.
func (w *Writer) WriteVector2(v Vector2) error { return w.writeFloats(v.X, v.Y) }

// WriteVector3 writes v to the current chunk.
func (w *Writer) WriteVector3(v Vector3) error { return w.writeFloats(v.X, v.Y, v.Z) }

// WriteVector4 writes v to the current chunk.
func (w *Writer) WriteVector4(v Vector4) error { return w.writeFloats(v.X, v.Y, v.Z, v.W) }

// WriteQuaternion writes q to the current chunk.
func (w *Writer) WriteQuaternion(q Quaternion) error { return w.writeFloats(q.X, q.Y, q.Z, q.W) }

// WriteFloat32 writes f to the current chunk.
func (w *Writer) WriteFloat32(f float32) error { return w.writeFloats(f) }

// WriteUint8 writes v to the current chunk.
func (w *Writer) WriteUint8(v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

// WriteUint16 writes v to the current chunk in little-endian order.
func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	buf.PutU16LE(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint32 writes v to the current chunk in little-endian order.
func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	buf.PutU32LE(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteValue writes a fixed-size value, or a pointer to or slice of one, in
// little-endian order with a single Write call. See encoding/binary.
func (w *Writer) WriteValue(v any) error {
	b, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return fmt.Errorf("chunk: write value %T: %w", v, err)
	}
	_, err = w.Write(b)
	return err
}

// writeFloats writes fs as one contiguous record so the whole value is
// either credited or refused.
func (w *Writer) writeFloats(fs ...float32) error {
	b := make([]byte, 4*len(fs))
	for i, f := range fs {
		buf.PutF32LE(b[4*i:], f)
	}
	_, err := w.Write(b)
	return err
}

// ReadVector2 reads a Vector2 from the current chunk.
func (r *Reader) ReadVector2() (Vector2, error) {
	var f [2]float32
	err := r.readFloats(f[:])
	return Vector2{f[0], f[1]}, err
}

// ReadVector3 reads a Vector3 from the current chunk.
func (r *Reader) ReadVector3() (Vector3, error) {
	var f [3]float32
	err := r.readFloats(f[:])
	return Vector3{f[0], f[1], f[2]}, err
}

// ReadVector4 reads a Vector4 from the current chunk.
func (r *Reader) ReadVector4() (Vector4, error) {
	var f [4]float32
	err := r.readFloats(f[:])
	return Vector4{f[0], f[1], f[2], f[3]}, err
}

// ReadQuaternion reads a Quaternion from the current chunk.
func (r *Reader) ReadQuaternion() (Quaternion, error) {
	var f [4]float32
	err := r.readFloats(f[:])
	return Quaternion{f[0], f[1], f[2], f[3]}, err
}

// ReadFloat32 reads a float32 from the current chunk.
func (r *Reader) ReadFloat32() (float32, error) {
	var f [1]float32
	err := r.readFloats(f[:])
	return f[0], err
}

// ReadUint8 reads a byte from the current chunk.
func (r *Reader) ReadUint8() (uint8, error) {
	var b [1]byte
	_, err := r.Read(b[:])
	return b[0], err
}

// ReadUint16 reads a little-endian uint16 from the current chunk.
func (r *Reader) ReadUint16() (uint16, error) {
	var b [2]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return buf.U16LE(b[:]), nil
}

// ReadUint32 reads a little-endian uint32 from the current chunk.
func (r *Reader) ReadUint32() (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return buf.U32LE(b[:]), nil
}

// ReadValue reads a fixed-size value into the pointer or slice v in
// little-endian order. It mirrors WriteValue.
func (r *Reader) ReadValue(v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("chunk: read value %T: not a fixed-size value", v)
	}
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return err
	}
	if _, err := binary.Decode(b, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("chunk: read value %T: %w", v, err)
	}
	return nil
}

func (r *Reader) readFloats(fs []float32) error {
	b := make([]byte, 4*len(fs))
	if _, err := r.Read(b); err != nil {
		return err
	}
	for i := range fs {
		fs[i] = buf.F32LE(b[4*i:])
	}
	return nil
}
