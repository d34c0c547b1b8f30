// Package bstream provides the sequential byte cursor the codec components
// read and write chunk bodies through. Everything is little-endian per the
// format constant in package xrm.
package bstream

import (
	"math"

	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Reader walks a byte buffer with bounds-checked typed access.
type Reader struct {
	data []byte
	off  int
}

func NewReader(b []byte) *Reader {
	return &Reader{data: b}
}

func (r *Reader) Len() int       { return len(r.data) }
func (r *Reader) Offset() int    { return r.off }
func (r *Reader) Remaining() int { return len(r.data) - r.off }

func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return errors.Wrapf(xrm.ErrTruncatedData, "seek to 0x%x outside buffer of 0x%x", off, len(r.data))
	}
	r.off = off
	return nil
}

func (r *Reader) Skip(n int) error {
	return r.Seek(r.off + n)
}

func (r *Reader) need(n int) error {
	if r.off+n > len(r.data) {
		return errors.Wrapf(xrm.ErrTruncatedData,
			"need %d bytes at 0x%x, buffer holds 0x%x", n, r.off, len(r.data))
	}
	return nil
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := xrm.ByteOrder.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := xrm.ByteOrder.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return math.Float32frombits(v), err
}

// Bytes returns a view into the underlying buffer, not a copy.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Vec3F reads three consecutive float32 values.
func (r *Reader) Vec3F() ([3]float32, error) {
	var v [3]float32
	if err := r.need(12); err != nil {
		return v, err
	}
	for i := range v {
		v[i] = math.Float32frombits(xrm.ByteOrder.Uint32(r.data[r.off+i*4:]))
	}
	r.off += 12
	return v, nil
}

// Vec3U8 reads three consecutive bytes.
func (r *Reader) Vec3U8() ([3]uint8, error) {
	var v [3]uint8
	if err := r.need(3); err != nil {
		return v, err
	}
	copy(v[:], r.data[r.off:])
	r.off += 3
	return v, nil
}
