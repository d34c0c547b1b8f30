package bstream

import (
	"math"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Writer appends at a tracked offset and overwrites in place after Seek,
// which the chunk directory backpatch depends on. Writes into an in-memory
// buffer cannot fail, so methods return nothing.
type Writer struct {
	buf []byte
	off int
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Offset() int   { return w.off }
func (w *Writer) Bytes() []byte { return w.buf }

// Seek moves the cursor anywhere within the written region (or to its end).
func (w *Writer) Seek(off int) {
	if off < 0 || off > len(w.buf) {
		panic("bstream: seek outside written region")
	}
	w.off = off
}

func (w *Writer) ensure(n int) []byte {
	if w.off+n > len(w.buf) {
		grown := make([]byte, w.off+n)
		copy(grown, w.buf)
		w.buf = grown
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b
}

func (w *Writer) U8(v uint8) {
	w.ensure(1)[0] = v
}

func (w *Writer) U16(v uint16) {
	xrm.ByteOrder.PutUint16(w.ensure(2), v)
}

func (w *Writer) U32(v uint32) {
	xrm.ByteOrder.PutUint32(w.ensure(4), v)
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

func (w *Writer) PutBytes(b []byte) {
	copy(w.ensure(len(b)), b)
}

func (w *Writer) Vec3F(v [3]float32) {
	b := w.ensure(12)
	for i := range v {
		xrm.ByteOrder.PutUint32(b[i*4:], math.Float32bits(v[i]))
	}
}

func (w *Writer) Vec3U8(v [3]uint8) {
	copy(w.ensure(3), v[:])
}
