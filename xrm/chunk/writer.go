package chunk

import (
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
)

// Writer collects finalized chunk bodies and assembles the file.
type Writer struct {
	version xrm.Version
	bodies  map[xrm.ChunkTag][]byte
}

func NewWriter(version xrm.Version) *Writer {
	return &Writer{
		version: version,
		bodies:  make(map[xrm.ChunkTag][]byte),
	}
}

// Set registers a finalized chunk body. Empty optional bodies are dropped
// so an empty normals pass does not materialize a zero-length chunk.
func (w *Writer) Set(tag xrm.ChunkTag, body []byte) {
	if len(body) == 0 {
		delete(w.bodies, tag)
		return
	}
	w.bodies[tag] = body
}

// Finalize writes header, directory placeholder and bodies, then backpatches
// the directory once every offset is known. Chunks appear in the fixed
// format order, never in registration order.
func (w *Writer) Finalize() []byte {
	present := make([]xrm.ChunkTag, 0, len(w.bodies))
	for _, tag := range xrm.ChunkOrder {
		if _, ok := w.bodies[tag]; ok {
			present = append(present, tag)
		}
	}

	bw := bstream.NewWriter()
	bw.PutBytes([]byte(xrm.Magic))
	bw.U32(uint32(w.version))
	bw.U32(uint32(len(present)))

	dirStart := bw.Offset()
	for _, tag := range present {
		bw.U32(uint32(tag))
		bw.U32(0) // offset, backpatched
		bw.U32(0) // length, backpatched
	}

	offsets := make([]int, len(present))
	for i, tag := range present {
		offsets[i] = bw.Offset()
		bw.PutBytes(w.bodies[tag])
	}

	end := bw.Offset()
	for i := range present {
		bw.Seek(dirStart + i*xrm.DirEntrySize + 4)
		bw.U32(uint32(offsets[i]))
		bw.U32(uint32(len(w.bodies[present[i]])))
	}
	bw.Seek(end)

	return bw.Bytes()
}
