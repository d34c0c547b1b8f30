// Package geom decodes and encodes the submesh table and the per-submesh
// vertex, index, normal and skin payloads.
package geom

import (
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
)

// SubmeshRecord is one SUBM table entry: counts, flags and byte offsets of
// this submesh's ranges inside the payload chunks.
type SubmeshRecord struct {
	Name          string
	MaterialIndex uint16
	Flags         uint16
	VertexCount   uint32
	IndexCount    uint32
	VertexOffset  uint32 // into GEOM
	IndexOffset   uint32 // into INDX
	NormalOffset  uint32 // into NRML, xrm.NoOffset when absent
	SkinOffset    uint32 // into SKIN, xrm.NoOffset when absent
}

const submeshRecordSize = xrm.SubmeshNameLen + 2 + 2 + 6*4

// ParseSubmeshTable decodes the SUBM chunk body.
func ParseSubmeshTable(body []byte) ([]SubmeshRecord, error) {
	r := bstream.NewReader(body)
	count, err := r.U32()
	if err != nil {
		return nil, errors.WithMessage(err, "submesh table")
	}
	if r.Remaining() < int(count)*submeshRecordSize {
		return nil, errors.Wrapf(xrm.ErrTruncatedData,
			"submesh table: %d records do not fit %d bytes", count, r.Remaining())
	}

	records := make([]SubmeshRecord, count)
	for i := range records {
		name, _ := r.Bytes(xrm.SubmeshNameLen)
		rec := &records[i]
		rec.Name = utils.BytesToString(name)
		rec.MaterialIndex, _ = r.U16()
		rec.Flags, _ = r.U16()
		rec.VertexCount, _ = r.U32()
		rec.IndexCount, _ = r.U32()
		rec.VertexOffset, _ = r.U32()
		rec.IndexOffset, _ = r.U32()
		rec.NormalOffset, _ = r.U32()
		if rec.SkinOffset, err = r.U32(); err != nil {
			return nil, errors.WithMessagef(err, "submesh record %d", i)
		}
		if rec.IndexCount%3 != 0 {
			return nil, errors.Wrapf(xrm.ErrCorruptDirectory,
				"submesh %d (%q): index count %d not divisible by 3", i, rec.Name, rec.IndexCount)
		}
	}
	return records, nil
}

func writeSubmeshTable(records []SubmeshRecord) []byte {
	w := bstream.NewWriter()
	w.U32(uint32(len(records)))
	for i := range records {
		rec := &records[i]
		w.PutBytes(utils.StringToBytesBuffer(rec.Name, xrm.SubmeshNameLen))
		w.U16(rec.MaterialIndex)
		w.U16(rec.Flags)
		w.U32(rec.VertexCount)
		w.U32(rec.IndexCount)
		w.U32(rec.VertexOffset)
		w.U32(rec.IndexOffset)
		w.U32(rec.NormalOffset)
		w.U32(rec.SkinOffset)
	}
	return w.Bytes()
}
