package geom

import (
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// Encoded holds the serialized geometry chunk bodies. Normals and Skin are
// nil when no submesh carries that data.
type Encoded struct {
	SubmeshTable []byte
	Geometry     []byte
	Indices      []byte
	Normals      []byte
	Skin         []byte
}

// Encode mirrors Decode: counts, then attributes in the same fixed
// stride/order. The caller validated the model beforehand.
func Encode(layout xrm.Layout, submeshes []*model.Submesh, policy xrm.IndexWidthPolicy) *Encoded {
	records := make([]SubmeshRecord, len(submeshes))

	geomW := bstream.NewWriter()
	idxW := bstream.NewWriter()
	nrmW := bstream.NewWriter()
	skinW := bstream.NewWriter()

	for i, s := range submeshes {
		wide := s.WideIndices
		if policy == xrm.IndexWidthNarrow {
			wide = len(s.Vertices) > 0x10000
		}

		rec := &records[i]
		rec.Name = s.Name
		rec.MaterialIndex = uint16(s.MaterialIndex)
		rec.Flags = s.Flags()
		if wide {
			rec.Flags |= xrm.FlagWideIndices
		} else {
			rec.Flags &^= xrm.FlagWideIndices
		}
		if !layout.Tangents {
			rec.Flags &^= xrm.FlagHasTangents
		}
		rec.VertexCount = uint32(len(s.Vertices))
		rec.IndexCount = uint32(len(s.Indices))

		rec.VertexOffset = uint32(geomW.Len())
		encodeVertices(layout, rec.Flags, s, geomW)

		rec.IndexOffset = uint32(idxW.Len())
		encodeIndices(wide, s, idxW)

		rec.NormalOffset = xrm.NoOffset
		if s.HasNormals {
			rec.NormalOffset = uint32(nrmW.Len())
			for vi := range s.Vertices {
				nrmW.Vec3U8(biasNormal(s.Vertices[vi].Normal))
			}
		}

		rec.SkinOffset = xrm.NoOffset
		if s.HasSkin {
			rec.SkinOffset = uint32(skinW.Len())
			for vi := range s.Vertices {
				skinW.Vec3U8(s.Vertices[vi].BoneIndices)
				skinW.Vec3U8(s.Vertices[vi].BoneWeights)
			}
		}
	}

	return &Encoded{
		SubmeshTable: writeSubmeshTable(records),
		Geometry:     geomW.Bytes(),
		Indices:      idxW.Bytes(),
		Normals:      nrmW.Bytes(),
		Skin:         skinW.Bytes(),
	}
}

func encodeVertices(layout xrm.Layout, flags uint16, s *model.Submesh, w *bstream.Writer) {
	hasUV := flags&xrm.FlagHasUV != 0
	hasTangents := layout.Tangents && flags&xrm.FlagHasTangents != 0

	for i := range s.Vertices {
		v := &s.Vertices[i]
		w.Vec3F(v.Position)

		if hasUV {
			if layout.FloatUVs {
				w.F32(v.UV[0])
				w.F32(v.UV[1])
			} else {
				w.U8(quantizeUV(v.UV[0]))
				w.U8(quantizeUV(1.0 - v.UV[1]))
			}
		}
		if hasTangents {
			w.Vec3U8(biasNormal(v.Tangent))
			w.U8(2) // constant byte present in every retail file
		}
	}
}

func encodeIndices(wide bool, s *model.Submesh, w *bstream.Writer) {
	// Reverse each triple back to the clockwise file winding.
	for i := 0; i+2 < len(s.Indices); i += 3 {
		triple := [3]uint32{s.Indices[i+2], s.Indices[i+1], s.Indices[i]}
		for _, idx := range triple {
			if wide {
				w.U32(idx)
			} else {
				w.U16(uint16(idx))
			}
		}
	}
}

func quantizeUV(f float32) uint8 {
	f = f*255.0 + 0.5
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
