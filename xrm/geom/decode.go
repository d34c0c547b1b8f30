package geom

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// Chunks carries the payload chunk bodies geometry decode reads from.
// Normals and Skin are nil when their chunks are absent.
type Chunks struct {
	Geometry []byte
	Indices  []byte
	Normals  []byte
	Skin     []byte
}

// Decode turns the submesh records and payload chunks into model submeshes.
// Records read disjoint chunk ranges and fill disjoint output slots, so they
// decode concurrently with a join before assembly.
func Decode(layout xrm.Layout, records []SubmeshRecord, chunks Chunks) ([]*model.Submesh, error) {
	submeshes := make([]*model.Submesh, len(records))
	errs := make([]error, len(records))

	var wg sync.WaitGroup
	for i := range records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			submeshes[i], errs[i] = decodeSubmesh(layout, &records[i], chunks)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.WithMessagef(err, "submesh %d (%q)", i, records[i].Name)
		}
	}
	return submeshes, nil
}

func decodeSubmesh(layout xrm.Layout, rec *SubmeshRecord, chunks Chunks) (*model.Submesh, error) {
	s := &model.Submesh{
		Name:          rec.Name,
		MaterialIndex: int(rec.MaterialIndex),
		HasUV:         rec.Flags&xrm.FlagHasUV != 0,
		HasNormals:    rec.Flags&xrm.FlagHasNormals != 0,
		HasSkin:       rec.Flags&xrm.FlagHasSkin != 0,
		HasTangents:   layout.Tangents && rec.Flags&xrm.FlagHasTangents != 0,
		WideIndices:   rec.Flags&xrm.FlagWideIndices != 0,
		Unsupported:   rec.Flags&xrm.FlagUnsupported != 0,
	}

	if err := decodeVertices(layout, rec, chunks.Geometry, s); err != nil {
		return nil, err
	}
	if err := decodeIndices(layout, rec, chunks.Indices, s); err != nil {
		return nil, err
	}
	if s.HasNormals {
		if err := decodeNormals(layout, rec, chunks.Normals, s); err != nil {
			return nil, err
		}
	}
	if s.HasSkin {
		if err := decodeSkin(layout, rec, chunks.Skin, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeVertices(layout xrm.Layout, rec *SubmeshRecord, body []byte, s *model.Submesh) error {
	stride := layout.VertexStride(rec.Flags)
	r := bstream.NewReader(body)
	if err := r.Seek(int(rec.VertexOffset)); err != nil {
		return errors.WithMessage(err, "vertex range")
	}
	if r.Remaining() < stride*int(rec.VertexCount) {
		return errors.Wrapf(xrm.ErrTruncatedData,
			"vertex range: %d vertices of stride %d at 0x%x", rec.VertexCount, stride, rec.VertexOffset)
	}

	s.Vertices = make([]model.Vertex, rec.VertexCount)
	for i := range s.Vertices {
		v := &s.Vertices[i]
		pos, _ := r.Vec3F()
		v.Position = mgl32.Vec3(pos)

		if s.HasUV {
			if layout.FloatUVs {
				u, _ := r.F32()
				uv, _ := r.F32()
				v.UV = mgl32.Vec2{u, uv}
			} else {
				// Quantized pair; V is stored flipped.
				bu, _ := r.U8()
				bv, _ := r.U8()
				v.UV = mgl32.Vec2{float32(bu) / 255.0, 1.0 - float32(bv)/255.0}
			}
		}
		if s.HasTangents {
			tb, _ := r.Vec3U8()
			v.Tangent = unbiasNormal(tb)
			if _, err := r.U8(); err != nil { // constant byte, always 2
				return err
			}
		}
	}
	return nil
}

func decodeIndices(layout xrm.Layout, rec *SubmeshRecord, body []byte, s *model.Submesh) error {
	isize := layout.IndexSize(rec.Flags)
	r := bstream.NewReader(body)
	if err := r.Seek(int(rec.IndexOffset)); err != nil {
		return errors.WithMessage(err, "index range")
	}
	if r.Remaining() < isize*int(rec.IndexCount) {
		return errors.Wrapf(xrm.ErrTruncatedData,
			"index range: %d indices of size %d at 0x%x", rec.IndexCount, isize, rec.IndexOffset)
	}

	raw := make([]uint32, rec.IndexCount)
	for i := range raw {
		if isize == 4 {
			raw[i], _ = r.U32()
		} else {
			v, _ := r.U16()
			raw[i] = uint32(v)
		}
		if raw[i] >= rec.VertexCount {
			return errors.Wrapf(xrm.ErrInvalidIndex,
				"index %d = %d >= vertex count %d", i, raw[i], rec.VertexCount)
		}
	}

	// File triples are clockwise; flip to counter-clockwise.
	s.Indices = make([]uint32, len(raw))
	for i := 0; i+2 < len(raw); i += 3 {
		s.Indices[i] = raw[i+2]
		s.Indices[i+1] = raw[i+1]
		s.Indices[i+2] = raw[i]
	}
	return nil
}

func decodeNormals(layout xrm.Layout, rec *SubmeshRecord, body []byte, s *model.Submesh) error {
	if body == nil || rec.NormalOffset == xrm.NoOffset {
		return errors.Wrapf(xrm.ErrMissingChunk,
			"normals flagged but %v chunk absent", xrm.TagNormals)
	}
	r := bstream.NewReader(body)
	if err := r.Seek(int(rec.NormalOffset)); err != nil {
		return errors.WithMessage(err, "normal range")
	}
	if r.Remaining() < layout.NormalSize()*int(rec.VertexCount) {
		return errors.Wrapf(xrm.ErrTruncatedData,
			"normal range: %d records at 0x%x", rec.VertexCount, rec.NormalOffset)
	}
	for i := range s.Vertices {
		nb, _ := r.Vec3U8()
		s.Vertices[i].Normal = unbiasNormal(nb)
	}
	return nil
}

func decodeSkin(layout xrm.Layout, rec *SubmeshRecord, body []byte, s *model.Submesh) error {
	if body == nil || rec.SkinOffset == xrm.NoOffset {
		return errors.Wrapf(xrm.ErrMissingChunk,
			"skin flagged but %v chunk absent", xrm.TagSkin)
	}
	r := bstream.NewReader(body)
	if err := r.Seek(int(rec.SkinOffset)); err != nil {
		return errors.WithMessage(err, "skin range")
	}
	if r.Remaining() < layout.SkinSize()*int(rec.VertexCount) {
		return errors.Wrapf(xrm.ErrTruncatedData,
			"skin range: %d records at 0x%x", rec.VertexCount, rec.SkinOffset)
	}
	for i := range s.Vertices {
		bi, _ := r.Vec3U8()
		bw, _ := r.Vec3U8()
		s.Vertices[i].BoneIndices = bi
		s.Vertices[i].BoneWeights = bw
	}
	return nil
}

// unbiasNormal decodes the byte triple the format stores normals and
// tangents as: each component biased by 127.
func unbiasNormal(b [3]uint8) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(b[0]) - 127.0) / 127.0,
		(float32(b[1]) - 127.0) / 127.0,
		(float32(b[2]) - 127.0) / 127.0,
	}
}

// biasNormal is the encode mirror of unbiasNormal.
func biasNormal(v mgl32.Vec3) [3]uint8 {
	var b [3]uint8
	for i := 0; i < 3; i++ {
		f := v[i]*127.0 + 127.0
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		b[i] = uint8(f + 0.5)
	}
	return b
}
