package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

func quadSubmesh() *model.Submesh {
	s := &model.Submesh{
		Name:          "quad",
		MaterialIndex: 0,
		HasUV:         true,
		HasNormals:    true,
		Indices:       []uint32{0, 1, 2, 2, 1, 3},
	}
	positions := []mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	}
	for i, p := range positions {
		s.Vertices = append(s.Vertices, model.Vertex{
			Position: p,
			UV:       mgl32.Vec2{float32(i) / 255.0, 1.0 - float32(i)/255.0},
			Normal:   mgl32.Vec3{0, 0, 1},
		})
	}
	return s
}

func layout1(t *testing.T) xrm.Layout {
	t.Helper()
	l, err := xrm.LayoutForVersion(xrm.Version1)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	layout := layout1(t)
	src := quadSubmesh()

	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	records, err := ParseSubmeshTable(enc.SubmeshTable)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d; expected 1", len(records))
	}
	if records[0].Name != "quad" {
		t.Errorf("name = %q", records[0].Name)
	}

	subs, err := Decode(layout, records, Chunks{
		Geometry: enc.Geometry,
		Indices:  enc.Indices,
		Normals:  enc.Normals,
	})
	if err != nil {
		t.Fatal(err)
	}
	got := subs[0]

	if len(got.Vertices) != len(src.Vertices) {
		t.Fatalf("vertex count = %d; expected %d", len(got.Vertices), len(src.Vertices))
	}
	for i := range src.Vertices {
		if got.Vertices[i].Position != src.Vertices[i].Position {
			t.Errorf("vertex %d position = %v; expected %v",
				i, got.Vertices[i].Position, src.Vertices[i].Position)
		}
		if got.Vertices[i].UV != src.Vertices[i].UV {
			t.Errorf("vertex %d uv = %v; expected %v", i, got.Vertices[i].UV, src.Vertices[i].UV)
		}
	}
	for i := range src.Indices {
		if got.Indices[i] != src.Indices[i] {
			t.Errorf("index %d = %d; expected %d (winding flip must round-trip)",
				i, got.Indices[i], src.Indices[i])
		}
	}
	// Second encode must reproduce the chunk bodies byte for byte.
	enc2 := Encode(layout, subs, xrm.IndexWidthPreserve)
	for name, pair := range map[string][2][]byte{
		"SUBM": {enc.SubmeshTable, enc2.SubmeshTable},
		"GEOM": {enc.Geometry, enc2.Geometry},
		"INDX": {enc.Indices, enc2.Indices},
		"NRML": {enc.Normals, enc2.Normals},
	} {
		if string(pair[0]) != string(pair[1]) {
			t.Errorf("%s chunk not byte-identical after round-trip", name)
		}
	}
}

func TestDecodeInvalidIndex(t *testing.T) {
	layout := layout1(t)
	src := quadSubmesh()
	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	records, err := ParseSubmeshTable(enc.SubmeshTable)
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt the first index to point past the vertex buffer.
	xrm.ByteOrder.PutUint16(enc.Indices[0:], 99)

	_, err = Decode(layout, records, Chunks{
		Geometry: enc.Geometry,
		Indices:  enc.Indices,
		Normals:  enc.Normals,
	})
	if !errors.Is(err, xrm.ErrInvalidIndex) {
		t.Errorf("err = %v; expected ErrInvalidIndex", err)
	}
}

func TestIndexWidthPolicy(t *testing.T) {
	layout := layout1(t)

	src := quadSubmesh()
	src.WideIndices = true

	// Preserve keeps the declared 32-bit width.
	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	if want := 4 * len(src.Indices); len(enc.Indices) != want {
		t.Errorf("preserve: index body = %d bytes; expected %d", len(enc.Indices), want)
	}
	records, _ := ParseSubmeshTable(enc.SubmeshTable)
	if records[0].Flags&xrm.FlagWideIndices == 0 {
		t.Error("preserve: wide flag lost")
	}

	// Narrow drops to 16 bits when the vertex count allows it.
	enc = Encode(layout, []*model.Submesh{src}, xrm.IndexWidthNarrow)
	if want := 2 * len(src.Indices); len(enc.Indices) != want {
		t.Errorf("narrow: index body = %d bytes; expected %d", len(enc.Indices), want)
	}
	records, _ = ParseSubmeshTable(enc.SubmeshTable)
	if records[0].Flags&xrm.FlagWideIndices != 0 {
		t.Error("narrow: wide flag kept for 4-vertex submesh")
	}
}

func TestDecodeTruncatedGeometry(t *testing.T) {
	layout := layout1(t)
	src := quadSubmesh()
	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	records, _ := ParseSubmeshTable(enc.SubmeshTable)

	_, err := Decode(layout, records, Chunks{
		Geometry: enc.Geometry[:len(enc.Geometry)-1],
		Indices:  enc.Indices,
		Normals:  enc.Normals,
	})
	if !errors.Is(err, xrm.ErrTruncatedData) {
		t.Errorf("err = %v; expected ErrTruncatedData", err)
	}
}

func TestDecodeNormalsChunkAbsentButFlagged(t *testing.T) {
	layout := layout1(t)
	src := quadSubmesh()
	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	records, _ := ParseSubmeshTable(enc.SubmeshTable)

	_, err := Decode(layout, records, Chunks{
		Geometry: enc.Geometry,
		Indices:  enc.Indices,
	})
	if !errors.Is(err, xrm.ErrMissingChunk) {
		t.Errorf("err = %v; expected ErrMissingChunk", err)
	}
}

func TestVersion2Tangents(t *testing.T) {
	layout, err := xrm.LayoutForVersion(xrm.Version2)
	if err != nil {
		t.Fatal(err)
	}
	src := quadSubmesh()
	src.HasTangents = true
	for i := range src.Vertices {
		src.Vertices[i].Tangent = mgl32.Vec3{1, 0, 0}
		src.Vertices[i].UV = mgl32.Vec2{0.25, 0.75}
	}

	enc := Encode(layout, []*model.Submesh{src}, xrm.IndexWidthPreserve)
	records, err := ParseSubmeshTable(enc.SubmeshTable)
	if err != nil {
		t.Fatal(err)
	}
	if want := len(src.Vertices) * layout.VertexStride(records[0].Flags); len(enc.Geometry) != want {
		t.Fatalf("geometry body = %d bytes; expected %d", len(enc.Geometry), want)
	}

	subs, err := Decode(layout, records, Chunks{
		Geometry: enc.Geometry,
		Indices:  enc.Indices,
		Normals:  enc.Normals,
	})
	if err != nil {
		t.Fatal(err)
	}
	got := subs[0]
	if !got.HasTangents {
		t.Fatal("tangent flag lost")
	}
	for i := range got.Vertices {
		// Version 2 UVs are raw floats, exact round-trip.
		if got.Vertices[i].UV != (mgl32.Vec2{0.25, 0.75}) {
			t.Errorf("vertex %d uv = %v", i, got.Vertices[i].UV)
		}
		if got.Vertices[i].Tangent.Sub(mgl32.Vec3{1, 0, 0}).Len() > 0.01 {
			t.Errorf("vertex %d tangent = %v", i, got.Vertices[i].Tangent)
		}
	}
}
