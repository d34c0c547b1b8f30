package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

func triangle() *Submesh {
	return &Submesh{
		Name: "tri",
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-1, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 2, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func validModel() *Model {
	return &Model{
		Version:   xrm.Version1,
		Submeshes: []*Submesh{triangle()},
		Materials: []MaterialEntry{{Name: "M"}},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validModel().Validate(); err != nil {
		t.Errorf("valid model rejected: %v", err)
	}
}

func TestValidateIndexOutOfRange(t *testing.T) {
	m := validModel()
	m.Submeshes[0].Indices[2] = 40
	if err := m.Validate(); !errors.Is(err, xrm.ErrInvalidModel) {
		t.Errorf("err = %v; expected ErrInvalidModel", err)
	}
}

func TestValidateIndexCountNotTriples(t *testing.T) {
	m := validModel()
	m.Submeshes[0].Indices = m.Submeshes[0].Indices[:2]
	if err := m.Validate(); !errors.Is(err, xrm.ErrInvalidModel) {
		t.Errorf("err = %v; expected ErrInvalidModel", err)
	}
}

func TestValidateDanglingBinding(t *testing.T) {
	m := validModel()
	m.Submeshes[0].MaterialIndex = 3
	if err := m.Validate(); !errors.Is(err, xrm.ErrDanglingMaterialBinding) {
		t.Errorf("err = %v; expected ErrDanglingMaterialBinding", err)
	}
}

func TestValidateUnresolvedTexture(t *testing.T) {
	m := validModel()
	m.Materials[0].Textures = []TextureRef{{Role: xrm.RoleDiffuse, Index: 2}}
	m.TextureIDs = []uint16{7}
	if err := m.Validate(); !errors.Is(err, xrm.ErrUnresolvedTextureReference) {
		t.Errorf("err = %v; expected ErrUnresolvedTextureReference", err)
	}
}

func TestAssemblePositionalBinding(t *testing.T) {
	subs := []*Submesh{triangle()}
	subs[0].MaterialIndex = 1
	mats := []MaterialEntry{{Name: "A"}, {Name: "B"}}

	m, err := Assemble(xrm.Version1, subs, mats, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Materials[m.Submeshes[0].MaterialIndex].Name != "B" {
		t.Error("positional binding broken")
	}

	subs[0].MaterialIndex = 9
	if _, err := Assemble(xrm.Version1, subs, mats, nil, nil); !errors.Is(err, xrm.ErrUnresolvedTextureReference) {
		t.Errorf("err = %v; expected ErrUnresolvedTextureReference", err)
	}
}

func TestBoundingVolumes(t *testing.T) {
	m := validModel()
	min, max := m.BoundingBox()
	if min != (mgl32.Vec3{-1, 0, 0}) || max != (mgl32.Vec3{0 + 1, 2, 0}) {
		t.Errorf("bbox = %v..%v", min, max)
	}
	center, radius := m.BoundingSphere()
	if center != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("sphere center = %v", center)
	}
	want := mgl32.Vec3{-1, 0, 0}.Sub(center).Len()
	if radius < want-1e-6 || radius > want+1e-6 {
		t.Errorf("sphere radius = %f; expected %f", radius, want)
	}
}

func TestTriangleAndVertexCounts(t *testing.T) {
	m := validModel()
	if m.VertexCount() != 3 || m.TriangleCount() != 1 {
		t.Errorf("counts = %d verts, %d tris", m.VertexCount(), m.TriangleCount())
	}
}
