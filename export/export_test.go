package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

func exportFixture() *model.Model {
	s := &model.Submesh{
		Name: "TORSO",
		Vertices: []model.Vertex{
			{Position: mgl32.Vec3{0, 0, 0}, UV: mgl32.Vec2{0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
			{Position: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 0}, Normal: mgl32.Vec3{0, 0, 1}},
			{Position: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 1}, Normal: mgl32.Vec3{0, 0, 1}},
		},
		Indices:    []uint32{0, 1, 2},
		HasUV:      true,
		HasNormals: true,
	}
	return &model.Model{
		Version:   xrm.Version1,
		Submeshes: []*model.Submesh{s},
		Materials: []model.MaterialEntry{
			{Name: "body_mat", Textures: []model.TextureRef{{Role: xrm.RoleDiffuse, Index: 0}}},
		},
		TextureIDs: []uint16{17},
	}
}

func TestBuildGLTF(t *testing.T) {
	m := exportFixture()

	doc, err := BuildGLTF(m, xrm.DefaultOptions())
	if err != nil {
		t.Fatalf("BuildGLTF: %v", err)
	}

	if len(doc.Meshes) != 1 {
		t.Fatalf("mesh count: got %d, want 1", len(doc.Meshes))
	}
	if doc.Meshes[0].Name != "TORSO" {
		t.Errorf("mesh name: got %q", doc.Meshes[0].Name)
	}
	prim := doc.Meshes[0].Primitives[0]
	for _, attr := range []string{"POSITION", "NORMAL", "TEXCOORD_0"} {
		if _, ok := prim.Attributes[attr]; !ok {
			t.Errorf("missing attribute %s", attr)
		}
	}
	if prim.Indices == nil {
		t.Error("primitive has no index accessor")
	}

	if len(doc.Materials) != 1 || doc.Materials[0].Name != "body_mat" {
		t.Fatalf("materials: %+v", doc.Materials)
	}
	if len(doc.Images) != 1 || doc.Images[0].URI != "17.DDS" {
		t.Errorf("texture id not resolved to image URI: %+v", doc.Images)
	}
}

func TestBuildGLTFWithoutTextures(t *testing.T) {
	m := exportFixture()
	opts := xrm.DefaultOptions()
	opts.ImportTextures = false

	doc, err := BuildGLTF(m, opts)
	if err != nil {
		t.Fatalf("BuildGLTF: %v", err)
	}
	if len(doc.Images) != 0 || len(doc.Textures) != 0 {
		t.Errorf("textures emitted despite being disabled")
	}
}

func TestBuildGLTFRandomColors(t *testing.T) {
	m := exportFixture()
	opts := xrm.DefaultOptions()
	opts.AssignRandomMaterialColors = true

	doc, err := BuildGLTF(m, opts)
	if err != nil {
		t.Fatalf("BuildGLTF: %v", err)
	}
	pbr := doc.Materials[0].PBRMetallicRoughness
	if pbr.BaseColorFactor == nil {
		t.Fatal("no display color assigned")
	}
	if (*pbr.BaseColorFactor)[3] != 1.0 {
		t.Errorf("display color alpha: got %f, want 1", (*pbr.BaseColorFactor)[3])
	}
}

func TestWriteObj(t *testing.T) {
	m := exportFixture()

	var buf bytes.Buffer
	if err := WriteObj(&buf, m, "fixture.mtl"); err != nil {
		t.Fatalf("WriteObj: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"mtllib fixture.mtl",
		"o s00_TORSO",
		"usemtl body_mat",
		"v 0.000000 0.000000 0.000000",
		"f 1/1/1 2/2/2 3/3/3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("obj output missing %q\n%s", want, out)
		}
	}
}

func TestWriteMtl(t *testing.T) {
	m := exportFixture()

	var buf bytes.Buffer
	if err := WriteMtl(&buf, m, xrm.DefaultOptions()); err != nil {
		t.Fatalf("WriteMtl: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "newmtl body_mat") {
		t.Errorf("mtl output missing material\n%s", out)
	}
	if !strings.Contains(out, "map_Kd 17.DDS") {
		t.Errorf("mtl output missing diffuse map\n%s", out)
	}
}
