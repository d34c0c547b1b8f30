// Package model is the in-memory mesh representation the codec decodes into
// and encodes from. The codec never mutates a Model after handing it to the
// host; everything past that point is the host's business.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Vertex identity is positional within its submesh buffer. Vertices are
// never shared across submeshes even when geometrically coincident.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3

	// Raw skin data, carried through the codec uninterpreted.
	BoneIndices [3]uint8
	BoneWeights [3]uint8
}

// Submesh is an independently indexed mesh partition bound to one material.
type Submesh struct {
	Name string

	Vertices []Vertex
	// Indices hold counter-clockwise triangle triples. The file stores
	// them clockwise; decode flips, encode flips back.
	Indices []uint32

	MaterialIndex int

	HasUV       bool
	HasNormals  bool
	HasSkin     bool
	HasTangents bool

	// WideIndices preserves the 32-bit index width the source declared.
	WideIndices bool

	// Unsupported marks hand/head meshes the remasters treat specially.
	Unsupported bool
}

func (s *Submesh) TriangleCount() int {
	return len(s.Indices) / 3
}

// Flags re-derives the submesh record flag word from current content.
func (s *Submesh) Flags() uint16 {
	var f uint16
	if s.HasUV {
		f |= xrm.FlagHasUV
	}
	if s.HasNormals {
		f |= xrm.FlagHasNormals
	}
	if s.HasSkin {
		f |= xrm.FlagHasSkin
	}
	if s.WideIndices {
		f |= xrm.FlagWideIndices
	}
	if s.Unsupported {
		f |= xrm.FlagUnsupported
	}
	if s.HasTangents {
		f |= xrm.FlagHasTangents
	}
	return f
}

// TextureRef is one texture slot of a material: a role plus either an index
// into the model's shared texture id list (version 1) or an inline path
// (version 2).
type TextureRef struct {
	Role  xrm.TextureRole
	Index int
	Path  string
}

// MaterialEntry is owned by the model's material table and referenced by
// submeshes positionally.
type MaterialEntry struct {
	Name     string
	Flags    uint8
	Textures []TextureRef

	// DisplayColor is host-assigned cosmetics, never persisted to file.
	DisplayColor *[4]float32
}

// ShaderPass addresses one render pass range of a shader record.
type ShaderPass struct {
	Offset uint32
	Length uint32
}

// ShaderRecord is carried through the codec opaquely for round-trip.
type ShaderRecord struct {
	Type   uint32
	Params [4]float32
	Passes [3]ShaderPass // opaque, alpha, additive
}

// Model is the root artifact of a decode and the sole input of an encode.
type Model struct {
	Version xrm.Version

	Submeshes []*Submesh
	Materials []MaterialEntry
	Shaders   []ShaderRecord

	// TextureIDs is the shared texture list of version 1 files; the host
	// resolves each id to an asset file.
	TextureIDs []uint16
}

func (m *Model) VertexCount() int {
	n := 0
	for _, s := range m.Submeshes {
		n += len(s.Vertices)
	}
	return n
}

func (m *Model) TriangleCount() int {
	n := 0
	for _, s := range m.Submeshes {
		n += s.TriangleCount()
	}
	return n
}

// BoundingBox derives the axis-aligned bounds over all submeshes.
// It is never stored in the file.
func (m *Model) BoundingBox() (min, max mgl32.Vec3) {
	first := true
	for _, s := range m.Submeshes {
		for i := range s.Vertices {
			p := s.Vertices[i].Position
			if first {
				min, max = p, p
				first = false
				continue
			}
			for c := 0; c < 3; c++ {
				if p[c] < min[c] {
					min[c] = p[c]
				}
				if p[c] > max[c] {
					max[c] = p[c]
				}
			}
		}
	}
	return min, max
}

// BoundingSphere derives a box-centered sphere enclosing every vertex.
func (m *Model) BoundingSphere() (center mgl32.Vec3, radius float32) {
	min, max := m.BoundingBox()
	center = min.Add(max).Mul(0.5)
	for _, s := range m.Submeshes {
		for i := range s.Vertices {
			if d := s.Vertices[i].Position.Sub(center).Len(); d > radius {
				radius = d
			}
		}
	}
	return center, radius
}
