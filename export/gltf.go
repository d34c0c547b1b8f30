// Package export turns a decoded model into interchange formats. It is a
// host collaborator: it only reads the model the codec handed over.
package export

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// BuildGLTF assembles a glTF document from the model. Texture references
// become image URIs when opts.ImportTextures is set; version 1 texture ids
// resolve to the "<id>.DDS" naming the remasters use.
func BuildGLTF(m *model.Model, opts xrm.Options) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	var displayColors []utils.ColorFloat
	if opts.AssignRandomMaterialColors {
		displayColors = utils.RandomMaterialColors(int64(len(m.Submeshes)), len(m.Materials))
	}

	materialIndex := make(map[int]uint32, len(m.Materials))
	for i := range m.Materials {
		materialIndex[i] = exportMaterial(doc, m, i, displayColors, opts)
	}

	var rng utils.RandomNameGenerator
	for _, s := range m.Submeshes {
		name := s.Name
		if name == "" {
			name = rng.RandomName()
		}

		verticesCount := len(s.Vertices)
		positions := make([][3]float32, verticesCount)
		for i := range s.Vertices {
			positions[i] = s.Vertices[i].Position
		}
		positionAccessor := modeler.WritePosition(doc, positions)

		attributes := map[string]uint32{
			"POSITION": positionAccessor,
		}

		if s.HasNormals {
			normals := make([][3]float32, verticesCount)
			for i := range s.Vertices {
				n := s.Vertices[i].Normal
				if n.Len() > 0.5 {
					n = n.Normalize()
				}
				normals[i] = n
			}
			attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
		}

		if s.HasUV {
			uvs := make([][2]float32, verticesCount)
			for i := range s.Vertices {
				uvs[i] = s.Vertices[i].UV
			}
			attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, uvs)
		}

		indicesAccessor := modeler.WriteIndices(doc, s.Indices)

		gltfMesh := &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{
				{
					Indices:    &indicesAccessor,
					Attributes: attributes,
					Material:   gltf.Index(materialIndex[s.MaterialIndex]),
				},
			},
		}
		doc.Meshes = append(doc.Meshes, gltfMesh)

		node := &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	return doc, nil
}

func exportMaterial(doc *gltf.Document, m *model.Model, i int,
	displayColors []utils.ColorFloat, opts xrm.Options) uint32 {

	entry := &m.Materials[i]

	gltfMaterial := &gltf.Material{
		Name:                 entry.Name,
		DoubleSided:          true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{},
	}
	if displayColors != nil {
		color := new([4]float32)
		*color = [4]float32(displayColors[i])
		gltfMaterial.PBRMetallicRoughness.BaseColorFactor = color
	}

	if opts.ImportTextures {
		for _, ref := range entry.Textures {
			if ref.Role != xrm.RoleDiffuse {
				continue // glTF core has no slot for the remaster's other maps
			}
			uri := ref.Path
			if uri == "" && ref.Index >= 0 && ref.Index < len(m.TextureIDs) {
				uri = fmt.Sprintf("%d.DDS", m.TextureIDs[ref.Index])
			}
			if uri == "" {
				continue
			}
			doc.Images = append(doc.Images, &gltf.Image{Name: entry.Name, URI: uri})
			doc.Textures = append(doc.Textures,
				&gltf.Texture{Source: gltf.Index(uint32(len(doc.Images) - 1))})
			gltfMaterial.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{
				Index: uint32(len(doc.Textures) - 1),
			}
			break
		}
	}

	doc.Materials = append(doc.Materials, gltfMaterial)
	return uint32(len(doc.Materials) - 1)
}

// WriteGLTFBinary encodes the document as GLB.
func WriteGLTFBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
