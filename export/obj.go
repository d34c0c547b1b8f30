package export

import (
	"fmt"
	"io"

	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// WriteObj emits the model as Wavefront OBJ. mtlName, when non-empty, is
// referenced from an mtllib statement; pair it with WriteMtl.
func WriteObj(_w io.Writer, m *model.Model, mtlName string) error {
	w := func(format string, args ...interface{}) {
		_w.Write(([]byte)(fmt.Sprintf(format+"\n", args...)))
	}

	if mtlName != "" {
		w("mtllib %s", mtlName)
	}

	for _, s := range m.Submeshes {
		for i := range s.Vertices {
			p := s.Vertices[i].Position
			w("v %f %f %f", p[0], p[1], p[2])
		}
		if s.HasUV {
			for i := range s.Vertices {
				uv := s.Vertices[i].UV
				w("vt %f %f", uv[0], 1.0-uv[1])
			}
		}
		if s.HasNormals {
			for i := range s.Vertices {
				n := s.Vertices[i].Normal
				w("vn %f %f %f", n[0], n[1], n[2])
			}
		}
	}

	iV := uint32(1)
	iT := uint32(1)
	iN := uint32(1)

	var rng utils.RandomNameGenerator
	for iSub, s := range m.Submeshes {
		name := s.Name
		if name == "" {
			name = rng.RandomName()
		}
		w("o s%.2d_%s", iSub, name)
		if s.MaterialIndex >= 0 && s.MaterialIndex < len(m.Materials) {
			w("usemtl %s", m.Materials[s.MaterialIndex].Name)
		}

		for iIndex := 0; iIndex+3 <= len(s.Indices); iIndex += 3 {
			indexes := s.Indices[iIndex : iIndex+3]

			if s.HasNormals {
				if s.HasUV {
					w("f %v/%v/%v %v/%v/%v %v/%v/%v",
						iV+indexes[0], iT+indexes[0], iN+indexes[0],
						iV+indexes[1], iT+indexes[1], iN+indexes[1],
						iV+indexes[2], iT+indexes[2], iN+indexes[2])
				} else {
					w("f %v//%v %v//%v %v//%v",
						iV+indexes[0], iN+indexes[0],
						iV+indexes[1], iN+indexes[1],
						iV+indexes[2], iN+indexes[2])
				}
			} else {
				if s.HasUV {
					w("f %v/%v %v/%v %v/%v",
						iV+indexes[0], iT+indexes[0],
						iV+indexes[1], iT+indexes[1],
						iV+indexes[2], iT+indexes[2])
				} else {
					w("f %v %v %v",
						iV+indexes[0],
						iV+indexes[1],
						iV+indexes[2])
				}
			}
		}

		count := uint32(len(s.Vertices))
		iV += count
		if s.HasUV {
			iT += count
		}
		if s.HasNormals {
			iN += count
		}
	}

	return nil
}

// WriteMtl emits a material library naming each material and its diffuse
// map, resolving version 1 texture ids the same way BuildGLTF does.
func WriteMtl(_w io.Writer, m *model.Model, opts xrm.Options) error {
	w := func(format string, args ...interface{}) {
		_w.Write(([]byte)(fmt.Sprintf(format+"\n", args...)))
	}

	var displayColors []utils.ColorFloat
	if opts.AssignRandomMaterialColors {
		displayColors = utils.RandomMaterialColors(int64(len(m.Submeshes)), len(m.Materials))
	}

	for i := range m.Materials {
		entry := &m.Materials[i]
		w("newmtl %s", entry.Name)
		if displayColors != nil {
			c := displayColors[i]
			w("Kd %f %f %f", c[0], c[1], c[2])
		} else {
			w("Kd 1.0 1.0 1.0")
		}
		if opts.ImportTextures {
			for _, ref := range entry.Textures {
				if ref.Role != xrm.RoleDiffuse {
					continue
				}
				uri := ref.Path
				if uri == "" && ref.Index >= 0 && ref.Index < len(m.TextureIDs) {
					uri = fmt.Sprintf("%d.DDS", m.TextureIDs[ref.Index])
				}
				if uri != "" {
					w("map_Kd %s", uri)
				}
				break
			}
		}
	}
	return nil
}
