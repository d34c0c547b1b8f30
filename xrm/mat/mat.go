// Package mat decodes and encodes the material table, the shared texture id
// list and the shader pass records.
package mat

import (
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// Name, flags and texture count; texture slots are variable-width.
const materialRecordMinSize = xrm.MaterialNameLen + 1 + 4

// ParseMaterials decodes the MTRL chunk. An empty texture list per material
// is valid; plenty of submeshes reference untextured materials.
func ParseMaterials(layout xrm.Layout, body []byte) ([]model.MaterialEntry, error) {
	r := bstream.NewReader(body)
	count, err := r.U32()
	if err != nil {
		return nil, errors.WithMessage(err, "material table")
	}
	if r.Remaining() < int(count)*materialRecordMinSize {
		return nil, errors.Wrapf(xrm.ErrTruncatedData,
			"material table: %d records do not fit %d bytes", count, r.Remaining())
	}

	materials := make([]model.MaterialEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		nameRaw, err := r.Bytes(xrm.MaterialNameLen)
		if err != nil {
			return nil, errors.WithMessagef(err, "material %d", i)
		}
		flags, _ := r.U8()
		texCount, err := r.U32()
		if err != nil {
			return nil, errors.WithMessagef(err, "material %d", i)
		}

		entry := model.MaterialEntry{
			Name:  utils.BytesToString(nameRaw),
			Flags: flags,
		}
		for t := uint32(0); t < texCount; t++ {
			role, err := r.U8()
			if err != nil {
				return nil, errors.WithMessagef(err, "material %d texture %d", i, t)
			}
			ref := model.TextureRef{Role: xrm.TextureRole(role)}
			if layout.InlineTexturePaths {
				plen, err := r.U16()
				if err != nil {
					return nil, errors.WithMessagef(err, "material %d texture %d", i, t)
				}
				pathRaw, err := r.Bytes(int(plen))
				if err != nil {
					return nil, errors.WithMessagef(err, "material %d texture %d", i, t)
				}
				ref.Path = utils.BytesToString(pathRaw)
			} else {
				idx, err := r.U16()
				if err != nil {
					return nil, errors.WithMessagef(err, "material %d texture %d", i, t)
				}
				ref.Index = int(idx)
			}
			entry.Textures = append(entry.Textures, ref)
		}
		materials = append(materials, entry)
	}
	return materials, nil
}

// WriteMaterials serializes the table in its original order; some engine
// lookups are positional, so the encoder never re-sorts.
func WriteMaterials(layout xrm.Layout, materials []model.MaterialEntry) []byte {
	w := bstream.NewWriter()
	w.U32(uint32(len(materials)))
	for i := range materials {
		m := &materials[i]
		w.PutBytes(utils.StringToBytesBuffer(m.Name, xrm.MaterialNameLen))
		w.U8(m.Flags)
		w.U32(uint32(len(m.Textures)))
		for _, ref := range m.Textures {
			w.U8(uint8(ref.Role))
			if layout.InlineTexturePaths {
				path := utils.StringToBytes(ref.Path)
				w.U16(uint16(len(path)))
				w.PutBytes(path)
			} else {
				w.U16(uint16(ref.Index))
			}
		}
	}
	return w.Bytes()
}

// ResolveTextureRefs verifies every version 1 texture slot points inside the
// shared texture id list.
func ResolveTextureRefs(materials []model.MaterialEntry, textureIDs []uint16) error {
	for i := range materials {
		for _, ref := range materials[i].Textures {
			if ref.Index < 0 || ref.Index >= len(textureIDs) {
				return errors.Wrapf(xrm.ErrUnresolvedTextureReference,
					"material %d (%q): texture index %d, list holds %d",
					i, materials[i].Name, ref.Index, len(textureIDs))
			}
		}
	}
	return nil
}

// ParseTextureIDs decodes the TEXR chunk (version 1 shared texture list).
func ParseTextureIDs(body []byte) ([]uint16, error) {
	r := bstream.NewReader(body)
	count, err := r.U32()
	if err != nil {
		return nil, errors.WithMessage(err, "texture list")
	}
	if r.Remaining() < int(count)*2 {
		return nil, errors.Wrapf(xrm.ErrTruncatedData,
			"texture list: %d ids do not fit %d bytes", count, r.Remaining())
	}
	ids := make([]uint16, count)
	for i := range ids {
		if ids[i], err = r.U16(); err != nil {
			return nil, errors.WithMessagef(err, "texture id %d", i)
		}
	}
	return ids, nil
}

func WriteTextureIDs(ids []uint16) []byte {
	if len(ids) == 0 {
		return nil
	}
	w := bstream.NewWriter()
	w.U32(uint32(len(ids)))
	for _, id := range ids {
		w.U16(id)
	}
	return w.Bytes()
}
