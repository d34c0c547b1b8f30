package model

import (
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Validate re-checks the structural invariants an encoder depends on.
// It runs before any output byte is produced; a model that fails here is
// refused rather than serialized into a corrupt file.
func (m *Model) Validate() error {
	if !m.Version.Known() {
		return errors.Wrapf(xrm.ErrInvalidModel, "unknown version %d", m.Version)
	}
	for i, s := range m.Submeshes {
		if len(s.Indices)%3 != 0 {
			return errors.Wrapf(xrm.ErrInvalidModel,
				"submesh %d: index count %d not divisible by 3", i, len(s.Indices))
		}
		for _, idx := range s.Indices {
			if int(idx) >= len(s.Vertices) {
				return errors.Wrapf(xrm.ErrInvalidModel,
					"submesh %d: index %d >= vertex count %d", i, idx, len(s.Vertices))
			}
		}
		if !s.WideIndices && len(s.Vertices) > 0x10000 {
			return errors.Wrapf(xrm.ErrInvalidModel,
				"submesh %d: %d vertices cannot be addressed by 16-bit indices", i, len(s.Vertices))
		}
		if s.MaterialIndex < 0 || s.MaterialIndex >= len(m.Materials) {
			return errors.Wrapf(xrm.ErrDanglingMaterialBinding,
				"submesh %d: material index %d, table holds %d", i, s.MaterialIndex, len(m.Materials))
		}
	}
	for i, mat := range m.Materials {
		for _, ref := range mat.Textures {
			if m.Version == xrm.Version1 && (ref.Index < 0 || ref.Index >= len(m.TextureIDs)) {
				return errors.Wrapf(xrm.ErrUnresolvedTextureReference,
					"material %d (%q): texture index %d, list holds %d",
					i, mat.Name, ref.Index, len(m.TextureIDs))
			}
		}
	}
	return nil
}
