package model

import (
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Assemble joins decoded geometry with the decoded material table into the
// final model. Binding is strictly positional; the source format knows
// nothing about material names.
func Assemble(version xrm.Version, submeshes []*Submesh, materials []MaterialEntry,
	shaders []ShaderRecord, textureIDs []uint16) (*Model, error) {

	for i, s := range submeshes {
		if s.MaterialIndex < 0 || s.MaterialIndex >= len(materials) {
			return nil, errors.Wrapf(xrm.ErrUnresolvedTextureReference,
				"submesh %d (%q): material index %d, table holds %d",
				i, s.Name, s.MaterialIndex, len(materials))
		}
	}

	return &Model{
		Version:    version,
		Submeshes:  submeshes,
		Materials:  materials,
		Shaders:    shaders,
		TextureIDs: textureIDs,
	}, nil
}
