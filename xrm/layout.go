package xrm

import "github.com/pkg/errors"

// Layout resolves the version-dependent field widths once at decode start.
// Components consult the descriptor instead of branching on the raw version.
type Layout struct {
	Version Version

	// FloatUVs selects 2x float32 UVs; version 1 stores a quantized
	// byte pair (u/255, flipped v).
	FloatUVs bool

	// Tangents adds a biased byte triple plus a constant byte to each
	// vertex record (SRM lineage only).
	Tangents bool

	// InlineTexturePaths selects length-prefixed path strings in material
	// records; version 1 references a shared texture id list instead.
	InlineTexturePaths bool
}

func LayoutForVersion(v Version) (Layout, error) {
	switch v {
	case Version1:
		return Layout{Version: v}, nil
	case Version2:
		return Layout{Version: v, FloatUVs: true, Tangents: true, InlineTexturePaths: true}, nil
	}
	return Layout{}, errors.Wrapf(ErrBadMagic, "unknown format version %d", v)
}

// VertexStride is the GEOM record size for a submesh with the given flags.
// Normals and skin data live in their own chunks and do not contribute.
func (l Layout) VertexStride(flags uint16) int {
	stride := 3 * 4 // position
	if flags&FlagHasUV != 0 {
		if l.FloatUVs {
			stride += 2 * 4
		} else {
			stride += 2
		}
	}
	if l.Tangents && flags&FlagHasTangents != 0 {
		stride += 3 + 1 // biased triple + constant byte
	}
	return stride
}

// IndexSize in bytes for a submesh with the given flags.
func (l Layout) IndexSize(flags uint16) int {
	if flags&FlagWideIndices != 0 {
		return 4
	}
	return 2
}

// NormalSize is the per-vertex NRML record size (biased byte triple).
func (l Layout) NormalSize() int { return 3 }

// SkinSize is the per-vertex SKIN record size (3 bone indices + 3 weights).
func (l Layout) SkinSize() int { return 6 }
