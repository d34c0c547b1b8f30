package xrm

// IndexWidthPolicy controls the width of re-encoded triangle indices.
type IndexWidthPolicy int

const (
	// IndexWidthPreserve keeps the width the source file declared. The
	// engine rejects some widened files, so this is the default.
	IndexWidthPreserve IndexWidthPolicy = iota
	// IndexWidthNarrow picks the narrowest width that fits the submesh's
	// vertex count.
	IndexWidthNarrow
)

// Options recognized by import/export. Fields the codec itself does not
// consume (texture import, display colors) are forwarded to host surfaces.
type Options struct {
	RecalculateNormals         bool
	ImportTextures             bool
	AssignRandomMaterialColors bool
	IndexWidth                 IndexWidthPolicy
}

func DefaultOptions() Options {
	return Options{
		ImportTextures: true,
	}
}
