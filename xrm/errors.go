package xrm

import "github.com/pkg/errors"

// Decode failures are fatal for the whole file: a partially decoded mesh
// risks silently wrong geometry in the host tool. Encode failures are
// reported before a single output byte exists.
var (
	ErrBadMagic                   = errors.New("bad magic")
	ErrCorruptDirectory           = errors.New("corrupt chunk directory")
	ErrMissingChunk               = errors.New("missing required chunk")
	ErrTruncatedData              = errors.New("truncated data")
	ErrInvalidIndex               = errors.New("triangle index out of range")
	ErrMissingNormals             = errors.New("stored normals requested but absent")
	ErrUnresolvedTextureReference = errors.New("unresolved texture reference")
	ErrDanglingMaterialBinding    = errors.New("dangling material binding")
	ErrInvalidModel               = errors.New("invalid model")
)
