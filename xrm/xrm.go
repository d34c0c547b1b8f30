// Package xrm holds the byte-level constants of the XRM model container
// shared by every codec component. The values were recovered from the
// remaster game files; none of them are negotiable at runtime.
package xrm

import "encoding/binary"

// ByteOrder of every field in an XRM file.
var ByteOrder = binary.LittleEndian

const Magic = "XRMF"

type Version uint32

const (
	// Version1 is the TRM lineage (Tomb Raider I-V remasters).
	Version1 Version = 1
	// Version2 is the SRM lineage (Soul Reaver 1-2 remasters).
	Version2 Version = 2
)

func (v Version) Known() bool {
	return v == Version1 || v == Version2
}

// ChunkTag is a FourCC chunk type identifier.
type ChunkTag uint32

func MakeTag(s string) ChunkTag {
	if len(s) != 4 {
		panic("chunk tag must be 4 chars")
	}
	return ChunkTag(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24)
}

func (t ChunkTag) String() string {
	return string([]byte{byte(t), byte(t >> 8), byte(t >> 16), byte(t >> 24)})
}

var (
	TagShaders   = MakeTag("SHDR")
	TagMaterials = MakeTag("MTRL")
	TagTextures  = MakeTag("TEXR")
	TagSubmeshes = MakeTag("SUBM")
	TagGeometry  = MakeTag("GEOM")
	TagIndices   = MakeTag("INDX")
	TagNormals   = MakeTag("NRML")
	TagSkin      = MakeTag("SKIN")
)

// ChunkOrder is the directory order the game engine expects. An encoder
// emits present chunks in exactly this order, whatever the in-memory order.
var ChunkOrder = []ChunkTag{
	TagShaders,
	TagMaterials,
	TagTextures,
	TagSubmeshes,
	TagGeometry,
	TagIndices,
	TagNormals,
	TagSkin,
}

// RequiredChunks must be present in every file.
var RequiredChunks = []ChunkTag{TagSubmeshes, TagGeometry, TagIndices}

const (
	HeaderSize   = 12 // magic + version + chunk count
	DirEntrySize = 12 // tag + offset + length

	// NoOffset marks an absent per-submesh range in an optional chunk.
	NoOffset = 0xFFFFFFFF

	SubmeshNameLen  = 24
	MaterialNameLen = 31
)

// Submesh record flags.
const (
	FlagHasUV       uint16 = 1 << 0
	FlagHasNormals  uint16 = 1 << 1
	FlagHasSkin     uint16 = 1 << 2
	FlagWideIndices uint16 = 1 << 3
	FlagUnsupported uint16 = 1 << 4 // hand/head meshes the remasters handle specially
	FlagHasTangents uint16 = 1 << 5
)

// TextureRole tags a texture slot inside a material record.
type TextureRole uint8

const (
	RoleDiffuse  TextureRole = 0
	RoleNormal   TextureRole = 1
	RoleSpecular TextureRole = 2
)

func (r TextureRole) String() string {
	switch r {
	case RoleDiffuse:
		return "diffuse"
	case RoleNormal:
		return "normal"
	case RoleSpecular:
		return "specular"
	}
	return "unknown"
}

// Triangles are stored clockwise in the file. Decoders flip each triple to
// counter-clockwise for the in-memory model, encoders flip back.
const FileWindingClockwise = true
