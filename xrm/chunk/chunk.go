// Package chunk decodes and encodes the XRM header and chunk directory.
// The directory is rewritten in place once all body sizes are known, the
// same two-pass scheme the game's own tooling leaves traces of.
package chunk

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
)

// DirectoryEntry addresses one chunk body inside the file.
type DirectoryEntry struct {
	Tag    xrm.ChunkTag
	Offset uint32
	Length uint32
}

// Table is the decoded chunk directory with read-only views into the file.
type Table struct {
	Version xrm.Version
	entries []DirectoryEntry
	data    []byte
}

// Parse validates the header and directory of a complete file.
// Any directory violation is fatal; the file cannot be trusted further.
func Parse(data []byte) (*Table, error) {
	r := bstream.NewReader(data)

	magic, err := r.Bytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != xrm.Magic {
		return nil, errors.Wrapf(xrm.ErrBadMagic, "got %q, expected %q", magic, xrm.Magic)
	}

	rawVersion, err := r.U32()
	if err != nil {
		return nil, err
	}
	version := xrm.Version(rawVersion)
	if !version.Known() {
		return nil, errors.Wrapf(xrm.ErrBadMagic, "unknown version %d", rawVersion)
	}

	count, err := r.U32()
	if err != nil {
		return nil, err
	}
	dirEnd := xrm.HeaderSize + int(count)*xrm.DirEntrySize
	if dirEnd > len(data) {
		return nil, errors.Wrapf(xrm.ErrCorruptDirectory,
			"directory of %d entries exceeds file size 0x%x", count, len(data))
	}

	t := &Table{
		Version: version,
		entries: make([]DirectoryEntry, count),
		data:    data,
	}
	seen := make(map[xrm.ChunkTag]bool, count)
	for i := range t.entries {
		tag, _ := r.U32()
		off, _ := r.U32()
		length, err := r.U32()
		if err != nil {
			return nil, err
		}
		e := DirectoryEntry{Tag: xrm.ChunkTag(tag), Offset: off, Length: length}

		if seen[e.Tag] {
			return nil, errors.Wrapf(xrm.ErrCorruptDirectory, "duplicate chunk %v", e.Tag)
		}
		seen[e.Tag] = true

		end := uint64(e.Offset) + uint64(e.Length)
		if uint64(e.Offset) < uint64(dirEnd) || end > uint64(len(data)) {
			return nil, errors.Wrapf(xrm.ErrCorruptDirectory,
				"chunk %v range 0x%x:0x%x outside file bounds", e.Tag, e.Offset, end)
		}
		t.entries[i] = e
	}

	// Bodies must not overlap each other.
	sorted := make([]DirectoryEntry, len(t.entries))
	copy(sorted, t.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Offset+prev.Length > cur.Offset {
			return nil, errors.Wrapf(xrm.ErrCorruptDirectory,
				"chunk %v overlaps %v", prev.Tag, cur.Tag)
		}
	}

	return t, nil
}

// Entries returns the directory in file order.
func (t *Table) Entries() []DirectoryEntry { return t.entries }

// Chunk returns the body of an optional chunk, or absence.
func (t *Table) Chunk(tag xrm.ChunkTag) ([]byte, bool) {
	for _, e := range t.entries {
		if e.Tag == tag {
			return t.data[e.Offset : e.Offset+e.Length], true
		}
	}
	return nil, false
}

// Required returns the body of a chunk the format mandates.
func (t *Table) Required(tag xrm.ChunkTag) ([]byte, error) {
	if body, ok := t.Chunk(tag); ok {
		return body, nil
	}
	return nil, errors.Wrapf(xrm.ErrMissingChunk, "chunk %v", tag)
}
