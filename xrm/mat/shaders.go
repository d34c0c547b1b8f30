package mat

import (
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/bstream"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

const shaderRecordSize = 4 + 4*4 + 3*8

// ParseShaders decodes the SHDR chunk. The records are carried through the
// codec opaquely; only the game's renderer interprets them.
func ParseShaders(body []byte) ([]model.ShaderRecord, error) {
	r := bstream.NewReader(body)
	count, err := r.U32()
	if err != nil {
		return nil, errors.WithMessage(err, "shader table")
	}
	if r.Remaining() < int(count)*shaderRecordSize {
		return nil, errors.Wrapf(xrm.ErrTruncatedData,
			"shader table: %d records do not fit %d bytes", count, r.Remaining())
	}

	shaders := make([]model.ShaderRecord, count)
	for i := range shaders {
		rec := &shaders[i]
		rec.Type, _ = r.U32()
		for p := range rec.Params {
			rec.Params[p], _ = r.F32()
		}
		for p := range rec.Passes {
			rec.Passes[p].Offset, _ = r.U32()
			rec.Passes[p].Length, _ = r.U32()
		}
	}
	return shaders, nil
}

func WriteShaders(shaders []model.ShaderRecord) []byte {
	if len(shaders) == 0 {
		return nil
	}
	w := bstream.NewWriter()
	w.U32(uint32(len(shaders)))
	for i := range shaders {
		rec := &shaders[i]
		w.U32(rec.Type)
		for _, p := range rec.Params {
			w.F32(p)
		}
		for _, p := range rec.Passes {
			w.U32(p.Offset)
			w.U32(p.Length)
		}
	}
	return w.Bytes()
}
