// Package codec drives the decode and encode pipelines. Both are linear:
// each stage either advances or fails terminally, and no partial model or
// partial output ever escapes.
package codec

import (
	"sync"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/chunk"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/geom"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/mat"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/normals"
)

// Decode parses a complete XRM file into a model. Geometry and material
// decoding read disjoint chunks and run concurrently; submesh assembly joins
// them. The normal pass runs last, honoring opts.RecalculateNormals.
func Decode(data []byte, opts xrm.Options) (*model.Model, error) {
	stage := StageUnopened

	table, err := chunk.Parse(data)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	stage = StageDirectoryParsed

	layout, err := xrm.LayoutForVersion(table.Version)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	submBody, err := table.Required(xrm.TagSubmeshes)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	geomBody, err := table.Required(xrm.TagGeometry)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	idxBody, err := table.Required(xrm.TagIndices)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	chunks := geom.Chunks{Geometry: geomBody, Indices: idxBody}
	chunks.Normals, _ = table.Chunk(xrm.TagNormals)
	chunks.Skin, _ = table.Chunk(xrm.TagSkin)

	records, err := geom.ParseSubmeshTable(submBody)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	// Submeshes bind materials positionally, so a populated submesh table
	// makes the material chunk mandatory.
	if len(records) > 0 {
		if _, err := table.Required(xrm.TagMaterials); err != nil {
			return nil, &StageError{Stage: stage, Err: err}
		}
	}

	// Geometry and materials touch disjoint chunks: decode in parallel,
	// join before assembly.
	var (
		wg         sync.WaitGroup
		submeshes  []*model.Submesh
		geomErr    error
		materials  []model.MaterialEntry
		shaders    []model.ShaderRecord
		textureIDs []uint16
		matErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		submeshes, geomErr = geom.Decode(layout, records, chunks)
	}()
	go func() {
		defer wg.Done()
		materials, shaders, textureIDs, matErr = decodeMaterials(layout, table)
	}()
	wg.Wait()

	if geomErr != nil {
		return nil, &StageError{Stage: stage, Err: geomErr}
	}
	stage = StageGeometryDecoded
	if matErr != nil {
		return nil, &StageError{Stage: stage, Err: matErr}
	}
	stage = StageMaterialsDecoded

	m, err := model.Assemble(table.Version, submeshes, materials, shaders, textureIDs)
	if err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}
	stage = StageAssembled

	mode := normals.Passthrough
	if opts.RecalculateNormals {
		mode = normals.Recompute
	}
	if err := normals.Resolve(m, mode); err != nil {
		return nil, &StageError{Stage: stage, Err: err}
	}

	return m, nil
}

func decodeMaterials(layout xrm.Layout, table *chunk.Table) (
	[]model.MaterialEntry, []model.ShaderRecord, []uint16, error) {

	var materials []model.MaterialEntry
	var shaders []model.ShaderRecord
	var textureIDs []uint16

	if body, ok := table.Chunk(xrm.TagMaterials); ok {
		var err error
		if materials, err = mat.ParseMaterials(layout, body); err != nil {
			return nil, nil, nil, err
		}
	}
	if body, ok := table.Chunk(xrm.TagTextures); ok {
		var err error
		if textureIDs, err = mat.ParseTextureIDs(body); err != nil {
			return nil, nil, nil, err
		}
	}
	if body, ok := table.Chunk(xrm.TagShaders); ok {
		var err error
		if shaders, err = mat.ParseShaders(body); err != nil {
			return nil, nil, nil, err
		}
	}
	if !layout.InlineTexturePaths {
		if err := mat.ResolveTextureRefs(materials, textureIDs); err != nil {
			return nil, nil, nil, err
		}
	}
	return materials, shaders, textureIDs, nil
}

// Encode validates the model and serializes it. Validation failures are
// reported before a single output byte exists; the returned buffer is
// complete or absent.
func Encode(m *model.Model, opts xrm.Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, &StageError{Stage: StageModelValidated, Err: err}
	}

	layout, err := xrm.LayoutForVersion(m.Version)
	if err != nil {
		return nil, &StageError{Stage: StageModelValidated, Err: err}
	}

	encoded := geom.Encode(layout, m.Submeshes, opts.IndexWidth)

	w := chunk.NewWriter(m.Version)
	w.Set(xrm.TagShaders, mat.WriteShaders(m.Shaders))
	w.Set(xrm.TagMaterials, mat.WriteMaterials(layout, m.Materials))
	if !layout.InlineTexturePaths {
		w.Set(xrm.TagTextures, mat.WriteTextureIDs(m.TextureIDs))
	}
	w.Set(xrm.TagSubmeshes, encoded.SubmeshTable)
	w.Set(xrm.TagGeometry, encoded.Geometry)
	w.Set(xrm.TagIndices, encoded.Indices)
	w.Set(xrm.TagNormals, encoded.Normals)
	w.Set(xrm.TagSkin, encoded.Skin)

	return w.Finalize(), nil
}
