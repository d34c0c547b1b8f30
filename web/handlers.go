package web

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/export"
	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/webutils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/chunk"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/codec"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

func isModelFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xrm", ".srm", ".trm":
		return true
	}
	return false
}

func loadModel(fileName string) (*model.Model, []byte, error) {
	if fileName != filepath.Base(fileName) {
		return nil, nil, errors.Errorf("Invalid file name %q", fileName)
	}
	data, err := os.ReadFile(filepath.Join(ServerDirectory, fileName))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Failed to read %q", fileName)
	}
	m, err := codec.Decode(data, ServerOptions)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Failed to decode %q", fileName)
	}
	return m, data, nil
}

func HandlerAjaxModels(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(ServerDirectory)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isModelFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	webutils.WriteJson(w, files)
}

type ajaxSubmesh struct {
	Name          string
	MaterialIndex int
	Vertices      int
	Triangles     int
	HasUV         bool
	HasNormals    bool
	HasSkin       bool
	HasTangents   bool
	WideIndices   bool
	Unsupported   bool
}

type ajaxModel struct {
	Version    uint32
	Vertices   int
	Triangles  int
	Submeshes  []ajaxSubmesh
	Materials  []model.MaterialEntry
	TextureIDs []uint16
	Shaders    int
}

func modelView(m *model.Model) *ajaxModel {
	view := &ajaxModel{
		Version:    uint32(m.Version),
		Vertices:   m.VertexCount(),
		Triangles:  m.TriangleCount(),
		Materials:  m.Materials,
		TextureIDs: m.TextureIDs,
		Shaders:    len(m.Shaders),
	}
	for _, s := range m.Submeshes {
		view.Submeshes = append(view.Submeshes, ajaxSubmesh{
			Name:          s.Name,
			MaterialIndex: s.MaterialIndex,
			Vertices:      len(s.Vertices),
			Triangles:     s.TriangleCount(),
			HasUV:         s.HasUV,
			HasNormals:    s.HasNormals,
			HasSkin:       s.HasSkin,
			HasTangents:   s.HasTangents,
			WideIndices:   s.WideIndices,
			Unsupported:   s.Unsupported,
		})
	}
	return view
}

func HandlerAjaxModel(w http.ResponseWriter, r *http.Request) {
	m, _, err := loadModel(mux.Vars(r)["file"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, modelView(m))
}

func HandlerDumpModel(w http.ResponseWriter, r *http.Request) {
	m, data, err := loadModel(mux.Vars(r)["file"])
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if table, err := chunk.Parse(data); err == nil {
		for _, e := range table.Entries() {
			preview := data[e.Offset:]
			if len(preview) > 16 {
				preview = preview[:16]
			}
			fmt.Fprintf(w, "%s off=0x%.8x len=0x%.8x | %s\n",
				e.Tag, e.Offset, e.Length, utils.DumpToOneLineString(preview))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, utils.SDump(m))
}

func HandlerActionModelJSON(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, _, err := loadModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJsonFile(w, modelView(m), file)
}

func HandlerActionModelGLTF(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, _, err := loadModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	doc, err := export.BuildGLTF(m, ServerOptions)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteGLTFBinary(&buf, doc); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, file+".glb")
}

func HandlerActionModelObj(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, _, err := loadModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteObj(&buf, m, ""); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, file+".obj")
}

func HandlerActionModelReencode(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, _, err := loadModel(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	data, err := codec.Encode(m, ServerOptions)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, bytes.NewReader(data), file)
}
