package web

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/mux"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/codec"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

func serveFixtureDir(t *testing.T) string {
	t.Helper()

	m := &model.Model{
		Version: xrm.Version1,
		Submeshes: []*model.Submesh{
			{
				Name:          "TORSO",
				MaterialIndex: 0,
				HasNormals:    true,
				Vertices: []model.Vertex{
					{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
					{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
					{Position: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}},
				},
				Indices: []uint32{0, 1, 2},
			},
		},
		Materials: []model.MaterialEntry{{Name: "TORSO_MAT"}},
	}
	data, err := codec.Encode(m, xrm.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "torso.xrm"), data, 0666); err != nil {
		t.Fatal(err)
	}

	ServerDirectory = dir
	ServerOptions = xrm.DefaultOptions()
	return dir
}

func TestHandlerAjaxModels(t *testing.T) {
	serveFixtureDir(t)

	rec := httptest.NewRecorder()
	HandlerAjaxModels(rec, httptest.NewRequest("GET", "/json/models", nil))

	var files []string
	if err := json.Unmarshal(rec.Body.Bytes(), &files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "torso.xrm" {
		t.Errorf("files = %v", files)
	}
}

func TestHandlerActionModelJSON(t *testing.T) {
	serveFixtureDir(t)

	rec := httptest.NewRecorder()
	req := mux.SetURLVars(httptest.NewRequest("GET", "/action/models/torso.xrm/json", nil),
		map[string]string{"file": "torso.xrm"})
	HandlerActionModelJSON(rec, req)

	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "torso.xrm.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	var view ajaxModel
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Vertices != 3 || view.Triangles != 1 || len(view.Submeshes) != 1 {
		t.Errorf("view = %+v", view)
	}
}

func TestHandlerDumpModel(t *testing.T) {
	serveFixtureDir(t)

	rec := httptest.NewRecorder()
	req := mux.SetURLVars(httptest.NewRequest("GET", "/dump/models/torso.xrm", nil),
		map[string]string{"file": "torso.xrm"})
	HandlerDumpModel(rec, req)

	out := rec.Body.String()
	if !strings.Contains(out, "SUBM off=") {
		t.Errorf("dump lacks chunk directory lines:\n%s", out)
	}
	if !strings.Contains(out, "TORSO") {
		t.Errorf("dump lacks model content:\n%s", out)
	}
}
