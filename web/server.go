// Package web serves a small model browser over a directory of XRM and
// SRM files.
package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

// Server state is process-wide, one model directory per run.
var (
	ServerDirectory string
	ServerOptions   xrm.Options
)

func StartServer(addr string, modelsDir string, opts xrm.Options) error {
	ServerDirectory = modelsDir
	ServerOptions = opts

	r := mux.NewRouter()
	r.HandleFunc("/json/models", HandlerAjaxModels)
	r.HandleFunc("/json/models/{file}", HandlerAjaxModel)
	r.HandleFunc("/dump/models/{file}", HandlerDumpModel)
	r.HandleFunc("/action/models/{file}/json", HandlerActionModelJSON)
	r.HandleFunc("/action/models/{file}/gltf", HandlerActionModelGLTF)
	r.HandleFunc("/action/models/{file}/obj", HandlerActionModelObj)
	r.HandleFunc("/action/models/{file}/reencode", HandlerActionModelReencode)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
