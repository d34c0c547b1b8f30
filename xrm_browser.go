package main

import (
	"flag"
	"log"

	"github.com/TheDodylectableX/io-scene-xrm/config"
	"github.com/TheDodylectableX/io-scene-xrm/web"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
)

func main() {
	var addr, dir, enc string
	var recalcNormals, noTextures, randomColors, narrowIndices bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to folder with xrm/srm model files")
	flag.StringVar(&enc, "enc", "", "Name encoding of model files (default windows1252)")
	flag.BoolVar(&recalcNormals, "recalcnormals", false, "Recompute normals instead of reading NRML chunks")
	flag.BoolVar(&noTextures, "notextures", false, "Skip texture references on export")
	flag.BoolVar(&randomColors, "randomcolors", false, "Assign random display colors to materials")
	flag.BoolVar(&narrowIndices, "narrowindices", false, "Re-encode 16-bit indices where the vertex count allows")
	flag.Parse()

	if dir == "" {
		flag.PrintDefaults()
		return
	}

	if enc != "" {
		if err := config.SetEncoding(enc); err != nil {
			log.Fatalf("%v; known encodings: %v", err, config.ListEncodings())
		}
	}

	opts := xrm.DefaultOptions()
	opts.RecalculateNormals = recalcNormals
	opts.ImportTextures = !noTextures
	opts.AssignRandomMaterialColors = randomColors
	if narrowIndices {
		opts.IndexWidth = xrm.IndexWidthNarrow
	}

	if err := web.StartServer(addr, dir, opts); err != nil {
		log.Fatal(err)
	}
}
