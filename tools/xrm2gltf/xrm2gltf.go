package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/TheDodylectableX/io-scene-xrm/config"
	"github.com/TheDodylectableX/io-scene-xrm/export"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/codec"
)

func convert(fileName string, opts xrm.Options) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	m, err := codec.Decode(data, opts)
	if err != nil {
		return err
	}

	doc, err := export.BuildGLTF(m, opts)
	if err != nil {
		return err
	}

	outName := fileName
	for _, ext := range []string{".xrm", ".trm", ".srm"} {
		outName = strings.TrimSuffix(outName, ext)
	}
	outName += ".glb"

	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.WriteGLTFBinary(out, doc); err != nil {
		return err
	}
	log.Printf("%s -> %s", fileName, outName)
	return nil
}

func main() {
	var enc string
	var recalcNormals, noTextures, randomColors bool
	flag.StringVar(&enc, "enc", "", "Name encoding of model files (default windows1252)")
	flag.BoolVar(&recalcNormals, "recalcnormals", false, "Recompute normals instead of reading NRML chunks")
	flag.BoolVar(&noTextures, "notextures", false, "Skip texture references")
	flag.BoolVar(&randomColors, "randomcolors", false, "Assign random display colors to materials")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: xrm2gltf [flags] file.xrm ...")
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

	for _, fileName := range flag.Args() {
		if err := convert(fileName, opts); err != nil {
			log.Fatalf("%s: %v", fileName, err)
		}
	}
}
