package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/TheDodylectableX/io-scene-xrm/config"
	"github.com/TheDodylectableX/io-scene-xrm/utils"
	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/chunk"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/codec"
)

func printInfo(fileName string, dump bool) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	table, err := chunk.Parse(data)
	if err != nil {
		return err
	}

	fmt.Printf("%s: version %d, %d bytes\n", fileName, table.Version, len(data))
	for _, e := range table.Entries() {
		fmt.Printf("  %s off=0x%.8x len=0x%.8x\n", e.Tag, e.Offset, e.Length)
	}

	m, err := codec.Decode(data, xrm.DefaultOptions())
	if err != nil {
		return err
	}

	fmt.Printf("  %d submeshes, %d vertices, %d triangles, %d materials, %d shaders\n",
		len(m.Submeshes), m.VertexCount(), m.TriangleCount(), len(m.Materials), len(m.Shaders))
	for i, s := range m.Submeshes {
		fmt.Printf("  [%d] %-24q mat=%d verts=%d tris=%d flags=0x%.4x\n",
			i, s.Name, s.MaterialIndex, len(s.Vertices), s.TriangleCount(), s.Flags())
	}
	min, max := m.BoundingBox()
	fmt.Printf("  bounds min=%v max=%v\n", min, max)

	if dump {
		utils.Dump(m)
	}
	return nil
}

func main() {
	var enc string
	var dump bool
	flag.StringVar(&enc, "enc", "", "Name encoding of model files (default windows1252)")
	flag.BoolVar(&dump, "dump", false, "Dump the whole decoded model")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: xrminfo [flags] file.xrm ...")
		flag.PrintDefaults()
		return
	}

	if enc != "" {
		if err := config.SetEncoding(enc); err != nil {
			log.Fatalf("%v; known encodings: %v", err, config.ListEncodings())
		}
	}

	for _, fileName := range flag.Args() {
		if err := printInfo(fileName, dump); err != nil {
			log.Fatalf("%s: %v", fileName, err)
		}
	}
}
