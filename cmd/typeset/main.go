// Command typeset lays out an HTML document into fixed-size pages and writes
// one PNG per page, or a JSON dump of the draw instructions.
//
// # Usage
//
//	typeset [flags] input.html
//
// Image src attributes are resolved relative to the input file's directory.
//
// # Flags
//
//	-width    page width in pixels (default 600)
//	-height   page height in pixels (default 800)
//	-font     font family name (default "Go")
//	-size     font size in points (default 16)
//	-out      output directory for page PNGs (default ".")
//	-json     write draw instructions as JSON to this file instead of PNGs
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/lvillar/typeset"
	"github.com/lvillar/typeset/htmltok"
	"github.com/lvillar/typeset/imagestore"
	"github.com/lvillar/typeset/raster"
	"github.com/lvillar/typeset/typeface"
)

func main() {
	var (
		width    = flag.Int("width", 600, "page width in pixels")
		height   = flag.Int("height", 800, "page height in pixels")
		fontName = flag.String("font", "Go", "font family name")
		fontSize = flag.Float64("size", 16, "font size in points")
		outDir   = flag.String("out", ".", "output directory for page PNGs")
		jsonPath = flag.String("json", "", "write draw instructions as JSON to this file")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: typeset [flags] input.html")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *width, *height, *fontName, *fontSize, *outDir, *jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(1)
	}
}

func run(input string, width, height int, fontName string, fontSize float64, outDir, jsonPath string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg := typeset.NewConfig(float64(width), float64(height), fontName, fontSize)
	images := imagestore.New(os.DirFS(filepath.Dir(input)))

	var pages []*typeset.Page
	err = typeset.Layout(cfg, htmltok.New(f), typeface.NewSource(), images, func(p *typeset.Page) {
		pages = append(pages, p)
	})
	if err != nil {
		return err
	}

	if jsonPath != "" {
		return typeset.WriteDebugJSON(pages, jsonPath)
	}

	for i, p := range pages {
		img := raster.Render(p, width, height)
		name := filepath.Join(outDir, fmt.Sprintf("page-%03d.png", i+1))
		out, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := png.Encode(out, img); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}
