package osmnav

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

var renderFormats = map[string]graphviz.Format{
	".svg":  graphviz.SVG,
	".png":  graphviz.PNG,
	".jpg":  graphviz.JPG,
	".jpeg": graphviz.JPG,
}

// ExportFile writes graph into file. Output format is taken from extension:
// .dot/.gv (Graphviz source), .svg/.png/.jpg (rendered by Graphviz), .csv (vertices and edges tables)
func ExportFile(ctx context.Context, rg *RoutingGraph, hl *Highlight, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".dot", ".gv":
		file, err := os.Create(filename)
		if err != nil {
			return errors.Wrap(err, "can't create file")
		}
		defer file.Close()
		return WriteDOT(file, rg, hl)
	case ".csv":
		return ExportToCSV(rg, filename)
	}
	format, ok := renderFormats[ext]
	if !ok {
		return errors.Wrapf(ErrUnsupportedFormat, "output file type '%s' of '%s'", ext, filename)
	}
	b, err := Render(ctx, ToDOT(rg, hl), format)
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filename, b, 0644), "can't write rendered graph")
}

// Render renders DOT document with Graphviz
func Render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}
