package main

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"path/filepath"
)

// exporter writes the last rendered artifact as a PNG. It remembers
// the directory of the previous export so repeated exports land next
// to each other.
type exporter struct {
	st      Storage
	lastDir string
}

// export rasterizes the artifact and writes it through the tier the
// storage mode allows. The document is only consulted for naming and
// for a directory hint; exporting never changes its identity.
func (e *exporter) export(doc *Document, art *Artifact, filename string) (string, error) {
	if art == nil || art.Image == nil {
		return "", &ValidationError{Msg: "nothing to export"}
	}
	data, err := rasterizePNG(art.Image)
	if err != nil {
		return "", &IOError{Op: "encode png", Err: err}
	}
	name := resolveFilename(filename, doc.Name(), imageExt, defaultImageName)

	if selectTier(e.st.Mode(), false) == tierDownload {
		written, err := e.st.Download(data, name)
		if err != nil {
			return "", err
		}
		return filepath.Base(written), nil
	}

	h, err := e.st.SavePicker(name, e.startDir(doc))
	if err != nil {
		return "", err
	}
	if err := h.Write(data); err != nil {
		return "", &IOError{Op: "export " + name, Err: err}
	}
	if dir, ok := h.Parent(); ok {
		e.lastDir = dir
	}
	return h.Name(), nil
}

// startDir prefers the document's own directory, then wherever the
// previous export went.
func (e *exporter) startDir(doc *Document) string {
	if h := doc.Handle(); h != nil {
		if dir, ok := h.Parent(); ok {
			return dir
		}
	}
	return e.lastDir
}

// rasterizePNG flattens the image onto an opaque white background and
// encodes it. Viewers that render transparency as black make
// unflattened diagrams unreadable.
func rasterizePNG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
