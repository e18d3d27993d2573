package main

import (
	"path/filepath"
	"strings"
)

// Tier is the persistence strategy selected for a save or export.
type Tier int

const (
	// tierOverwrite writes through a retained handle in place.
	tierOverwrite Tier = iota
	// tierPicker asks for a destination and retains the handle.
	tierPicker
	// tierDownload writes a one-shot copy with no handle retained.
	tierDownload
)

func (t Tier) String() string {
	switch t {
	case tierOverwrite:
		return "overwrite"
	case tierPicker:
		return "picker"
	default:
		return "download"
	}
}

// selectTier picks the save strategy from capability and whether a
// handle exists. Fallback mode can only download. Native mode
// overwrites through an existing handle and falls back to the picker
// otherwise.
func selectTier(mode CapMode, hasHandle bool) Tier {
	if mode == capFallback {
		return tierDownload
	}
	if hasHandle {
		return tierOverwrite
	}
	return tierPicker
}

// resolveFilename picks the output name: an explicit user entry wins,
// then the document's logical name with its extension swapped, then
// the default.
func resolveFilename(explicit, logical, ext, fallback string) string {
	if explicit != "" {
		return ensureExt(explicit, ext)
	}
	if logical != "" {
		return stripExt(logical) + ext
	}
	return fallback
}

// ensureExt appends ext only when the name has no extension at all, so
// a deliberate "notes.seq" passes through untouched.
func ensureExt(name, ext string) string {
	if filepath.Ext(name) == "" {
		return name + ext
	}
	return name
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// saveDocument persists text through the tier selected for the current
// capability and document state. It returns the name the payload was
// written under. A save-as adopts the chosen file as the document's
// identity; a download leaves identity untouched.
func saveDocument(st Storage, doc *Document, text, filename string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Msg: "nothing to save"}
	}
	data := []byte(text)
	name := resolveFilename(filename, doc.Name(), textExt, defaultTextName)

	switch selectTier(st.Mode(), doc.Handle() != nil) {
	case tierOverwrite:
		h := doc.Handle()
		if err := h.Write(data); err != nil {
			return "", &IOError{Op: "save " + doc.Name(), Err: err}
		}
		doc.MarkClean()
		return doc.Name(), nil

	case tierPicker:
		h, err := st.SavePicker(name, "")
		if err != nil {
			return "", err
		}
		if err := h.Write(data); err != nil {
			return "", &IOError{Op: "save " + name, Err: err}
		}
		doc.Reset(h.Name(), h)
		return h.Name(), nil

	default:
		written, err := st.Download(data, name)
		if err != nil {
			return "", err
		}
		doc.MarkClean()
		return filepath.Base(written), nil
	}
}

// loadDocument reads the named file and adopts it as the current
// document. The read happens before any state changes, so a failed
// load leaves the document untouched.
func loadDocument(st Storage, doc *Document, filename string) (string, error) {
	if st.Mode() == capNative {
		h, err := st.OpenPicker(filename)
		if err != nil {
			return "", err
		}
		data, err := h.Read()
		if err != nil {
			return "", &IOError{Op: "read " + filename, Err: err}
		}
		doc.Reset(h.Name(), h)
		return string(data), nil
	}

	name, data, err := st.ReadFallback(filename)
	if err != nil {
		return "", err
	}
	doc.Reset(name, nil)
	return string(data), nil
}
