package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	name     string
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (h *fakeHandle) Name() string { return h.name }

func (h *fakeHandle) Read() ([]byte, error) {
	if h.readErr != nil {
		return nil, h.readErr
	}
	return h.data, nil
}

func (h *fakeHandle) Write(data []byte) error {
	if h.writeErr != nil {
		return h.writeErr
	}
	h.writes++
	h.data = append([]byte(nil), data...)
	return nil
}

func (h *fakeHandle) Parent() (string, bool) { return "", false }

type fakeStorage struct {
	mode       CapMode
	picked     *fakeHandle
	pickedH    Handle
	pickErr    error
	downloads  []string
	downloaded [][]byte
	names      []string
}

func (s *fakeStorage) Mode() CapMode { return s.mode }

func (s *fakeStorage) OpenPicker(name string) (Handle, error) {
	if s.pickErr != nil {
		return nil, s.pickErr
	}
	return s.picked, nil
}

func (s *fakeStorage) SavePicker(name, startDir string) (Handle, error) {
	if s.pickErr != nil {
		return nil, s.pickErr
	}
	if s.pickedH != nil {
		return s.pickedH, nil
	}
	if s.picked == nil {
		s.picked = &fakeHandle{name: name}
	}
	return s.picked, nil
}

func (s *fakeStorage) ReadFallback(name string) (string, []byte, error) {
	if s.pickErr != nil {
		return "", nil, s.pickErr
	}
	return name, s.picked.data, nil
}

func (s *fakeStorage) Download(data []byte, filename string) (string, error) {
	s.downloads = append(s.downloads, filename)
	s.downloaded = append(s.downloaded, data)
	return filename, nil
}

func (s *fakeStorage) ListNames(ext string) []string { return s.names }

func TestSelectTier(t *testing.T) {
	tests := []struct {
		name      string
		mode      CapMode
		hasHandle bool
		want      Tier
	}{
		{"native with handle overwrites", capNative, true, tierOverwrite},
		{"native without handle prompts", capNative, false, tierPicker},
		{"fallback always downloads", capFallback, false, tierDownload},
		{"fallback ignores handle", capFallback, true, tierDownload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectTier(tt.mode, tt.hasHandle))
		})
	}
}

func TestSaveRejectsEmptyText(t *testing.T) {
	st := &fakeStorage{mode: capNative}
	var doc Document
	doc.Reset("a.txt", &fakeHandle{name: "a.txt"})
	doc.MarkDirty()

	_, err := saveDocument(st, &doc, "   \n\t ", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, doc.Dirty(), "failed validation must not touch the dirty flag")
	assert.NotNil(t, doc.Handle())
}

func TestSaveOverwrite(t *testing.T) {
	h := &fakeHandle{name: "a.txt"}
	st := &fakeStorage{mode: capNative}
	var doc Document
	doc.Reset("a.txt", h)
	doc.MarkDirty()

	name, err := saveDocument(st, &doc, "x -> y", "")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", name)
	assert.Equal(t, []byte("x -> y"), h.data)
	assert.False(t, doc.Dirty())
	assert.Same(t, Handle(h), doc.Handle())
}

func TestSaveOverwriteFailureKeepsHandle(t *testing.T) {
	h := &fakeHandle{name: "a.txt", writeErr: errors.New("permission denied")}
	st := &fakeStorage{mode: capNative}
	var doc Document
	doc.Reset("a.txt", h)
	doc.MarkDirty()

	_, err := saveDocument(st, &doc, "x", "")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, doc.Dirty())
	assert.Same(t, Handle(h), doc.Handle(), "a retry should still have the handle")
}

func TestSaveAsAdoptsIdentity(t *testing.T) {
	st := &fakeStorage{mode: capNative}
	var doc Document

	name, err := saveDocument(st, &doc, "x -> y", "flow")
	require.NoError(t, err)
	assert.Equal(t, "flow.txt", name)
	assert.Equal(t, "flow.txt", doc.Name())
	assert.NotNil(t, doc.Handle())
	assert.False(t, doc.Dirty())
}

func TestSavePickerAbortPassesThrough(t *testing.T) {
	st := &fakeStorage{mode: capNative, pickErr: errAborted}
	var doc Document
	doc.Reset("a.txt", nil)
	doc.MarkDirty()

	_, err := saveDocument(st, &doc, "x", "")
	require.ErrorIs(t, err, errAborted)
	assert.True(t, doc.Dirty())
}

func TestSaveDownloadKeepsNoHandle(t *testing.T) {
	st := &fakeStorage{mode: capFallback}
	var doc Document
	doc.Reset("a.txt", nil)
	doc.MarkDirty()

	name, err := saveDocument(st, &doc, "x", "")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", name)
	assert.False(t, doc.Dirty())
	assert.Nil(t, doc.Handle())

	// The next save has no handle to reuse and downloads again.
	doc.MarkDirty()
	_, err = saveDocument(st, &doc, "y", "")
	require.NoError(t, err)
	assert.Len(t, st.downloads, 2)
}

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		logical  string
		want     string
	}{
		{"explicit wins", "other", "doc.txt", "other.txt"},
		{"explicit with extension untouched", "notes.seq", "doc.txt", "notes.seq"},
		{"logical swaps extension", "", "doc.txt", "doc.txt"},
		{"default when nothing known", "", "", defaultTextName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFilename(tt.explicit, tt.logical, textExt, defaultTextName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNativeRetainsHandle(t *testing.T) {
	h := &fakeHandle{name: "flow.txt", data: []byte("a -> b")}
	st := &fakeStorage{mode: capNative, picked: h}
	var doc Document

	text, err := loadDocument(st, &doc, "flow.txt")
	require.NoError(t, err)
	assert.Equal(t, "a -> b", text)
	assert.Equal(t, "flow.txt", doc.Name())
	assert.Same(t, Handle(h), doc.Handle())
	assert.False(t, doc.Dirty())
}

func TestLoadFallbackRetainsNoHandle(t *testing.T) {
	st := &fakeStorage{mode: capFallback, picked: &fakeHandle{data: []byte("a -> b")}}
	var doc Document

	text, err := loadDocument(st, &doc, "flow.txt")
	require.NoError(t, err)
	assert.Equal(t, "a -> b", text)
	assert.Nil(t, doc.Handle(), "fallback loads can never overwrite in place")
}

func TestLoadFailureLeavesDocumentUntouched(t *testing.T) {
	h := &fakeHandle{name: "old.txt"}
	st := &fakeStorage{mode: capNative, pickErr: errors.New("gone")}
	var doc Document
	doc.Reset("old.txt", h)
	doc.MarkDirty()

	_, err := loadDocument(st, &doc, "new.txt")
	require.Error(t, err)
	assert.Equal(t, "old.txt", doc.Name())
	assert.Same(t, Handle(h), doc.Handle())
	assert.True(t, doc.Dirty())
}
