package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCapability(t *testing.T) {
	t.Run("writable dir is native", func(t *testing.T) {
		t.Setenv("DIATERM_DOWNLOAD_ONLY", "")
		assert.Equal(t, capNative, detectCapability(t.TempDir()))
	})

	t.Run("env override forces fallback", func(t *testing.T) {
		t.Setenv("DIATERM_DOWNLOAD_ONLY", "1")
		assert.Equal(t, capFallback, detectCapability(t.TempDir()))
	})

	t.Run("unwritable dir is fallback", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}
		t.Setenv("DIATERM_DOWNLOAD_ONLY", "")
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { os.Chmod(dir, 0755) })
		assert.Equal(t, capFallback, detectCapability(dir))
	})
}

func TestFileHandleRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := &fileHandle{path: filepath.Join(dir, "flow.txt")}

	require.NoError(t, h.Write([]byte("a -> b")))
	data, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, "a -> b", string(data))
	assert.Equal(t, "flow.txt", h.Name())

	parent, ok := h.Parent()
	require.True(t, ok)
	assert.Equal(t, dir, parent)
}

func TestStoragePickers(t *testing.T) {
	dir := t.TempDir()
	st := newFSStorage(capNative, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flow.txt"), []byte("x"), 0644))

	h, err := st.OpenPicker("flow.txt")
	require.NoError(t, err)
	data, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	_, err = st.OpenPicker("missing.txt")
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)

	h, err = st.SavePicker("new.txt", "")
	require.NoError(t, err)
	require.NoError(t, h.Write([]byte("y")))
	assert.FileExists(t, filepath.Join(dir, "new.txt"))
}

func TestStoragePickersRejectFallbackMode(t *testing.T) {
	st := newFSStorage(capFallback, t.TempDir())

	_, err := st.OpenPicker("flow.txt")
	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)

	_, err = st.SavePicker("flow.txt", "")
	require.ErrorAs(t, err, &capErr)
}

func TestDownloadAvoidsClobbering(t *testing.T) {
	dir := t.TempDir()
	st := newFSStorage(capFallback, dir)
	st.downloadDir = dir

	first, err := st.Download([]byte("one"), "diagram.txt")
	require.NoError(t, err)
	second, err := st.Download([]byte("two"), "diagram.txt")
	require.NoError(t, err)
	third, err := st.Download([]byte("three"), "diagram.txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "diagram.txt"), first)
	assert.Equal(t, filepath.Join(dir, "diagram (1).txt"), second)
	assert.Equal(t, filepath.Join(dir, "diagram (2).txt"), third)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data), "later downloads must not overwrite earlier ones")
}

func TestListNames(t *testing.T) {
	dir := t.TempDir()
	st := newFSStorage(capNative, dir)
	for _, name := range []string{"b.txt", "a.txt", "image.png", "c.TXT"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0755))

	assert.Equal(t, []string{"a.txt", "b.txt", "c.TXT"}, st.ListNames(".txt"))
}
