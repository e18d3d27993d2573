package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CapMode is the storage capability probed once at startup.
type CapMode int

const (
	capNative CapMode = iota
	capFallback
)

func (m CapMode) String() string {
	if m == capFallback {
		return "download-only"
	}
	return "native"
}

// detectCapability decides whether the working directory supports
// in-place file access. DIATERM_DOWNLOAD_ONLY=1 forces the fallback,
// as does a directory we cannot write to.
func detectCapability(dir string) CapMode {
	if os.Getenv("DIATERM_DOWNLOAD_ONLY") == "1" {
		return capFallback
	}
	f, err := os.CreateTemp(dir, ".diaterm-probe-*")
	if err != nil {
		log.Printf("capability probe failed in %s: %v", dir, err)
		return capFallback
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return capNative
}

// Handle is a retained reference to a previously opened or saved file.
// Only native-mode storage ever produces one.
type Handle interface {
	Name() string
	Read() ([]byte, error)
	Write(data []byte) error
	// Parent reports the directory holding the file, when known.
	Parent() (string, bool)
}

// Storage is the boundary between persistence logic and the host
// filesystem.
type Storage interface {
	Mode() CapMode
	// OpenPicker resolves a user-chosen name to a readable handle.
	OpenPicker(name string) (Handle, error)
	// SavePicker resolves a user-chosen name to a writable handle,
	// preferring startDir when it is non-empty.
	SavePicker(name, startDir string) (Handle, error)
	// ReadFallback reads a named file without retaining a handle.
	ReadFallback(name string) (string, []byte, error)
	// Download writes data as a one-shot file that keeps no handle.
	// Returns the path actually written, which may carry a collision
	// suffix.
	Download(data []byte, filename string) (string, error)
	// ListNames reports files in the working directory with the given
	// extension, sorted.
	ListNames(ext string) []string
}

type fileHandle struct {
	path string
}

func (h *fileHandle) Name() string {
	return filepath.Base(h.path)
}

func (h *fileHandle) Path() string {
	return h.path
}

func (h *fileHandle) Read() ([]byte, error) {
	return os.ReadFile(h.path)
}

func (h *fileHandle) Write(data []byte) error {
	return os.WriteFile(h.path, data, 0644)
}

func (h *fileHandle) Parent() (string, bool) {
	dir := filepath.Dir(h.path)
	if dir == "" || dir == "." {
		return "", false
	}
	return dir, true
}

type fsStorage struct {
	mode        CapMode
	baseDir     string
	downloadDir string
}

func newFSStorage(mode CapMode, baseDir string) *fsStorage {
	return &fsStorage{
		mode:        mode,
		baseDir:     baseDir,
		downloadDir: downloadsDir(),
	}
}

func (s *fsStorage) Mode() CapMode {
	return s.mode
}

func (s *fsStorage) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

func (s *fsStorage) OpenPicker(name string) (Handle, error) {
	if s.mode != capNative {
		return nil, &CapabilityError{Tier: tierPicker}
	}
	path := s.resolve(name)
	if _, err := os.Stat(path); err != nil {
		return nil, &IOError{Op: "open " + name, Err: err}
	}
	return &fileHandle{path: path}, nil
}

func (s *fsStorage) SavePicker(name, startDir string) (Handle, error) {
	if s.mode != capNative {
		return nil, &CapabilityError{Tier: tierPicker}
	}
	dir := startDir
	if dir == "" {
		dir = s.baseDir
	}
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}
	return &fileHandle{path: path}, nil
}

func (s *fsStorage) ReadFallback(name string) (string, []byte, error) {
	path := s.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &IOError{Op: "read " + name, Err: err}
	}
	return filepath.Base(path), data, nil
}

func (s *fsStorage) Download(data []byte, filename string) (string, error) {
	path := uniquePath(filepath.Join(s.downloadDir, filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &IOError{Op: "download " + filename, Err: err}
	}
	return path, nil
}

func (s *fsStorage) ListNames(ext string) []string {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		log.Printf("list %s: %v", s.baseDir, err)
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// downloadsDir picks the target for one-shot saves: ~/Downloads when it
// exists, else the home directory, else the working directory.
func downloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dl := filepath.Join(home, "Downloads")
	if info, err := os.Stat(dl); err == nil && info.IsDir() {
		return dl
	}
	return home
}

// uniquePath suffixes the stem with " (1)", " (2)" and so on until the
// path does not exist, matching how browsers avoid clobbering
// downloads.
func uniquePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, i, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
