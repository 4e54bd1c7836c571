// Package media manages proof files staged for upload. A staged file
// is copied into the staging directory so the source can move or
// disappear before submission; the copy must be released when replaced,
// when the run advances to the next level, and on controller teardown,
// or stale staging copies pile up across a long session.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Staged is one proof file awaiting upload.
type Staged struct {
	// SourcePath is the file the user selected.
	SourcePath string
	// Path is the staging copy handed to the uploader.
	Path string

	released bool
}

// Stager copies selected files into a staging directory.
type Stager struct {
	dir string
}

// NewStager creates a stager rooted at dir.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Stage copies sourcePath into the staging directory.
func (s *Stager) Stage(sourcePath string) (*Staged, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("open proof file: %w", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(sourcePath)
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("create staging copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("copy proof file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return nil, err
	}

	return &Staged{SourcePath: sourcePath, Path: dstPath}, nil
}

// Release removes the staging copy. Safe to call more than once.
func (st *Staged) Release() {
	if st == nil || st.released {
		return
	}
	st.released = true
	_ = os.Remove(st.Path)
}

// Sweep removes leftover staging copies from previous sessions.
func (s *Stager) Sweep() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, entry.Name()))
	}
	return nil
}
