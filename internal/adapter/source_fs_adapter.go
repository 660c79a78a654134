// Package adapter contains the infrastructure the repair pipeline relies on:
// file system access, Go parsing and printing, diffs and persistence.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/gorald/internal/model"
)

// SourceFSAdapter abstracts file system operations so the pipeline can be
// tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps pipeline logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadDir lists the entries of a directory sorted by name.
	ReadDir(dir m.Path) ([]os.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the hex SHA-256 of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindVCSRoot searches for a .git entry walking up from start.
	FindVCSRoot(start m.Path) (m.Path, error)

	// MkdirAll creates a directory and its parents.
	MkdirAll(path m.Path) error

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// CopyFile copies one file, creating the parent directories of dst.
	CopyFile(src, dst m.Path) error

	// WriteFile writes content to path, creating parent directories.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// ErrNoVCSRoot is returned by FindVCSRoot when no repository encloses the path.
var ErrNoVCSRoot = errors.New("no enclosing git repository")

// LocalSourceFSAdapter implements SourceFSAdapter on the local file system.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadDir lists dir sorted by file name.
func (a *LocalSourceFSAdapter) ReadDir(dir m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(dir))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindVCSRoot walks up from start until a directory holding .git is found.
func (a *LocalSourceFSAdapter) FindVCSRoot(start m.Path) (m.Path, error) {
	dir, err := filepath.Abs(string(start))
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", start, ErrNoVCSRoot)
		}

		dir = parent
	}
}

// MkdirAll creates path with all missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// CopyFile copies a single file, keeping its mode.
func (a *LocalSourceFSAdapter) CopyFile(src, dst m.Path) error {
	// #nosec G304 - src comes from the scanned source tree
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is below the run's output directory
	destFile, err := os.OpenFile(string(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	return destFile.Close()
}

// WriteFile writes content to a file, creating its parent directories.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
