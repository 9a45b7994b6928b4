// Package storage is a directory-backed blob store. Uploaded palm images
// and rendered report PDFs each get their own Store rooted at a directory
// that is also served over a static mount.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	dir   string
	mount string // public URL prefix, e.g. "/uploads"
}

// New creates the backing directory if needed.
func New(dir, mount string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir, mount: strings.TrimRight(mount, "/")}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes r under a collision-resistant name derived from the original
// filename and returns the stored name.
func (s *Store) Save(original string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + sanitizeName(original)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", name, err)
	}
	return name, nil
}

// Write stores b under exactly name, overwriting any previous content.
// Used for report PDFs which are keyed by client code.
func (s *Store) Write(name string, b []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, sanitizeName(name)), b, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// Remove deletes a stored blob. Missing files are not an error, so intake
// cleanup can be retried safely.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, sanitizeName(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", name, err)
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, sanitizeName(name)))
	return err == nil
}

// Path returns the filesystem path for a stored name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, sanitizeName(name))
}

// URL returns the public URL for a stored name.
func (s *Store) URL(name string) string {
	return s.mount + "/" + name
}

// sanitizeName keeps only the base filename and replaces characters that
// are unsafe in paths or URLs. Commas are replaced too: stored names end up
// in lists and older exports joined them on commas.
func sanitizeName(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
