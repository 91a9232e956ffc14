// Package storage keeps uploaded receipt images on an afero filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrInvalidName is returned for names that could escape the receipt directory.
	ErrInvalidName = errors.New("invalid receipt filename")
	// ErrNotExist is returned when no receipt with the name is stored.
	ErrNotExist = errors.New("receipt does not exist")
)

// ReceiptStore reads and writes receipt files under a single directory.
type ReceiptStore struct {
	fs  afero.Fs
	dir string
}

// NewReceiptStore creates the directory if needed and returns a store rooted at it.
func NewReceiptStore(fs afero.Fs, dir string) (*ReceiptStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt directory: %w", err)
	}
	return &ReceiptStore{fs: fs, dir: dir}, nil
}

// NewOsReceiptStore is NewReceiptStore on the host filesystem.
func NewOsReceiptStore(dir string) (*ReceiptStore, error) {
	return NewReceiptStore(afero.NewOsFs(), dir)
}

// Dir returns the directory receipts are stored in.
func (s *ReceiptStore) Dir() string {
	return s.dir
}

// ValidName reports whether name is a bare file name.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return path.Base(name) == name
}

func (s *ReceiptStore) path(name string) (string, error) {
	if !ValidName(name) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes data under name. It refuses to overwrite an existing receipt.
func (s *ReceiptStore) Save(name string, data io.Reader) (int64, error) {
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}
	f, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create receipt %s: %w", name, err)
	}
	n, err := io.Copy(f, data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(p)
		return 0, fmt.Errorf("write receipt %s: %w", name, err)
	}
	return n, nil
}

// Open returns the stored receipt for reading. The caller closes it.
func (s *ReceiptStore) Open(name string) (afero.File, os.FileInfo, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotExist
		}
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotExist
	}
	return f, info, nil
}

// Remove deletes the stored receipt.
func (s *ReceiptStore) Remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	exists, err := afero.Exists(s.fs, p)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotExist
	}
	return s.fs.Remove(p)
}
