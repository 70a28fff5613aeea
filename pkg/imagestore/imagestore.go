// Package imagestore turns uploaded images into the base64 form stored on
// user records and cleans up images that live on disk.
package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var ErrFileTooLarge = errors.New("file too large")

type Store struct {
	maxFileSize int64
	dir         string
	log         *zap.Logger
}

// New returns a Store accepting files up to maxFileSize bytes. dir is the
// directory images on disk are kept under; Delete never leaves it.
func New(maxFileSize int64, dir string, log *zap.Logger) *Store {
	return &Store{
		maxFileSize: maxFileSize,
		dir:         dir,
		log:         log.With(zap.String("component", "imagestore")),
	}
}

func (s *Store) MaxFileSize() int64 {
	return s.maxFileSize
}

func (s *Store) Validate(file *multipart.FileHeader) error {
	if file.Size > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, file.Size, s.maxFileSize)
	}
	return nil
}

// Encode reads the upload and returns its standard base64 encoding.
func (s *Store) Encode(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", file.Filename, err)
	}
	defer f.Close()

	// the header size is client supplied, so cap the read as well
	data, err := io.ReadAll(io.LimitReader(f, s.maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", file.Filename, err)
	}
	if int64(len(data)) > s.maxFileSize {
		return "", fmt.Errorf("%w: %s", ErrFileTooLarge, file.Filename)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

// Delete removes a stored image from disk. Inline base64 images have
// nothing to remove. Failures are logged, never returned.
func (s *Store) Delete(stored string) {
	path, ok := s.diskPath(stored)
	if !ok {
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to delete image", zap.String("path", path), zap.Error(err))
		return
	}
	s.log.Debug("Image deleted", zap.String("path", path))
}

// diskPath resolves stored to a file inside s.dir, or reports false when
// stored is empty, inline data or points outside the directory.
func (s *Store) diskPath(stored string) (string, bool) {
	if stored == "" || s.dir == "" || !looksLikePath(stored) {
		return "", false
	}

	base, err := filepath.Abs(s.dir)
	if err != nil {
		return "", false
	}

	path := stored
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, filepath.Base(stored))
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return path, true
}

// looksLikePath tells a file name apart from base64 data: base64 has no
// dot, and image file names always carry an extension.
func looksLikePath(stored string) bool {
	return strings.Contains(filepath.Base(stored), ".")
}
