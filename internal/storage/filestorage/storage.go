package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage is the disk-backed store for uploaded images.
type FileStorage interface {
	SaveBytes(ctx context.Context, data []byte, subPath string) (filePath string, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

type LocalFileStorage struct {
	baseDir string // e.g. "./uploads"
	baseURL string // e.g. "http://localhost:8080/uploads"
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

// SaveBytes writes data under baseDir/subPath and returns the path relative
// to the base directory.
func (s *LocalFileStorage) SaveBytes(ctx context.Context, data []byte, subPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.baseDir, subPath)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return subPath, nil
}

// Delete removes a file from the storage.
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath := filepath.Join(s.baseDir, filePath)
	return os.Remove(fullPath)
}

func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
