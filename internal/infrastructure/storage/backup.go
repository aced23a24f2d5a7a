// Package storage persists PNG backups of rendered labels on the
// local file system. Every print keeps its backup, including failed
// jobs, so operators can inspect what was sent to the printer.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/techlabel/backend/internal/infrastructure/render"
)

// BackupStore saves and retrieves label raster backups
type BackupStore interface {
	// Store encodes the raster as PNG under the given file name and
	// returns the stored path
	Store(ctx context.Context, img *render.Raster, fileName string) (*StoreResult, error)
	// Get opens a stored backup by its relative path
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a stored backup
	Delete(ctx context.Context, path string) error
	// CleanupOlderThan removes backups older than the given age and
	// returns how many were deleted
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// StoreResult describes a stored backup
type StoreResult struct {
	// Path is the file path relative to the storage base
	Path string
	// Size is the encoded file size in bytes
	Size int64
}

// StorageError represents a backup storage failure
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *StorageError) Unwrap() error { return e.Cause }

func newStorageError(message string, cause error) *StorageError {
	return &StorageError{Message: message, Cause: cause}
}

// FileSystemStoreConfig contains configuration for the backup store
type FileSystemStoreConfig struct {
	// BasePath is the directory backups are written to.
	// Default: /data/backups
	BasePath string
	// Logger for operations
	Logger *zap.Logger
}

// FileSystemStore writes PNG backups to the local file system
type FileSystemStore struct {
	basePath string
	logger   *zap.Logger
}

// NewFileSystemStore creates the backup directory and returns a store
func NewFileSystemStore(config *FileSystemStoreConfig) (*FileSystemStore, error) {
	if config == nil {
		config = &FileSystemStoreConfig{}
	}
	basePath := config.BasePath
	if basePath == "" {
		basePath = "/data/backups"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, newStorageError(
			fmt.Sprintf("failed to create backup directory: %s", basePath), err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemStore{basePath: basePath, logger: logger}, nil
}

// Store encodes the raster as PNG and writes it under fileName
func (s *FileSystemStore) Store(ctx context.Context, img *render.Raster, fileName string) (*StoreResult, error) {
	select {
	case <-ctx.Done():
		return nil, newStorageError("operation cancelled", ctx.Err())
	default:
	}

	if img == nil {
		return nil, newStorageError("raster is nil", nil)
	}
	if fileName == "" {
		return nil, newStorageError("file name is required", nil)
	}
	if fileName != filepath.Base(fileName) {
		return nil, newStorageError("invalid file name", nil)
	}

	fullPath := filepath.Join(s.basePath, fileName)
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, newStorageError("failed to create backup file", err)
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		os.Remove(fullPath)
		return nil, newStorageError("failed to encode backup", err)
	}
	if err := f.Close(); err != nil {
		return nil, newStorageError("failed to close backup file", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, newStorageError("failed to stat backup file", err)
	}

	s.logger.Info("backup stored",
		zap.String("path", fullPath),
		zap.Int64("size", info.Size()))

	return &StoreResult{Path: fileName, Size: info.Size()}, nil
}

// Get opens a stored backup
func (s *FileSystemStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, newStorageError("operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newStorageError("backup not found", err)
		}
		return nil, newStorageError("failed to open backup", err)
	}
	return f, nil
}

// Delete removes a stored backup. A missing file is not an error.
func (s *FileSystemStore) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return newStorageError("operation cancelled", ctx.Err())
	default:
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return newStorageError("failed to delete backup", err)
	}
	return nil
}

// CleanupOlderThan removes backups whose modification time is older
// than the given age
func (s *FileSystemStore) CleanupOlderThan(ctx context.Context, age time.Duration) (int, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return 0, newStorageError("failed to read backup directory", err)
	}

	cutoff := time.Now().Add(-age)
	deleted := 0
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return deleted, newStorageError("operation cancelled", ctx.Err())
		default:
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.basePath, entry.Name())); err != nil {
			s.logger.Warn("failed to remove old backup",
				zap.String("name", entry.Name()),
				zap.Error(err))
			continue
		}
		deleted++
	}

	if deleted > 0 {
		s.logger.Info("old backups removed", zap.Int("count", deleted))
	}
	return deleted, nil
}

// resolve sanitizes a relative path and anchors it under the base
// directory, rejecting traversal attempts.
func (s *FileSystemStore) resolve(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	if filepath.IsAbs(cleanPath) || strings.Contains(path, "..") {
		s.logger.Warn("blocked potentially malicious path", zap.String("path", path))
		return "", newStorageError("invalid path", nil)
	}

	fullPath := filepath.Join(s.basePath, cleanPath)
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", newStorageError("failed to resolve base path", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", newStorageError("failed to resolve file path", err)
	}
	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		s.logger.Warn("path escape attempt blocked",
			zap.String("path", path),
			zap.String("absPath", absPath))
		return "", newStorageError("invalid path", nil)
	}
	return fullPath, nil
}
