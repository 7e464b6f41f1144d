package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrSinkWrite wraps every failure to write to a destination.
var ErrSinkWrite = errors.New("destination not writable")

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func ensureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := ensureDir(filePath); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}
	return nil
}

// SaveLines writes each line followed by a newline.
func (s *Storage) SaveLines(filePath string, lines []string) error {
	if err := ensureDir(filePath); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, filePath, err)
	}
	return nil
}

// HasFile reports whether fn exists.
func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// GetFileStats returns the size and modification time of a written file.
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
