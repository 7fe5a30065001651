package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource opens files on the serving host's filesystem.
//
// With an empty root, paths are opened exactly as given, so absolute and
// ".." paths reach anywhere the process can read. A non-empty root confines
// lookups to that directory.
type LocalSource struct {
	root string
}

func NewLocalSource(root string) (*LocalSource, error) {
	if root == "" {
		return &LocalSource{}, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", abs)
	}
	return &LocalSource{root: abs}, nil
}

// resolvePath maps a requested path to the path opened on disk
func (s *LocalSource) resolvePath(userPath string) (string, error) {
	if s.root == "" {
		return userPath, nil
	}

	cleanPath := filepath.Clean("/" + userPath)
	fullPath := filepath.Join(s.root, cleanPath)

	// Clean("/"+p) cannot climb above "/", so this only trips on symlinked roots
	if !strings.HasPrefix(fullPath, s.root+string(filepath.Separator)) && fullPath != s.root {
		return "", fmt.Errorf("path outside root directory: %s", userPath)
	}
	return fullPath, nil
}

func (s *LocalSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return file, nil
}
