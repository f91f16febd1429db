package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir implements Store on a local directory.
type Dir struct {
	basePath string
}

// NewDir creates a directory-backed store, creating the directory if
// needed.
func NewDir(basePath string) (*Dir, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &Dir{basePath: basePath}, nil
}

func (d *Dir) fullPath(name string) string {
	return filepath.Join(d.basePath, name)
}

func (d *Dir) Write(ctx context.Context, name string, data []byte) error {
	path := d.fullPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (d *Dir) Read(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(d.fullPath(name))
}

func (d *Dir) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.Walk(d.fullPath(prefix), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(d.basePath, path)
			names = append(names, rel)
		}
		return nil
	})

	if os.IsNotExist(err) {
		return []string{}, nil
	}
	return names, err
}

func (d *Dir) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(d.fullPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
