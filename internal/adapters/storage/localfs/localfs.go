package localfs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps uploaded files under a root directory and returns paths
// relative to it, suitable for serving under /uploads/.
type Storage struct{ root string }

func New(root string) *Storage {
	_ = os.MkdirAll(root, 0o755)
	return &Storage{root: root}
}

func (s *Storage) Save(folder, filename string, data []byte) (string, error) {
	rel := filepath.Join(strings.TrimPrefix(folder, "/"), filename)
	full := filepath.Join(s.root, rel)
	if !strings.HasPrefix(filepath.Clean(full), filepath.Clean(s.root)) {
		return "", errors.New("path escapes storage root")
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (s *Storage) Remove(path string) error {
	rel := strings.TrimPrefix(path, "/uploads/")
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if !strings.HasPrefix(filepath.Clean(full), filepath.Clean(s.root)) {
		return errors.New("path escapes storage root")
	}
	err := os.Remove(full)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
