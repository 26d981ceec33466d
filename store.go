package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists whole Child aggregates, one document per child.
type Store interface {
	Save(child *Child) error
	// Load returns nil, nil when no document exists for id.
	Load(id string) (*Child, error)
	// LoadAll skips documents that cannot be read or decoded.
	LoadAll() ([]*Child, error)
	Delete(id string) (bool, error)
	Close() error
}

const (
	documentPrefix = "baby_"
	documentSuffix = ".json"
)

// FileStore keeps each child in <dir>/baby_<id>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) documentPath(id string) string {
	return filepath.Join(s.dir, documentPrefix+id+documentSuffix)
}

func (s *FileStore) Save(child *Child) error {
	data, err := encodeChild(child)
	if err != nil {
		return fmt.Errorf("encode child %s: %w", child.ID, err)
	}
	if err := writeFileAtomic(s.documentPath(child.ID), data, 0o644); err != nil {
		return fmt.Errorf("write child %s: %w", child.ID, err)
	}
	return nil
}

func (s *FileStore) Load(id string) (*Child, error) {
	data, err := os.ReadFile(s.documentPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read child %s: %w", id, err)
	}

	child, err := decodeChild(data)
	if err != nil {
		return nil, fmt.Errorf("decode child %s: %w", id, err)
	}
	return child, nil
}

func (s *FileStore) LoadAll() ([]*Child, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var children []*Child
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, documentPrefix) || !strings.HasSuffix(name, documentSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, documentPrefix), documentSuffix)

		child, err := s.Load(id)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", name, err)
			continue
		}
		if child != nil {
			children = append(children, child)
		}
	}

	sortChildren(children)
	return children, nil
}

func (s *FileStore) Delete(id string) (bool, error) {
	err := os.Remove(s.documentPath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete child %s: %w", id, err)
	}
	return true, nil
}

func (s *FileStore) Close() error {
	return nil
}

func sortChildren(children []*Child) {
	sort.SliceStable(children, func(i, j int) bool {
		if children[i].Name != children[j].Name {
			return children[i].Name < children[j].Name
		}
		return children[i].ID < children[j].ID
	})
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
