// Package cache maps logical item names to stable on-disk paths. Image
// handles that need format normalization register the artifact name here and
// decide from the returned path's existence whether the conversion already
// ran.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Dir is a cache manager rooted at a single directory. RegisterItem is a
// pure name-to-path mapping: it never creates or touches the item itself.
//
// Dir is safe for concurrent use.
type Dir struct {
	mu    sync.Mutex
	root  string
	items map[string]string
}

// NewDir creates the cache directory if needed and returns a manager for it.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Dir{root: root, items: make(map[string]string)}, nil
}

// RegisterItem returns the stable path assigned to name. The same name
// always maps to the same path for the manager's lifetime.
func (d *Dir) RegisterItem(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid cache item name %q", name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.items[name]; ok {
		return p, nil
	}
	p := filepath.Join(d.root, name)
	d.items[name] = p
	return p, nil
}

// Root returns the cache directory.
func (d *Dir) Root() string { return d.root }
