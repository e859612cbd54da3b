// Package assets resolves asset paths against a configured root and decodes
// image files into RGBA pixel buffers ready for upload.
package assets

import (
	"fmt"
	"path/filepath"
)

// Resolver maps asset-relative paths to filesystem paths.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at root. An empty root leaves paths
// untouched.
func NewResolver(root string) (*Resolver, error) {
	r := &Resolver{}
	if err := r.SetRoot(root); err != nil {
		return nil, err
	}
	return r, nil
}

// SetRoot stores root as an absolute path.
func (r *Resolver) SetRoot(root string) error {
	if root == "" {
		r.root = ""
		return nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve asset root %q: %w", root, err)
	}
	r.root = abs
	return nil
}

func (r *Resolver) Root() string { return r.root }

// Resolve joins a relative path onto the root. Absolute paths and paths
// resolved without a root are returned as given.
func (r *Resolver) Resolve(path string) string {
	if r.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.root, path)
}
