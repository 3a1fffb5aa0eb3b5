// Package dataset loads the hierarchical input document from disk and
// watches it for changes.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// DefaultPath is where the dataset is read from when none is configured.
const DefaultPath = "src/data/graph.json"

// ErrEmptyPath is returned when no dataset path is configured.
var ErrEmptyPath = errors.New("dataset path is empty")

// Load reads and validates the tree document at path. Any error is fatal to
// the caller's session; there is no partial load.
func Load(path string) (*tree.Node, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	root, err := tree.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return root, nil
}

// Save writes root back to path as a tree document, creating parent
// directories as needed.
func Save(path string, root *tree.Node) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset: %w", err)
	}
	if err := tree.Encode(f, root); err != nil {
		f.Close()
		return fmt.Errorf("writing dataset: %w", err)
	}
	return f.Close()
}
