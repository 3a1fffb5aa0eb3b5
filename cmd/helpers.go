package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ziadkadry99/forcetree/internal/config"
	"github.com/ziadkadry99/forcetree/internal/dataset"
	"github.com/ziadkadry99/forcetree/internal/journal"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

// loadConfig reads the config file, applies flag overrides and validates.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDataset loads the configured dataset. Failure is fatal to the command.
func loadDataset(cfg *config.Config) (*tree.Node, error) {
	root, err := dataset.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// pruneJournal drops journal entries older than days before now. Zero days
// keeps everything.
func pruneJournal(ctx context.Context, store *journal.Store, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return store.DeleteBefore(ctx, cutoff)
}

// writeStarterDataset writes a small example tree to path unless a file is
// already there. It reports whether it wrote one.
func writeStarterDataset(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := dataset.Save(path, starterTree()); err != nil {
		return false, err
	}
	return true, nil
}

func starterTree() *tree.Node {
	services := tree.NewBranch("Services",
		tree.NewLeaf("api", 1200),
		tree.NewLeaf("worker", 800),
	)
	services.Top = true
	storage := tree.NewBranch("Storage",
		tree.NewLeaf("primary", 3000),
		tree.NewLeaf("replica", 2600),
	)
	storage.Top = true
	return tree.NewBranch("All", services, storage, tree.NewLeaf("cache", 400))
}
