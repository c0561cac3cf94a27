package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/birdql/birdql/pkg/config"
	"github.com/birdql/birdql/pkg/index"
)

// indexSet bundles the three stores every command operates on.
type indexSet struct {
	terms   *index.Store
	dates   *index.Store
	records *index.Store
}

func (s *indexSet) Close() {
	for _, store := range []*index.Store{s.terms, s.dates, s.records} {
		if store != nil {
			_ = store.Close()
		}
	}
}

// openIndexes opens the terms, dates and records databases under the
// configured storage directory, creating them if missing.
func openIndexes(cfg *config.Config) (*indexSet, error) {
	set := &indexSet{}
	stores := []struct {
		name string
		dst  **index.Store
	}{
		{"terms.db", &set.terms},
		{"dates.db", &set.dates},
		{"records.db", &set.records},
	}
	for _, s := range stores {
		store, err := index.Open(filepath.Join(cfg.StorageDir, s.name))
		if err != nil {
			set.Close()
			return nil, fmt.Errorf("opening %s: %w", s.name, err)
		}
		*s.dst = store
	}
	return set, nil
}

func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
