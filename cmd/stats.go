package cmd

import (
	"context"
	"fmt"

	"github.com/birdql/birdql/pkg/index"
	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show entry and key counts for each index",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(c.String("config"))
		},
	}
}

func showStats(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	indexes, err := openIndexes(cfg)
	if err != nil {
		return err
	}
	defer indexes.Close()

	stores := []struct {
		name  string
		store *index.Store
	}{
		{"terms", indexes.terms},
		{"dates", indexes.dates},
		{"records", indexes.records},
	}
	for _, s := range stores {
		entries, err := s.store.Len()
		if err != nil {
			return fmt.Errorf("counting %s entries: %w", s.name, err)
		}
		keys, err := s.store.DistinctKeys()
		if err != nil {
			return fmt.Errorf("counting %s keys: %w", s.name, err)
		}
		fmt.Printf("%-8s %8d entries, %8d distinct keys (%s)\n", s.name, entries, keys, s.store.Path())
	}
	return nil
}
