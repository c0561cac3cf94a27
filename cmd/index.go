package cmd

import (
	"context"
	"fmt"

	"github.com/birdql/birdql/pkg/corpus"
	"github.com/urfave/cli/v3"
)

// IndexCommand creates the index command
func IndexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Build the indexes from a JSON Lines file of tweet records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Usage:    "Path to the JSON Lines input file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return indexData(c.String("config"), c.String("input"))
		},
	}
}

func indexData(configPath, inputPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	indexes, err := openIndexes(cfg)
	if err != nil {
		return err
	}
	defer indexes.Close()

	builder, err := corpus.NewBuilder(indexes.terms, indexes.dates, indexes.records)
	if err != nil {
		return fmt.Errorf("creating index builder: %w", err)
	}

	count, err := builder.IndexFile(inputPath)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", inputPath, err)
	}

	fmt.Printf("Indexed %d records into %s\n", count, cfg.StorageDir)
	return nil
}
