package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/birdql/birdql/pkg/corpus"
	"github.com/birdql/birdql/pkg/index"
	"github.com/birdql/birdql/pkg/query"
	"github.com/birdql/birdql/pkg/render"
	"github.com/urfave/cli/v3"
)

// QueryCommand creates the query command
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run a boolean keyword/date query against the indexes",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ids",
				Usage: "Print matching record IDs only",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			q := strings.Join(c.Args().Slice(), " ")
			if q == "" {
				return fmt.Errorf("missing query argument")
			}
			return runQuery(c.String("config"), q, c.Bool("ids"))
		},
	}
}

func runQuery(configPath, q string, idsOnly bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	indexes, err := openIndexes(cfg)
	if err != nil {
		return err
	}
	defer indexes.Close()

	engine := query.NewEngine(query.NewScanner(indexes.terms, indexes.dates))
	ids, err := engine.Query(strings.ToLower(q))
	if err != nil {
		return fmt.Errorf("evaluating query: %w", err)
	}

	if idsOnly {
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}
	return displayResults(indexes.records, ids, cfg.DisplayLimit)
}

// displayResults prints the matched records followed by the count footer,
// capped at the configured display limit.
func displayResults(records *index.Store, ids []string, limit int) error {
	codec, err := corpus.NewCodec()
	if err != nil {
		return err
	}

	shown := 0
	for _, id := range ids {
		if limit > 0 && shown >= limit {
			break
		}
		payload, err := records.Get([]byte(id))
		if errors.Is(err, index.ErrNotFound) {
			// Index entries can outlive their record if a rebuild was
			// interrupted; skip rather than abort the whole result.
			continue
		}
		if err != nil {
			return fmt.Errorf("loading record %s: %w", id, err)
		}

		record, err := codec.Decode(payload)
		if err != nil {
			return fmt.Errorf("decoding record %s: %w", id, err)
		}
		fmt.Println(render.Record(record))
		shown++
	}

	if limit > 0 && len(ids) > shown {
		fmt.Printf("(showing %d of %d)\n", shown, len(ids))
	}
	fmt.Println(render.Footer(len(ids)))
	return nil
}
