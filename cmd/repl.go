package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/birdql/birdql/pkg/log"
	"github.com/birdql/birdql/pkg/query"
	"github.com/urfave/cli/v3"
)

// ReplCommand creates the repl command
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactively query the indexes",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runRepl(c.String("config"))
		},
	}
}

func runRepl(configPath string) error {
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
	logger := log.ForComponent("repl")

	fmt.Println("Enter a query, or \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("query> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		ids, err := engine.Query(line)
		if err != nil {
			logger.Errorf("query failed: %v", err)
			continue
		}
		if err := displayResults(indexes.records, ids, cfg.DisplayLimit); err != nil {
			logger.Errorf("displaying results: %v", err)
		}
	}
	return scanner.Err()
}
