package query

import (
	"fmt"

	"github.com/birdql/birdql/pkg/log"
)

// ClauseScanner resolves one clause to its set of matching record IDs.
// It is an interface so tests can count or stub store lookups.
type ClauseScanner interface {
	Scan(c Clause) (MatchSet, error)
}

// Engine evaluates parsed queries: clauses run in rank order, their match
// sets are intersected, and evaluation stops the moment the running result
// is empty. The running result only ever shrinks.
type Engine struct {
	scanner ClauseScanner
	logger  *log.Logger
}

func NewEngine(scanner ClauseScanner) *Engine {
	return &Engine{
		scanner: scanner,
		logger:  log.ForComponent("query"),
	}
}

// Query parses and evaluates a query string.
func (e *Engine) Query(q string) ([]string, error) {
	return e.Evaluate(Parse(q))
}

// Evaluate runs the clauses and returns the matching record IDs in
// ascending order. An empty clause list returns an empty result without
// touching the stores.
func (e *Engine) Evaluate(clauses ClauseList) ([]string, error) {
	var result MatchSet // nil until the first clause lands

	for _, clause := range clauses {
		matches, err := e.scanner.Scan(clause)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s clause %q: %w", clause.Field, clause.Body, err)
		}
		e.logger.Debugf("%s clause %q matched %d records", clause.Field, clause.Body, len(matches))

		if len(matches) == 0 {
			return []string{}, nil
		}
		if result == nil {
			result = matches
			continue
		}
		result = result.Intersect(matches)
		if len(result) == 0 {
			return []string{}, nil
		}
	}

	if result == nil {
		return []string{}, nil
	}
	return result.SortedIDs(), nil
}
