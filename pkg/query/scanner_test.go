package query

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/birdql/birdql/pkg/corpus"
	"github.com/birdql/birdql/pkg/index"
)

var testRecords = []corpus.Record{
	{ID: "r1", Name: "Alice", Location: "Edmonton", Text: "go rocks", CreatedAt: "2020/01/01"},
	{ID: "r2", Name: "alice", Location: "Toronto", Text: "coffee time", CreatedAt: "2020/02/01"},
	{ID: "r3", Name: "Bob", Location: "Edmonton", Text: "bob likes coffee", CreatedAt: "2020/01/01"},
	{ID: "r4", Name: "Carola", Location: "Montreal", Text: "tea over coffee", CreatedAt: "2019/12/31"},
	{ID: "r5", Name: "dave_77", Location: "Edmonton north", Text: "Go go GO", CreatedAt: "2020/02/01"},
}

func buildTestEngine(t *testing.T, records []corpus.Record) *Engine {
	t.Helper()
	dir := t.TempDir()

	open := func(name string) *index.Store {
		store, err := index.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		t.Cleanup(func() {
			_ = store.Close()
		})
		return store
	}
	terms := open("terms.db")
	dates := open("dates.db")
	recs := open("records.db")

	builder, err := corpus.NewBuilder(terms, dates, recs)
	if err != nil {
		t.Fatalf("creating builder: %v", err)
	}
	for _, r := range records {
		if err := builder.Add(r); err != nil {
			t.Fatalf("adding record %s: %v", r.ID, err)
		}
	}
	if err := builder.Flush(); err != nil {
		t.Fatalf("flushing builder: %v", err)
	}

	return NewEngine(NewScanner(terms, dates))
}

func assertIDs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestQueryScenarios(t *testing.T) {
	engine := buildTestEngine(t, testRecords)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name exact with date range", "name:alice date>2020/01/01", []string{"r2"}},
		{"name wildcard", "name:al%", []string{"r1", "r2"}},
		{"name exact with date exact", "name:alice date:2020/01/01", []string{"r1"}},
		{"unqualified term", "bob", []string{"r3"}},
		{"unqualified matches across fields", "edmonton", []string{"r1", "r3", "r5"}},
		{"no match", "name:carol", []string{}},
		{"date exact", "date:2020/01/01", []string{"r1", "r3"}},
		{"date before excludes boundary", "date<2020/01/01", []string{"r4"}},
		{"date after excludes boundary", "date>2020/01/01", []string{"r2", "r5"}},
		{"location exact", "location:edmonton", []string{"r1", "r3", "r5"}},
		{"text exact", "text:coffee", []string{"r2", "r3", "r4"}},
		{"conjunction across fields", "text:coffee location:edmonton", []string{"r3"}},
		{"underscore token", "name:dave_77", []string{"r5"}},
		{"unknown prefix degrades to literal and misses", "author:alice", []string{}},
		{"empty query", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := engine.Query(tt.query)
			if err != nil {
				t.Fatalf("query %q: %v", tt.query, err)
			}
			assertIDs(t, ids, tt.want...)
		})
	}
}

func TestWildcardSupersetOfExact(t *testing.T) {
	engine := buildTestEngine(t, testRecords)

	for _, body := range []string{"alice", "bob", "edmonton", "coffee", "go"} {
		exact, err := engine.Query(body)
		if err != nil {
			t.Fatalf("exact query %q: %v", body, err)
		}
		wildcard, err := engine.Query(body + "%")
		if err != nil {
			t.Fatalf("wildcard query %q: %v", body, err)
		}

		members := make(map[string]bool, len(wildcard))
		for _, id := range wildcard {
			members[id] = true
		}
		for _, id := range exact {
			if !members[id] {
				t.Fatalf("exact result %s for %q missing from wildcard result %v", id, body, wildcard)
			}
		}
	}
}

func TestQueryIdempotent(t *testing.T) {
	engine := buildTestEngine(t, testRecords)

	const q = "text:co% date<2020/03/01"
	first, err := engine.Query(q)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.Query(q)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	assertIDs(t, second, first...)
}

// matchesClause is an intentionally naive per-record filter used to
// cross-check the cursor-based scanner.
func matchesClause(r corpus.Record, c Clause) bool {
	matchField := func(value string) bool {
		for _, tok := range corpus.Tokenize(value) {
			if c.Wildcard && strings.HasPrefix(tok, c.Body) {
				return true
			}
			if !c.Wildcard && tok == c.Body {
				return true
			}
		}
		return false
	}

	if c.Field == FieldDate {
		key, err := r.DateKey()
		if err != nil {
			return false
		}
		switch c.Comp {
		case LessThan:
			return key < c.Body
		case GreaterThan:
			return key > c.Body
		default:
			return key == c.Body
		}
	}

	switch c.Field {
	case FieldName:
		return matchField(r.Name)
	case FieldLocation:
		return matchField(r.Location)
	case FieldText:
		return matchField(r.Text)
	default:
		return matchField(r.Name) || matchField(r.Location) || matchField(r.Text)
	}
}

func TestEngineMatchesBruteForce(t *testing.T) {
	engine := buildTestEngine(t, testRecords)

	queries := []string{
		"go",
		"go%",
		"name:alice",
		"name:a%",
		"location:edmonton text:coffee",
		"date>2019/12/31",
		"date<2020/02/01 coffee",
		"date:2020/02/01 name:al%",
		"text:go date>2020/01/01",
		"edmonton date:2020/01/01 name:bob",
		"author:alice",
		"name:",
		"name:%",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got, err := engine.Query(q)
			if err != nil {
				t.Fatalf("query %q: %v", q, err)
			}

			clauses := Parse(q)
			var want []string
			for _, r := range testRecords {
				all := true
				for _, c := range clauses {
					if !matchesClause(r, c) {
						all = false
						break
					}
				}
				if all && len(clauses) > 0 {
					want = append(want, r.ID)
				}
			}

			assertIDs(t, got, want...)
		})
	}
}
