package query

import (
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		field    Field
		comp     Comparator
		body     string
		wildcard bool
		rank     int
	}{
		{
			name:  "bare term",
			token: "golang",
			field: FieldNone, comp: Equals, body: "golang", rank: 5,
		},
		{
			name:  "bare wildcard term",
			token: "gol%",
			field: FieldNone, comp: Equals, body: "gol", wildcard: true, rank: 10,
		},
		{
			name:  "name exact",
			token: "name:alice",
			field: FieldName, comp: Equals, body: "alice", rank: 1,
		},
		{
			name:  "location exact",
			token: "location:tokyo",
			field: FieldLocation, comp: Equals, body: "tokyo", rank: 2,
		},
		{
			name:  "text exact",
			token: "text:coffee",
			field: FieldText, comp: Equals, body: "coffee", rank: 3,
		},
		{
			name:  "name wildcard",
			token: "name:al%",
			field: FieldName, comp: Equals, body: "al", wildcard: true, rank: 6,
		},
		{
			name:  "location wildcard",
			token: "location:to%",
			field: FieldLocation, comp: Equals, body: "to", wildcard: true, rank: 7,
		},
		{
			name:  "text wildcard",
			token: "text:cof%",
			field: FieldText, comp: Equals, body: "cof", wildcard: true, rank: 8,
		},
		{
			name:  "date exact",
			token: "date:2020/01/01",
			field: FieldDate, comp: Equals, body: "2020/01/01", rank: 4,
		},
		{
			name:  "date less than",
			token: "date<2020/01/01",
			field: FieldDate, comp: LessThan, body: "2020/01/01", rank: 9,
		},
		{
			name:  "date greater than",
			token: "date>2020/01/01",
			field: FieldDate, comp: GreaterThan, body: "2020/01/01", rank: 9,
		},
		{
			name:  "unknown prefix falls back to literal",
			token: "author:alice",
			field: FieldNone, comp: Equals, body: "author:alice", rank: 5,
		},
		{
			name:  "non-date field with range separator falls back",
			token: "name<alice",
			field: FieldNone, comp: Equals, body: "name<alice", rank: 5,
		},
		{
			name:     "fallback still honors trailing wildcard",
			token:    "author:al%",
			field:    FieldNone,
			comp:     Equals,
			body:     "author:al",
			wildcard: true,
			rank:     10,
		},
		{
			name:  "first separator wins",
			token: "date<2020/01/01:x",
			field: FieldDate, comp: LessThan, body: "2020/01/01:x", rank: 9,
		},
		{
			name:  "date body keeps literal percent",
			token: "date:2020%",
			field: FieldDate, comp: Equals, body: "2020%", rank: 4,
		},
		{
			name:  "empty body after prefix",
			token: "name:",
			field: FieldName, comp: Equals, body: "", rank: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseToken(tt.token)
			if c.Field != tt.field {
				t.Errorf("field: got %v, want %v", c.Field, tt.field)
			}
			if c.Comp != tt.comp {
				t.Errorf("comparator: got %v, want %v", c.Comp, tt.comp)
			}
			if c.Body != tt.body {
				t.Errorf("body: got %q, want %q", c.Body, tt.body)
			}
			if c.Wildcard != tt.wildcard {
				t.Errorf("wildcard: got %v, want %v", c.Wildcard, tt.wildcard)
			}
			if c.Rank() != tt.rank {
				t.Errorf("rank: got %d, want %d", c.Rank(), tt.rank)
			}
		})
	}
}

func TestParseOrdersByRank(t *testing.T) {
	clauses := Parse("gol% date>2020/01/01 text:coffee name:alice date:2020/01/01")

	var ranks []int
	for _, c := range clauses {
		ranks = append(ranks, c.Rank())
	}
	want := []int{1, 3, 4, 9, 10}
	if len(ranks) != len(want) {
		t.Fatalf("expected %d clauses, got %d", len(want), len(ranks))
	}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("expected ranks %v, got %v", want, ranks)
		}
	}
}

func TestParseStableTies(t *testing.T) {
	clauses := Parse("name:zed name:alice name:bob")

	bodies := []string{clauses[0].Body, clauses[1].Body, clauses[2].Body}
	want := []string{"zed", "alice", "bob"}
	for i := range want {
		if bodies[i] != want[i] {
			t.Fatalf("equal ranks must keep query order, expected %v got %v", want, bodies)
		}
	}
}

func TestParseEmptyQuery(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Fatalf("expected no clauses for empty query, got %d", len(got))
	}
	if got := Parse("   \t  "); len(got) != 0 {
		t.Fatalf("expected no clauses for blank query, got %d", len(got))
	}
}

func TestParseOneClausePerToken(t *testing.T) {
	clauses := Parse("name:alice bob date<2021/01/01")
	if len(clauses) != 3 {
		t.Fatalf("expected exactly one clause per token, got %d", len(clauses))
	}
}
