package query

import (
	"sort"
	"strings"
)

// prefixFields maps the recognized field prefixes to their Field. Only
// "date" may combine with '<' or '>'.
var prefixFields = map[string]Field{
	"name":     FieldName,
	"location": FieldLocation,
	"text":     FieldText,
	"date":     FieldDate,
}

// Parse splits a query string on whitespace and turns every token into one
// clause, returned in evaluation (rank) order. Parse never fails: a token
// with an unrecognized prefix/separator combination degrades to an
// unprefixed literal term, which is deliberate query-language leniency.
func Parse(query string) ClauseList {
	tokens := strings.Fields(query)
	clauses := make(ClauseList, 0, len(tokens))
	for _, token := range tokens {
		clauses = append(clauses, parseToken(token))
	}
	sort.SliceStable(clauses, func(i, j int) bool {
		return clauses[i].rank < clauses[j].rank
	})
	return clauses
}

// parseToken produces exactly one clause per token. The first ':', '<' or
// '>' in the token is the structural separator; anything before it must be
// a valid field prefix for the split to stand.
func parseToken(token string) Clause {
	field := FieldNone
	comp := Equals
	body := token

	if i := strings.IndexAny(token, ":<>"); i >= 0 {
		sep := token[i]
		f, known := prefixFields[token[:i]]
		if known && (sep == ':' || f == FieldDate) {
			field = f
			body = token[i+1:]
			switch sep {
			case '<':
				comp = LessThan
			case '>':
				comp = GreaterThan
			}
		}
	}

	// Dates have no wildcard notion; a literal '%' in a date body simply
	// matches nothing later.
	wildcard := false
	if field != FieldDate && strings.HasSuffix(body, "%") {
		body = strings.TrimSuffix(body, "%")
		wildcard = true
	}

	return Clause{
		Field:    field,
		Comp:     comp,
		Body:     body,
		Wildcard: wildcard,
		rank:     clauseRank(field, comp, wildcard),
	}
}
