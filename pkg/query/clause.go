// Package query implements the boolean query engine: parsing a query
// string into clauses, ordering them by estimated selectivity, scanning the
// sorted indexes per clause, and intersecting the per-clause matches.
package query

// Field identifies which record field a clause is restricted to.
// FieldNone means the term may match in any of name, location or text.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldLocation
	FieldText
	FieldDate
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldLocation:
		return "location"
	case FieldText:
		return "text"
	case FieldDate:
		return "date"
	default:
		return "any"
	}
}

// Comparator is the relation between a clause body and index keys.
// LessThan and GreaterThan only occur on date clauses.
type Comparator int

const (
	Equals Comparator = iota
	LessThan
	GreaterThan
)

// Clause is one parsed unit of a query. For wildcard clauses Body holds the
// term with the trailing '%' already stripped.
type Clause struct {
	Field    Field
	Comp     Comparator
	Body     string
	Wildcard bool

	rank int
}

// Rank is the clause's selectivity cost. Lower ranks are evaluated first so
// restrictive lookups can empty the running result before expensive scans.
func (c Clause) Rank() int {
	return c.rank
}

// clauseRank assigns the fixed cost table: exact field-qualified lookups
// first, then exact dates and unqualified terms, then wildcard and range
// scans.
func clauseRank(field Field, comp Comparator, wildcard bool) int {
	if field == FieldDate {
		if comp == Equals {
			return 4
		}
		return 9
	}
	if wildcard {
		switch field {
		case FieldName:
			return 6
		case FieldLocation:
			return 7
		case FieldText:
			return 8
		default:
			return 10
		}
	}
	switch field {
	case FieldName:
		return 1
	case FieldLocation:
		return 2
	case FieldText:
		return 3
	default:
		return 5
	}
}

// ClauseList holds a query's clauses in non-decreasing rank order. Clauses
// of equal rank keep their original left-to-right query order.
type ClauseList []Clause
