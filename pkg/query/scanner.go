package query

import (
	"bytes"
	"fmt"

	"github.com/birdql/birdql/pkg/corpus"
	"github.com/birdql/birdql/pkg/index"
)

// Scanner executes single clauses against the terms and dates indexes.
// Every scan opens one cursor and closes it before returning, so no cursor
// outlives its clause. A clause that matches nothing yields an empty set,
// not an error; errors only surface for storage failures.
type Scanner struct {
	terms *index.Store
	dates *index.Store
}

func NewScanner(terms, dates *index.Store) *Scanner {
	return &Scanner{terms: terms, dates: dates}
}

func fieldTag(f Field) byte {
	switch f {
	case FieldName:
		return corpus.TagName
	case FieldLocation:
		return corpus.TagLocation
	default:
		return corpus.TagText
	}
}

// Scan returns the identifiers of every record matching the clause.
func (s *Scanner) Scan(c Clause) (MatchSet, error) {
	switch {
	case c.Field == FieldDate && c.Comp == Equals:
		return s.scanExact(s.dates, []byte(c.Body))
	case c.Field == FieldDate:
		return s.scanDateRange(c.Comp, []byte(c.Body))
	case c.Field == FieldNone:
		return s.scanAnyField(c.Body, c.Wildcard)
	default:
		return s.scanTerm(fieldTag(c.Field), c.Body, c.Wildcard)
	}
}

// scanAnyField matches an unqualified term in any of the three field
// sub-namespaces and unions the results. The union still enters the outer
// intersection as a single clause result.
func (s *Scanner) scanAnyField(term string, wildcard bool) (MatchSet, error) {
	matches := make(MatchSet)
	for _, tag := range []byte{corpus.TagName, corpus.TagLocation, corpus.TagText} {
		sub, err := s.scanTerm(tag, term, wildcard)
		if err != nil {
			return nil, err
		}
		matches.Merge(sub)
	}
	return matches, nil
}

func (s *Scanner) scanTerm(tag byte, term string, wildcard bool) (MatchSet, error) {
	key := corpus.TermKey(tag, term)
	if wildcard {
		return s.scanPrefix(s.terms, key)
	}
	return s.scanExact(s.terms, key)
}

// scanExact collects every value stored under exactly key, following
// duplicate-key links.
func (s *Scanner) scanExact(store *index.Store, key []byte) (MatchSet, error) {
	cur, err := store.SeekExact(key)
	if err != nil {
		return nil, s.scanErr(cur, key, err)
	}
	defer func() {
		_ = cur.Close()
	}()

	matches := make(MatchSet)
	for cur.Valid() {
		matches.Add(string(cur.Value()))
		if !cur.AdvanceWithinDuplicates() {
			break
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("exact scan for %q: %w", key, err)
	}
	return matches, nil
}

// scanPrefix collects values while keys share the query prefix, advancing
// in raw key order: distinct full keys under the prefix all count.
func (s *Scanner) scanPrefix(store *index.Store, prefix []byte) (MatchSet, error) {
	cur, err := store.Seek(prefix)
	if err != nil {
		return nil, s.scanErr(cur, prefix, err)
	}
	defer func() {
		_ = cur.Close()
	}()

	matches := make(MatchSet)
	for cur.Valid() && bytes.HasPrefix(cur.Key(), prefix) {
		matches.Add(string(cur.Value()))
		cur.Advance()
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("prefix scan for %q: %w", prefix, err)
	}
	return matches, nil
}

// scanDateRange collects records strictly before or strictly after the
// boundary date. The boundary's own entries are excluded in both
// directions, duplicates included.
func (s *Scanner) scanDateRange(comp Comparator, bound []byte) (MatchSet, error) {
	var cur *index.Cursor
	var err error
	if comp == LessThan {
		cur, err = s.dates.First()
	} else {
		cur, err = s.dates.Seek(bound)
	}
	if err != nil {
		return nil, s.scanErr(cur, bound, err)
	}
	defer func() {
		_ = cur.Close()
	}()

	matches := make(MatchSet)
	if comp == LessThan {
		for cur.Valid() && bytes.Compare(cur.Key(), bound) < 0 {
			matches.Add(string(cur.Value()))
			cur.Advance()
		}
	} else {
		for cur.Valid() && bytes.Equal(cur.Key(), bound) {
			cur.Advance()
		}
		for cur.Valid() {
			matches.Add(string(cur.Value()))
			cur.Advance()
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("date range scan at %q: %w", bound, err)
	}
	return matches, nil
}

// scanErr closes a cursor returned alongside a positioning error.
func (s *Scanner) scanErr(cur *index.Cursor, key []byte, err error) error {
	if cur != nil {
		_ = cur.Close()
	}
	return fmt.Errorf("positioning at %q: %w", key, err)
}
