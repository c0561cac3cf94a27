// Package corpus defines the tweet record model and builds the sorted
// indexes the query engine runs against: a terms index keyed by
// tag-prefixed tokens, a dates index keyed by YYYY/MM/DD strings, and a
// records index keyed by record identifier.
package corpus

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Record is one tweet from the corpus. The JSON field names follow the raw
// tweet dumps the indexer consumes.
type Record struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
	RetweetCount int    `json:"retweet_count"`
	Description  string `json:"description"`
	URL          string `json:"url"`
}

// createdAtLayouts are tried in order when parsing a record's timestamp.
// RubyDate is the classic tweet dump format ("Mon Jan 02 15:04:05 -0700 2006").
var createdAtLayouts = []string{
	"2006/01/02",
	time.RubyDate,
	time.RFC3339,
}

// DateKey returns the record's dates-index key in YYYY/MM/DD form.
func (r *Record) DateKey() (string, error) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t.Format("2006/01/02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized created_at value %q", r.CreatedAt)
}

// Normalize lowercases s and applies NFC so the same term always produces
// the same index key, at build time and at query time.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// Tokenize splits a field value into index terms: maximal runs of
// [0-9a-z_] after normalization. Everything else separates tokens.
func Tokenize(s string) []string {
	s = Normalize(s)
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		alnum := c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')
		switch {
		case alnum && start < 0:
			start = i
		case !alnum && start >= 0:
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}
