package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/birdql/birdql/pkg/index"
	"github.com/birdql/birdql/pkg/log"
	"github.com/google/uuid"
)

// Field tags prepended to terms-index keys. A term from a record's name
// field is stored under "n-<term>", and so on.
const (
	TagName     = 'n'
	TagLocation = 'l'
	TagText     = 't'
)

// TermKey builds a terms-index key from a field tag and a normalized term.
func TermKey(tag byte, term string) []byte {
	key := make([]byte, 0, len(term)+2)
	key = append(key, tag, '-')
	return append(key, term...)
}

// batchSize bounds how many pending entries accumulate before a flush.
const batchSize = 512

// Builder writes records into the three index stores.
type Builder struct {
	terms   *index.Store
	dates   *index.Store
	records *index.Store
	codec   *Codec
	logger  *log.Logger

	pendingTerms   []index.Entry
	pendingDates   []index.Entry
	pendingRecords []index.Entry
}

func NewBuilder(terms, dates, records *index.Store) (*Builder, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &Builder{
		terms:   terms,
		dates:   dates,
		records: records,
		codec:   codec,
		logger:  log.ForComponent("index"),
	}, nil
}

// IndexFile indexes a JSON Lines file of tweet records and returns how many
// records were stored. Lines that do not parse are skipped with a warning.
func (b *Builder) IndexFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			b.logger.Warnf("skipping line %d: %v", line, err)
			continue
		}

		if err := b.Add(record); err != nil {
			return count, fmt.Errorf("indexing record at line %d: %w", line, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading input file: %w", err)
	}

	if err := b.Flush(); err != nil {
		return count, err
	}
	b.logger.Infof("indexed %d records from %s", count, path)
	return count, nil
}

// Add queues one record for indexing. Records without an ID get a generated
// one so they remain addressable in the records index.
func (b *Builder) Add(record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	id := []byte(record.ID)

	fields := []struct {
		tag   byte
		value string
	}{
		{TagName, record.Name},
		{TagLocation, record.Location},
		{TagText, record.Text},
	}
	for _, f := range fields {
		for _, term := range Tokenize(f.value) {
			b.pendingTerms = append(b.pendingTerms, index.Entry{Key: TermKey(f.tag, term), Value: id})
		}
	}

	if record.CreatedAt != "" {
		dateKey, err := record.DateKey()
		if err != nil {
			b.logger.Warnf("record %s: %v", record.ID, err)
		} else {
			b.pendingDates = append(b.pendingDates, index.Entry{Key: []byte(dateKey), Value: id})
		}
	}

	payload, err := b.codec.Encode(&record)
	if err != nil {
		return err
	}
	b.pendingRecords = append(b.pendingRecords, index.Entry{Key: id, Value: payload})

	if len(b.pendingTerms) >= batchSize || len(b.pendingRecords) >= batchSize {
		return b.Flush()
	}
	return nil
}

// Flush writes all queued entries to the stores.
func (b *Builder) Flush() error {
	if err := b.terms.PutAll(b.pendingTerms); err != nil {
		return fmt.Errorf("writing terms index: %w", err)
	}
	if err := b.dates.PutAll(b.pendingDates); err != nil {
		return fmt.Errorf("writing dates index: %w", err)
	}
	if err := b.records.PutAll(b.pendingRecords); err != nil {
		return fmt.Errorf("writing records index: %w", err)
	}
	b.pendingTerms = b.pendingTerms[:0]
	b.pendingDates = b.pendingDates[:0]
	b.pendingRecords = b.pendingRecords[:0]
	return nil
}
