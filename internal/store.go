package internal

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Hanaasagi/tricomment/pkg/record"
)

const parsedCacheSize = 512

// Store is a read-only key-to-raw-record map backed by a dictionary text
// file. A missing key is reported as an empty string, never as an error; the
// composer treats that as "no annotation available". Parsed records are
// cached behind an LRU so repeated phrase compositions stay cheap.
type Store struct {
	entries map[string]string
	parsed  *lru.Cache[string, record.Record]
}

// NewStore builds a store from pre-resolved entries.
func NewStore(entries map[string]string) *Store {
	cache, _ := lru.New[string, record.Record](parsedCacheSize)
	if entries == nil {
		entries = map[string]string{}
	}
	return &Store{entries: entries, parsed: cache}
}

// LoadStore reads a dictionary file of "key<TAB>record" lines. Blank lines
// and '#' comments are skipped; a duplicate key keeps the last entry, the
// same policy the rule table applies to overlapping lengths.
func LoadStore(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer file.Close() // nolint: errcheck

	store, err := ReadStore(file)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	return store, nil
}

// ReadStore parses dictionary lines from a reader.
func ReadStore(r io.Reader) (*Store, error) {
	entries := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "\t")
		if !found || key == "" {
			slog.Debug("skipping malformed dictionary line", "line", lineNo)
			continue
		}
		entries[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning dictionary: %w", err)
	}
	return NewStore(entries), nil
}

// Lookup returns the raw record for a key, empty if absent.
func (s *Store) Lookup(key string) string {
	return s.entries[key]
}

// ParsedLookup returns the parsed record for a key. ok is false when the key
// has no stored record.
func (s *Store) ParsedLookup(key string) (record.Record, bool) {
	if rec, ok := s.parsed.Get(key); ok {
		return rec, true
	}
	rec, ok := record.Parse(s.entries[key])
	if !ok {
		return record.Record{}, false
	}
	s.parsed.Add(key, rec)
	return rec, true
}

// Len returns the number of dictionary entries.
func (s *Store) Len() int {
	return len(s.entries)
}
