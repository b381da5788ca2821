// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory document store
// with the semantics the REST API server needs: named databases,
// collections, simple search, and multi-statement transactions.
// There is no persistence.  The entire store is behind a single
// global lock; this is tuned for correctness, not performance.
//
// This is mostly intended as a backend for the restserver package,
// so that REST client code can be tested in-process.
package memory

import (
	"github.com/benbjohnson/clock"
	"sort"
	"strings"
	"sync"
)

// DefaultDatabase is the name of the database used when a request
// does not name one.
const DefaultDatabase = "Documents"

// Document is a single stored document.
type Document struct {
	// URI is the unique name of the document within its
	// database.
	URI string

	// Content holds the document body, usually JSON.
	Content []byte

	// Collections lists the collections the document belongs to.
	Collections []string
}

// Scope identifies where a document operation runs: a database, and
// optionally an open transaction in it.
type Scope struct {
	Database string
	TxID     string
}

// Query selects documents.  A zero Query selects everything.
type Query struct {
	// Text, if non-empty, must appear in the document content,
	// ignoring case.
	Text string

	// Collections, if non-empty, requires the document to be in
	// at least one of these collections.
	Collections []string

	// Directory, if non-empty, requires the document URI to
	// start with this prefix.
	Directory string
}

// Store is an in-memory document store.
type Store struct {
	sem          sync.Mutex
	clock        clock.Clock
	databases    map[string]*database
	transactions map[string]*transaction
}

type database struct {
	docs    map[string]*Document
	graphs  map[string][]byte
	options map[string][]byte
}

// New creates a new empty store using the system clock.
func New() *Store {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new empty store with an alternate time
// source, which controls transaction expiry.  Only test code should
// need this.
func NewWithClock(clk clock.Clock) *Store {
	return &Store{
		clock:        clk,
		databases:    make(map[string]*database),
		transactions: make(map[string]*transaction),
	}
}

func databaseName(name string) string {
	if name == "" {
		return DefaultDatabase
	}
	return name
}

// database finds or creates a database.  Call with the lock held.
func (s *Store) database(name string) *database {
	name = databaseName(name)
	db := s.databases[name]
	if db == nil {
		db = &database{
			docs:    make(map[string]*Document),
			graphs:  make(map[string][]byte),
			options: make(map[string][]byte),
		}
		s.databases[name] = db
	}
	return db
}

func copyDocument(doc *Document) *Document {
	return &Document{
		URI:         doc.URI,
		Content:     append([]byte(nil), doc.Content...),
		Collections: append([]string(nil), doc.Collections...),
	}
}

// matches determines whether doc satisfies q.
func (q Query) matches(doc *Document) bool {
	if q.Directory != "" && !strings.HasPrefix(doc.URI, q.Directory) {
		return false
	}
	if len(q.Collections) > 0 {
		found := false
		for _, want := range q.Collections {
			for _, have := range doc.Collections {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if q.Text != "" {
		content := strings.ToLower(string(doc.Content))
		if !strings.Contains(content, strings.ToLower(q.Text)) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
