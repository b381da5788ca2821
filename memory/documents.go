// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/satori/go.uuid"
	"sort"
	"strings"
)

// view is the set of documents visible from one scope: a database's
// committed documents, overlaid with one transaction's writes.
type view struct {
	db *database
	tx *transaction
}

// view resolves a scope.  Call with the lock held.
func (s *Store) view(scope Scope) (view, error) {
	v := view{db: s.database(scope.Database)}
	if scope.TxID != "" {
		tx, err := s.liveTransaction(scope.TxID)
		if err != nil {
			return view{}, err
		}
		if tx.database != databaseName(scope.Database) {
			return view{}, ErrNoSuchTransaction{ID: scope.TxID}
		}
		v.tx = tx
	}
	return v, nil
}

func (v view) get(uri string) *Document {
	if v.tx != nil {
		if doc, staged := v.tx.writes[uri]; staged {
			return doc
		}
	}
	return v.db.docs[uri]
}

func (v view) put(doc *Document) {
	if v.tx != nil {
		v.tx.writes[doc.URI] = doc
	} else {
		v.db.docs[doc.URI] = doc
	}
}

func (v view) remove(uri string) {
	if v.tx != nil {
		v.tx.writes[uri] = nil
	} else {
		delete(v.db.docs, uri)
	}
}

// all returns every visible document, sorted by URI.
func (v view) all() []*Document {
	uris := make(map[string]struct{})
	for uri := range v.db.docs {
		uris[uri] = struct{}{}
	}
	if v.tx != nil {
		for uri := range v.tx.writes {
			uris[uri] = struct{}{}
		}
	}
	var docs []*Document
	for uri := range uris {
		if doc := v.get(uri); doc != nil {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs
}

// Get retrieves a copy of a document.
func (s *Store) Get(scope Scope, uri string) (*Document, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	v, err := s.view(scope)
	if err != nil {
		return nil, err
	}
	doc := v.get(uri)
	if doc == nil {
		return nil, ErrNoSuchDocument{URI: uri}
	}
	return copyDocument(doc), nil
}

// Put creates or replaces a document.
func (s *Store) Put(scope Scope, doc Document) error {
	s.sem.Lock()
	defer s.sem.Unlock()
	v, err := s.view(scope)
	if err != nil {
		return err
	}
	v.put(copyDocument(&doc))
	return nil
}

// Insert creates a document with a newly generated URI, and returns
// that URI.
func (s *Store) Insert(scope Scope, content []byte, collections []string) (string, error) {
	uri := "/" + uuid.NewV4().String() + ".json"
	err := s.Put(scope, Document{URI: uri, Content: content, Collections: collections})
	if err != nil {
		return "", err
	}
	return uri, nil
}

// Delete deletes a document.  Deleting a document that does not exist
// is not an error.
func (s *Store) Delete(scope Scope, uri string) error {
	return s.DeleteURIs(scope, []string{uri})
}

// DeleteURIs deletes several documents at once.
func (s *Store) DeleteURIs(scope Scope, uris []string) error {
	s.sem.Lock()
	defer s.sem.Unlock()
	v, err := s.view(scope)
	if err != nil {
		return err
	}
	for _, uri := range uris {
		v.remove(uri)
	}
	return nil
}

// DeleteMatching deletes every document matching a query, and
// returns the number deleted.
func (s *Store) DeleteMatching(scope Scope, q Query) (int, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	v, err := s.view(scope)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, doc := range v.all() {
		if q.matches(doc) {
			v.remove(doc.URI)
			count++
		}
	}
	return count, nil
}

// Search returns the URIs of every document matching a query, in
// sorted order.
func (s *Store) Search(scope Scope, q Query) ([]string, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	v, err := s.view(scope)
	if err != nil {
		return nil, err
	}
	uris := []string{}
	for _, doc := range v.all() {
		if q.matches(doc) {
			uris = append(uris, doc.URI)
		}
	}
	return uris, nil
}

// Suggest returns the URIs of documents that start with prefix, as
// completions for a search phrase.
func (s *Store) Suggest(scope Scope, prefix string, q Query) ([]string, error) {
	uris, err := s.Search(scope, q)
	if err != nil {
		return nil, err
	}
	suggestions := []string{}
	for _, uri := range uris {
		if strings.HasPrefix(uri, prefix) {
			suggestions = append(suggestions, uri)
		}
	}
	return suggestions, nil
}

// PutGraph stores the contents of a named graph; an empty name is the
// default graph.
func (s *Store) PutGraph(db, name string, content []byte) {
	s.sem.Lock()
	defer s.sem.Unlock()
	s.database(db).graphs[name] = append([]byte(nil), content...)
}

// Graph retrieves the contents of a graph.
func (s *Store) Graph(db, name string) ([]byte, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	content, present := s.database(db).graphs[name]
	if !present {
		return nil, ErrNoSuchGraph{Name: name}
	}
	return append([]byte(nil), content...), nil
}

// GraphNames lists the named graphs in a database, not including the
// default graph.
func (s *Store) GraphNames(db string) []string {
	s.sem.Lock()
	defer s.sem.Unlock()
	names := []string{}
	for _, name := range sortedKeys(s.database(db).graphs) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// PutOptions stores a named set of query options.
func (s *Store) PutOptions(db, name string, content []byte) {
	s.sem.Lock()
	defer s.sem.Unlock()
	s.database(db).options[name] = append([]byte(nil), content...)
}

// Options retrieves a named set of query options.
func (s *Store) Options(db, name string) ([]byte, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	content, present := s.database(db).options[name]
	if !present {
		return nil, ErrNoSuchOptions{Name: name}
	}
	return append([]byte(nil), content...), nil
}

// OptionsNames lists the stored query options in a database.
func (s *Store) OptionsNames(db string) []string {
	s.sem.Lock()
	defer s.sem.Unlock()
	return sortedKeys(s.database(db).options)
}
