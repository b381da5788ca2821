// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/satori/go.uuid"
	"sort"
	"time"
)

// DefaultTimeLimit is the time limit of a transaction begun without
// one.
const DefaultTimeLimit = 10 * time.Minute

type transaction struct {
	id        string
	name      string
	database  string
	timeLimit time.Duration
	expires   time.Time

	// writes maps document URI to staged document; nil means
	// deleted.
	writes map[string]*Document
}

func (tx *transaction) detail() restdata.TransactionDetail {
	return restdata.TransactionDetail{
		ID:        tx.id,
		Name:      tx.name,
		Database:  tx.database,
		TimeLimit: int(tx.timeLimit / time.Second),
		Expires:   tx.expires.UTC().Format(time.RFC3339),
	}
}

// expire drops every transaction whose time limit has passed.  Call
// with the lock held.
func (s *Store) expire() {
	now := s.clock.Now()
	for id, tx := range s.transactions {
		if !now.Before(tx.expires) {
			delete(s.transactions, id)
		}
	}
}

// liveTransaction finds an unexpired transaction.  Call with the lock
// held.
func (s *Store) liveTransaction(id string) (*transaction, error) {
	s.expire()
	tx := s.transactions[id]
	if tx == nil {
		return nil, ErrNoSuchTransaction{ID: id}
	}
	return tx, nil
}

// Begin starts a new transaction against a database.  A zero
// timeLimit means DefaultTimeLimit.
func (s *Store) Begin(db, name string, timeLimit time.Duration) restdata.TransactionDetail {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	s.sem.Lock()
	defer s.sem.Unlock()
	s.expire()
	db = databaseName(db)
	s.database(db)
	tx := &transaction{
		id:        uuid.NewV4().String(),
		name:      name,
		database:  db,
		timeLimit: timeLimit,
		expires:   s.clock.Now().Add(timeLimit),
		writes:    make(map[string]*Document),
	}
	s.transactions[tx.id] = tx
	return tx.detail()
}

// Transaction describes an open transaction.
func (s *Store) Transaction(id string) (restdata.TransactionDetail, error) {
	s.sem.Lock()
	defer s.sem.Unlock()
	tx, err := s.liveTransaction(id)
	if err != nil {
		return restdata.TransactionDetail{}, err
	}
	return tx.detail(), nil
}

// Commit applies every write staged in a transaction and ends it.
func (s *Store) Commit(id string) error {
	s.sem.Lock()
	defer s.sem.Unlock()
	tx, err := s.liveTransaction(id)
	if err != nil {
		return err
	}
	db := s.database(tx.database)
	for uri, doc := range tx.writes {
		if doc == nil {
			delete(db.docs, uri)
		} else {
			db.docs[uri] = doc
		}
	}
	delete(s.transactions, id)
	return nil
}

// Rollback discards a transaction's staged writes and ends it.
func (s *Store) Rollback(id string) error {
	s.sem.Lock()
	defer s.sem.Unlock()
	if _, err := s.liveTransaction(id); err != nil {
		return err
	}
	delete(s.transactions, id)
	return nil
}

// OpenTransactions returns the ids of every unexpired transaction, in
// sorted order.
func (s *Store) OpenTransactions() []string {
	s.sem.Lock()
	defer s.sem.Unlock()
	s.expire()
	ids := make([]string, 0, len(s.transactions))
	for id := range s.transactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
