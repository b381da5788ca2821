// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"sync"
)

// OpenTransaction opens a multi-statement transaction.  params may
// include "name" and "timeLimit".  The transaction id is in the
// response body; see Transaction() for a client that manages it.
func (c *Client) OpenTransaction(params interface{}) (*Response, error) {
	return c.Request("/transactions", params, &Request{Method: http.MethodPost})
}

func transactionVars(txID string) (map[string]interface{}, error) {
	if txID == "" {
		return nil, ErrMissingArgument{What: "transaction id"}
	}
	return map[string]interface{}{"txid": txID}, nil
}

// TransactionDetails gets the details of an open transaction.
func (c *Client) TransactionDetails(txID string) (*Response, error) {
	vars, err := transactionVars(txID)
	if err != nil {
		return nil, err
	}
	return c.requestTemplate("/transactions/{txid}", vars, nil, nil)
}

// CommitTransaction commits a multi-statement transaction.
func (c *Client) CommitTransaction(txID string) (*Response, error) {
	return c.endTransaction(txID, "commit")
}

// RollbackTransaction rolls back a multi-statement transaction.
func (c *Client) RollbackTransaction(txID string) (*Response, error) {
	return c.endTransaction(txID, "rollback")
}

func (c *Client) endTransaction(txID, result string) (*Response, error) {
	vars, err := transactionVars(txID)
	if err != nil {
		return nil, err
	}
	return c.requestTemplate("/transactions/{txid}", vars,
		url.Values{"result": {result}}, &Request{Method: http.MethodPost})
}

// TransactionState is the lifecycle state of a Transaction.
type TransactionState string

const (
	// TransactionUninitialized is the state of a transaction
	// whose open request has not completed yet.
	TransactionUninitialized TransactionState = "uninitialized"

	// TransactionOpen is the state of a transaction that has a
	// server-assigned id and accepts requests.
	TransactionOpen TransactionState = "open"

	// TransactionCommitted is the state after a successful commit.
	TransactionCommitted TransactionState = "committed"

	// TransactionRolledBack is the state after a successful
	// rollback.
	TransactionRolledBack TransactionState = "rolled-back"

	// TransactionFailed is the state after the transaction failed
	// to open, or a commit or rollback returned a failing status.
	TransactionFailed TransactionState = "failed"
)

// Terminal reports whether a transaction in this state can never be
// used again.
func (s TransactionState) Terminal() bool {
	switch s {
	case TransactionCommitted, TransactionRolledBack, TransactionFailed:
		return true
	}
	return false
}

// Transaction is a view of a Client that runs every request inside a
// single multi-statement transaction.  It supports every Client
// method except Transaction, Suggest, and Database.
//
// Creating a Transaction sends the open request in the background.
// Every request through the Transaction waits for that to finish and
// then carries the transaction's txid; if the open failed, every
// request returns ErrTransactionHandshakeFailed and nothing is sent.
// Once the transaction is committed or rolled back, every request
// returns ErrTransactionClosed immediately.
//
// Requests still in flight when Commit or Rollback is called are not
// waited for, and may reach the server after the transaction ends.
type Transaction struct {
	*Client

	// parent sends the open, details, commit, and rollback
	// requests, outside the transaction gate.
	parent *Client

	// opened is closed when the open request finishes.
	opened chan struct{}

	// mu protects the fields below it.
	mu      sync.Mutex
	state   TransactionState
	id      string
	openErr error
}

// Transaction opens a new multi-statement transaction.  If c is a
// database view, the transaction runs against that database.
func (c *Client) Transaction() (*Transaction, error) {
	return c.TransactionWithParams(nil)
}

// TransactionWithParams opens a new multi-statement transaction,
// passing params such as "name" and "timeLimit" to the open request.
func (c *Client) TransactionWithParams(params interface{}) (*Transaction, error) {
	if c.tx != nil {
		return nil, ErrNotSupported{Method: "Transaction"}
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	tx := &Transaction{
		parent: c,
		opened: make(chan struct{}),
		state:  TransactionUninitialized,
	}
	tx.Client = c.derive()
	tx.Client.tx = tx
	go tx.open(values)
	return tx, nil
}

// open runs the open handshake.  It is run exactly once, in its own
// goroutine.
func (tx *Transaction) open(params url.Values) {
	defer close(tx.opened)

	resp, err := tx.parent.OpenTransaction(params)
	if err == nil {
		err = checkHTTPStatus(resp)
	}
	var status restdata.TransactionStatus
	if err == nil {
		err = resp.Decode(&status)
	}
	if err == nil && status.Status.ID == "" {
		err = errUnknownStructure
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	if err != nil {
		tx.state = TransactionFailed
		tx.id = ""
		tx.openErr = ErrTransactionHandshakeFailed{Err: err}
		tx.logger.WithField("err", err).Warn("transaction open failed")
		return
	}
	tx.state = TransactionOpen
	tx.id = status.Status.ID
	tx.logger.WithField("txid", tx.id).Debug("transaction open")
}

// State returns the current lifecycle state.
func (tx *Transaction) State() TransactionState {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.state
}

// ID returns the transaction id while the transaction is open, and an
// empty string otherwise.
func (tx *Transaction) ID() string {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.id
}

// closedError returns the error for using the transaction in its
// current state, or nil if it may still be used.
func (tx *Transaction) closedError() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.closedErrorLocked()
}

func (tx *Transaction) closedErrorLocked() error {
	if tx.openErr != nil {
		return tx.openErr
	}
	if tx.state.Terminal() {
		return ErrTransactionClosed{State: tx.state}
	}
	return nil
}

// wait blocks until the open handshake completes, and returns the
// transaction id.
func (tx *Transaction) wait() (string, error) {
	if err := tx.closedError(); err != nil {
		return "", err
	}
	<-tx.opened
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if err := tx.closedErrorLocked(); err != nil {
		return "", err
	}
	return tx.id, nil
}

// done moves the transaction to a terminal state.  Terminal states
// are never left.
func (tx *Transaction) done(state TransactionState) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.state.Terminal() {
		return
	}
	tx.logger.WithFields(logrus.Fields{
		"txid":  tx.id,
		"state": state,
	}).Debug("transaction closed")
	tx.state = state
	tx.id = ""
}

// submit is Submit for the transaction's client.
func (tx *Transaction) submit(u *url.URL, params url.Values, req *Request) (*Response, error) {
	if err := tx.closedError(); err != nil {
		return nil, err
	}
	if err := validateSubmission(u, params, req); err != nil {
		return nil, err
	}
	id, err := tx.wait()
	if err != nil {
		return nil, err
	}
	params.Set("txid", id)
	return tx.parent.Submit(u, params, req)
}

// Details gets the server's description of this transaction.
func (tx *Transaction) Details() (*Response, error) {
	id, err := tx.wait()
	if err != nil {
		return nil, err
	}
	return tx.parent.TransactionDetails(id)
}

// Commit commits this transaction.  A successful response moves it to
// TransactionCommitted and any other response to TransactionFailed;
// either way the response is returned.  If the request could not be
// sent at all the state does not change.
func (tx *Transaction) Commit() (*Response, error) {
	return tx.finish(tx.parent.CommitTransaction, TransactionCommitted)
}

// Rollback rolls back this transaction, moving it to
// TransactionRolledBack on success and TransactionFailed otherwise.
func (tx *Transaction) Rollback() (*Response, error) {
	return tx.finish(tx.parent.RollbackTransaction, TransactionRolledBack)
}

// TODO: track requests in flight through submit and wait for them
// to finish before ending the transaction.
func (tx *Transaction) finish(end func(string) (*Response, error), success TransactionState) (*Response, error) {
	id, err := tx.wait()
	if err != nil {
		return nil, err
	}
	resp, err := end(id)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		tx.done(success)
	} else {
		tx.done(TransactionFailed)
	}
	return resp, nil
}
