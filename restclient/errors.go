// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"errors"
	"fmt"
)

// ErrMissingBaseURI is returned from New() if neither the options nor
// the environment give a base URI.
var ErrMissingBaseURI = errors.New("missing base uri")

// errUnknownStructure is the handshake failure when a successful
// transaction open response does not carry a transaction id.
var errUnknownStructure = errors.New("unknown transaction status structure")

// ErrMissingArgument is returned when a required string argument,
// such as a document URI, is empty.
type ErrMissingArgument struct {
	What string
}

func (e ErrMissingArgument) Error() string {
	return "missing " + e.What
}

// ErrInvalidArgument is returned when a composite argument has the
// wrong shape, or when Submit() is called with bad inputs.
type ErrInvalidArgument struct {
	What string
}

func (e ErrInvalidArgument) Error() string {
	return "bad " + e.What
}

// ErrInvalidURL is returned when a base URI or a request URL cannot
// be parsed, or is not absolute.
type ErrInvalidURL struct {
	URL string
	Err error
}

func (e ErrInvalidURL) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid url %q: not absolute", e.URL)
	}
	return fmt.Sprintf("invalid url %q: %v", e.URL, e.Err)
}

func (e ErrInvalidURL) Unwrap() error {
	return e.Err
}

// ErrMissingDependency is returned when a client is constructed
// without a collaborator it needs to send requests.
type ErrMissingDependency struct {
	Name string
}

func (e ErrMissingDependency) Error() string {
	return "missing dependency: " + e.Name
}

// ErrNotImplemented is returned by every call to an API method this
// package knows about but does not implement.
type ErrNotImplemented struct {
	Method string
}

func (e ErrNotImplemented) Error() string {
	return e.Method + ": not implemented"
}

// ErrNotSupported is returned when a method is not available on this
// kind of client: nesting database views, or calling Transaction,
// Suggest, or Database on a transaction.
type ErrNotSupported struct {
	Method string
}

func (e ErrNotSupported) Error() string {
	return e.Method + ": not supported here"
}

// ErrTransactionClosed is returned by every request through a
// transaction that has been committed, rolled back, or failed.
type ErrTransactionClosed struct {
	State TransactionState
}

func (e ErrTransactionClosed) Error() string {
	return "transaction closed: " + string(e.State)
}

// ErrTransactionHandshakeFailed is returned by every request through a
// transaction whose open request did not produce a transaction id.
type ErrTransactionHandshakeFailed struct {
	Err error
}

func (e ErrTransactionHandshakeFailed) Error() string {
	return "transaction open failed: " + e.Err.Error()
}

func (e ErrTransactionHandshakeFailed) Unwrap() error {
	return e.Err
}
