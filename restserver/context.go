// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"fmt"
	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/gorilla/mux"
	"net/http"
	"net/url"
	"strconv"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// errMissingParam is returned when a required query parameter is
// absent.
type errMissingParam struct {
	Name string
}

func (e errMissingParam) Error() string {
	return fmt.Sprintf("Missing query parameter %q", e.Name)
}

func (e errMissingParam) HTTPStatus() int {
	return http.StatusBadRequest
}

// context holds all of the information and objects that can be extracted
// from URL parameters.
type context struct {
	// Scope names the database and transaction from the
	// "database" and "txid" query parameters.
	Scope memory.Scope

	// Vars holds the URL path variables.
	Vars map[string]string

	// QueryParams holds the parsed query string.
	QueryParams url.Values

	// ResponseType is the negotiated media type of the response.
	ResponseType string
}

func (api *restAPI) Context(req *http.Request) (*context, error) {
	ctx := &context{}
	ctx.QueryParams = req.URL.Query()
	ctx.Vars = mux.Vars(req)
	ctx.Scope.Database = ctx.QueryParams.Get("database")
	ctx.Scope.TxID = ctx.QueryParams.Get("txid")
	return ctx, nil
}

// IntParam looks at ctx.QueryParams for an integer parameter named
// name, returning def if it is absent.
func (ctx *context) IntParam(name string, def int) (int, error) {
	s := ctx.QueryParams.Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, restdata.ErrBadRequest{Err: fmt.Errorf("Invalid %v %q", name, s)}
	}
	return n, nil
}

// HasParam determines whether a query parameter is present at all,
// even with an empty value.
func (ctx *context) HasParam(name string) bool {
	_, present := ctx.QueryParams[name]
	return present
}

// Query builds a document query from query parameters.  text, if
// non-empty, is used when there is no "q" parameter.
func (ctx *context) Query(text string) memory.Query {
	q := memory.Query{
		Text:        ctx.QueryParams.Get("q"),
		Collections: ctx.QueryParams["collection"],
		Directory:   ctx.QueryParams.Get("directory"),
	}
	if q.Text == "" {
		q.Text = text
	}
	return q
}

// storeError converts an error from the memory store into one with
// the right HTTP status.
func storeError(err error) error {
	switch err.(type) {
	case memory.ErrNoSuchDocument, memory.ErrNoSuchGraph, memory.ErrNoSuchOptions:
		return restdata.ErrNotFound{Err: err}
	case memory.ErrNoSuchTransaction:
		return restdata.ErrBadRequest{Err: err}
	}
	return err
}
