// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  These are the JSON bodies of
// the document-and-search REST API, passed across the wire as the
// application/json MIME type.
//
// API Usage
//
// All resources live under a versioned path prefix, /v1/ by default.
// Documents are addressed by a "uri" query parameter on /v1/documents
// rather than by path.  Two query parameters are meaningful on every
// resource: "database" selects a named database instead of the
// default one, and "txid" runs the request inside an open
// multi-statement transaction.
//
// Transactions
//
// HTTP POST to /v1/transactions opens a transaction and returns a
// TransactionStatus, whose transaction-id is the txid for later
// requests.  HTTP GET on /v1/transactions/{txid} returns the same
// structure; HTTP POST there with result=commit or result=rollback
// ends the transaction.  Every other request that carries a txid sees
// the uncommitted writes of that transaction and nothing from other
// open transactions.
//
// Errors
//
// Failing requests return a failing HTTP status and, usually, an
// ErrorResponse body.  The client does not treat a failing status as
// a Go error by itself; callers inspect the response.
package restdata

// JSONMediaType is the MIME type of every structured request and
// response body.
const JSONMediaType = "application/json"

// URIListMediaType is the MIME type of a newline-separated list of
// URIs, as returned by the graph list endpoint.
const URIListMediaType = "text/uri-list"

// RDFJSONMediaType is the MIME type of RDF/JSON graph contents.
const RDFJSONMediaType = "application/rdf+json"

// TransactionStatus is returned from opening a transaction and from
// the transaction details endpoint.
type TransactionStatus struct {
	Status TransactionDetail `json:"transaction-status"`
}

// TransactionDetail describes a single open transaction.
type TransactionDetail struct {
	// ID is the server-assigned transaction identifier.  Pass it
	// as the "txid" query parameter to run a request inside the
	// transaction.
	ID string `json:"transaction-id"`

	// Name is the optional caller-supplied name of the
	// transaction.
	Name string `json:"transaction-name,omitempty"`

	// Database names the database the transaction was opened
	// against; empty means the default database.
	Database string `json:"database,omitempty"`

	// TimeLimit is the number of seconds the transaction may stay
	// open before the server rolls it back.
	TimeLimit int `json:"time-limit,omitempty"`

	// Expires is an RFC 3339 timestamp after which the
	// transaction no longer exists.
	Expires string `json:"expires,omitempty"`
}

// SearchResponse is the result of a search.
type SearchResponse struct {
	Total      int            `json:"total"`
	Start      int            `json:"start"`
	PageLength int            `json:"page-length"`
	Results    []SearchResult `json:"results"`
}

// SearchResult identifies one matching document.
type SearchResult struct {
	Index int    `json:"index"`
	URI   string `json:"uri"`
}

// SuggestResponse lists search phrase completions.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// OptionsList is returned from the query options list endpoint.
type OptionsList struct {
	Options []OptionsShort `json:"options"`
}

// OptionsShort names one set of stored query options.
type OptionsShort struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// DocumentCreated is returned when the server assigns a document URI.
type DocumentCreated struct {
	URI string `json:"uri"`
}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	Detail ErrorDetail `json:"errorResponse"`
}

// ErrorDetail carries the contents of an ErrorResponse.
type ErrorDetail struct {
	// StatusCode repeats the HTTP status code.
	StatusCode int `json:"statusCode"`

	// Status repeats the HTTP status text.
	Status string `json:"status"`

	// MessageCode is a short machine-readable description of
	// the failure, or "panic" if the server code panicked.
	MessageCode string `json:"messageCode"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}
