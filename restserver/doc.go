// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a memory document store as a REST
// service.  The restclient package is a matching client.
//
// The request and response bodies are defined in the restdata
// package.
//
// HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to request a
// response format.  See "MIME Types" below.  Request bodies for
// documents, graphs, and query options are stored exactly as sent.
//
// This interface does not support HTTP caching or authentication
// headers.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/json
//     text/json
//
// JSON representation of structured responses.
//
//     application/rdf+json
//
// Graph contents; structured responses are sent as plain JSON.
//
//     text/uri-list
//
// The list of named graphs, one per line.
//
// URL Scheme
//
// Every resource accepts a "database" query parameter to use a named
// database, and a "txid" parameter to run inside an open
// transaction.  The following URLs are defined:
//
//     /v1/documents?uri={uri}
//     /v1/search
//     /v1/suggest?partial-q={prefix}
//     /v1/values
//     /v1/values/{name}
//     /v1/graphs
//     /v1/graphs?graph={uri}
//     /v1/graphs?default
//     /v1/graphs/things
//     /v1/config/query
//     /v1/config/query/{name}
//     /v1/transactions
//     /v1/transactions/{txid}
//     /v1/transactions/{txid}?result={commit|rollback}
//
// The values and things resources always return 501 Not Implemented.
package restserver
