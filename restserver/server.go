// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-mlrest/memory"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"net/http"
)

// NewRouter creates a new HTTP handler that processes all REST API
// requests against a store.  All resources are under the versioned
// URL path, e.g. /v1/documents.  For more control over this setup,
// create a mux.Router and call PopulateRouter instead.
func NewRouter(store *memory.Store) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, store, logrus.StandardLogger())
	return r
}

// PopulateRouter adds REST API routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the API under a subpath:
//
//     import "github.com/diffeo/go-mlrest/memory"
//     import "github.com/gorilla/mux"
//     r := mux.Router()
//     s := r.PathPrefix("/db").Subrouter()
//     PopulateRouter(s, memory.New(), logrus.StandardLogger())
func PopulateRouter(r *mux.Router, store *memory.Store, logger logrus.FieldLogger) {
	api := &restAPI{Store: store, Router: r, Logger: logger}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Store  *memory.Store
	Router *mux.Router
	Logger logrus.FieldLogger
}

// handler fills in the common parts of a resource handler.
func (api *restAPI) handler(name string, h *resourceHandler) *resourceHandler {
	h.Name = name
	h.Context = api.Context
	h.Logger = api.Logger
	return h
}

// route adds a single named resource to a router.
func (api *restAPI) route(r *mux.Router, path, name string, h *resourceHandler) {
	r.Path(path).Name(name).Handler(api.handler(name, h))
}

// PopulateRouter adds all REST API URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.route(r, "/v1/documents", "documents", &resourceHandler{
		Get:    api.DocumentGet,
		Put:    api.DocumentPut,
		Post:   api.DocumentPost,
		Delete: api.DocumentDelete,
	})
	api.route(r, "/v1/search", "search", &resourceHandler{
		Representation: searchRequest{},
		Get:            api.SearchGet,
		Post:           api.SearchPost,
		Delete:         api.SearchDelete,
	})
	api.route(r, "/v1/suggest", "suggest", &resourceHandler{
		Representation: searchRequest{},
		Get:            api.SuggestGet,
		Post:           api.SuggestPost,
	})
	api.route(r, "/v1/values", "valuesList", &resourceHandler{
		Get: api.NotImplemented,
	})
	api.route(r, "/v1/values/{name}", "values", &resourceHandler{
		Representation: searchRequest{},
		Get:            api.NotImplemented,
		Post:           api.NotImplementedPost,
	})
	api.route(r, "/v1/graphs", "graphs", &resourceHandler{
		Get: api.GraphGet,
		Put: api.GraphPut,
	})
	api.route(r, "/v1/graphs/things", "things", &resourceHandler{
		Get: api.NotImplemented,
	})
	api.route(r, "/v1/config/query", "optionsList", &resourceHandler{
		Get: api.OptionsList,
	})
	api.route(r, "/v1/config/query/{name}", "options", &resourceHandler{
		Get: api.OptionsGet,
		Put: api.OptionsPut,
	})
	api.route(r, "/v1/transactions", "transactions", &resourceHandler{
		Post: api.TransactionPost,
	})
	api.route(r, "/v1/transactions/{txid}", "transaction", &resourceHandler{
		Get:  api.TransactionGet,
		Post: api.TransactionEnd,
	})
}

// NotImplemented is the handler for resources this server knows
// about but does not serve.
func (api *restAPI) NotImplemented(ctx *context) (interface{}, error) {
	return nil, errNotImplemented{}
}

// NotImplementedPost is NotImplemented for POST requests.
func (api *restAPI) NotImplementedPost(ctx *context, in interface{}) (interface{}, error) {
	return nil, errNotImplemented{}
}
