// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-mlrest/restdata"
	"strings"
)

// graphName picks the graph a request names: the "graph" parameter,
// or the default graph if there is a "default" parameter.  ok is
// false if the request names no graph at all.
func graphName(ctx *context) (name string, ok bool) {
	if ctx.HasParam("graph") {
		return ctx.QueryParams.Get("graph"), true
	}
	if ctx.HasParam("default") {
		return "", true
	}
	return "", false
}

// GraphGet returns the contents of one graph, or with no graph
// parameters, the list of named graphs.  The list is sent as
// text/uri-list if the client accepts that and as a JSON array
// otherwise.
func (api *restAPI) GraphGet(ctx *context) (interface{}, error) {
	name, ok := graphName(ctx)
	if !ok {
		names := api.Store.GraphNames(ctx.Scope.Database)
		if ctx.ResponseType != restdata.URIListMediaType {
			return names, nil
		}
		var body strings.Builder
		for _, name := range names {
			body.WriteString(name)
			body.WriteString("\n")
		}
		return rawResponse{
			ContentType: restdata.URIListMediaType,
			Body:        []byte(body.String()),
		}, nil
	}
	content, err := api.Store.Graph(ctx.Scope.Database, name)
	if err != nil {
		return nil, storeError(err)
	}
	return rawResponse{ContentType: restdata.RDFJSONMediaType, Body: content}, nil
}

// GraphPut replaces the contents of one graph.
func (api *restAPI) GraphPut(ctx *context, in interface{}) (interface{}, error) {
	content, valid := in.([]byte)
	if !valid {
		return nil, errUnmarshal
	}
	name, ok := graphName(ctx)
	if !ok {
		return nil, errMissingParam{Name: "graph"}
	}
	api.Store.PutGraph(ctx.Scope.Database, name, content)
	return nil, nil
}
