// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restdata"
)

func (api *restAPI) documentURL(uri string) (string, error) {
	var location string
	err := buildURLs(api.Router).
		WithQuery("uri", uri).
		URL(&location, "documents").
		Error
	return location, err
}

// DocumentGet returns the stored content of the document named by
// the "uri" parameter.
func (api *restAPI) DocumentGet(ctx *context) (interface{}, error) {
	uri := ctx.QueryParams.Get("uri")
	if uri == "" {
		return nil, errMissingParam{Name: "uri"}
	}
	doc, err := api.Store.Get(ctx.Scope, uri)
	if err != nil {
		return nil, storeError(err)
	}
	return rawResponse{ContentType: restdata.JSONMediaType, Body: doc.Content}, nil
}

// DocumentPut creates or replaces the document named by the "uri"
// parameter.  It returns 201 Created for a new document and 204 No
// Content for a replaced one.
func (api *restAPI) DocumentPut(ctx *context, in interface{}) (interface{}, error) {
	content, valid := in.([]byte)
	if !valid {
		return nil, errUnmarshal
	}
	uri := ctx.QueryParams.Get("uri")
	if uri == "" {
		return nil, errMissingParam{Name: "uri"}
	}
	_, err := api.Store.Get(ctx.Scope, uri)
	_, isNew := err.(memory.ErrNoSuchDocument)
	if err != nil && !isNew {
		return nil, storeError(err)
	}
	err = api.Store.Put(ctx.Scope, memory.Document{
		URI:         uri,
		Content:     content,
		Collections: ctx.QueryParams["collection"],
	})
	if err != nil {
		return nil, storeError(err)
	}
	if !isNew {
		return nil, nil
	}
	location, err := api.documentURL(uri)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: location,
		Body:     restdata.DocumentCreated{URI: uri},
	}, nil
}

// DocumentPost creates a new document with a server-assigned URI.
func (api *restAPI) DocumentPost(ctx *context, in interface{}) (interface{}, error) {
	content, valid := in.([]byte)
	if !valid {
		return nil, errUnmarshal
	}
	uri, err := api.Store.Insert(ctx.Scope, content, ctx.QueryParams["collection"])
	if err != nil {
		return nil, storeError(err)
	}
	location, err := api.documentURL(uri)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: location,
		Body:     restdata.DocumentCreated{URI: uri},
	}, nil
}

// DocumentDelete deletes every document named by a "uri" parameter.
func (api *restAPI) DocumentDelete(ctx *context) (interface{}, error) {
	uris := ctx.QueryParams["uri"]
	if len(uris) == 0 {
		return nil, errMissingParam{Name: "uri"}
	}
	err := api.Store.DeleteURIs(ctx.Scope, uris)
	if err != nil {
		return nil, storeError(err)
	}
	return nil, nil
}
