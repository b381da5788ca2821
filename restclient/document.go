// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"net/http"
)

// errMissingURI is returned by document methods given an empty URI.
var errMissingURI = ErrMissingArgument{What: "document URI"}

// Doc gets a document.
func (c *Client) Doc(uri string, params interface{}) (*Response, error) {
	if uri == "" {
		return nil, errMissingURI
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	values.Set("uri", uri)
	return c.Request("/documents", values, nil)
}

// writeDoc sends content as the JSON body of a document write.
func (c *Client) writeDoc(method, uri string, content, params interface{}) (*Response, error) {
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	if uri != "" {
		values.Set("uri", uri)
	}
	body, err := restdata.Encode(content)
	if err != nil {
		return nil, err
	}
	return c.Request("/documents", values, &Request{Method: method, Body: body})
}

// Create creates a document at a URI with an HTTP PUT.  With an empty
// uri it is CreateAutoURI.
func (c *Client) Create(uri string, content, params interface{}) (*Response, error) {
	if uri == "" {
		return c.CreateAutoURI(content, params)
	}
	return c.writeDoc(http.MethodPut, uri, content, params)
}

// CreateAutoURI creates a document with an HTTP POST and lets the
// server choose its URI.
func (c *Client) CreateAutoURI(content, params interface{}) (*Response, error) {
	return c.writeDoc(http.MethodPost, "", content, params)
}

// Update replaces the contents of a document.
func (c *Client) Update(uri string, content, params interface{}) (*Response, error) {
	if uri == "" {
		return nil, errMissingURI
	}
	return c.writeDoc(http.MethodPut, uri, content, params)
}

// Delete deletes a document.
func (c *Client) Delete(uri string, params interface{}) (*Response, error) {
	if uri == "" {
		return nil, errMissingURI
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	values.Set("uri", uri)
	return c.Request("/documents", values, &Request{Method: http.MethodDelete})
}

// DeleteAll deletes a list of documents by URI in one request.  uris
// must not be nil.
func (c *Client) DeleteAll(uris []string, params interface{}) (*Response, error) {
	if uris == nil {
		return nil, ErrInvalidArgument{What: "document URI list"}
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	for _, uri := range uris {
		values.Add("uri", uri)
	}
	return c.Request("/documents", values, &Request{Method: http.MethodDelete})
}

// DeleteMatching deletes every document matching a filter, such as
// Params{"collection": "x"} or Params{"directory": "/d/"}.  A nil
// filter deletes everything.
func (c *Client) DeleteMatching(filter interface{}) (*Response, error) {
	return c.Request("/search", filter, &Request{Method: http.MethodDelete})
}

// Patch would apply a partial update to a document.
func (c *Client) Patch(uri string, patch, params interface{}) (*Response, error) {
	return nil, ErrNotImplemented{Method: "Patch"}
}
