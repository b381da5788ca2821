// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"net/http"
)

// postQuery POSTs an optional combined query to an endpoint.  A nil
// query sends no body.
func (c *Client) postQuery(endpoint string, query, params interface{}) (*Response, error) {
	req := &Request{Method: http.MethodPost}
	if query != nil {
		body, err := restdata.Encode(query)
		if err != nil {
			return nil, err
		}
		req.Body = body
	}
	return c.Request(endpoint, params, req)
}

// Search searches for documents or metadata.  query is a combined
// query, serialized as the JSON request body; it may be nil.
func (c *Client) Search(query, params interface{}) (*Response, error) {
	return c.postQuery("/search", query, params)
}

// SearchParams searches using only query parameters.
func (c *Client) SearchParams(params interface{}) (*Response, error) {
	return c.Search(nil, params)
}

// QBE would run a query-by-example search.
func (c *Client) QBE(query, params interface{}) (*Response, error) {
	return nil, ErrNotImplemented{Method: "QBE"}
}

// Suggest gets search phrase suggestions for autocompletion.  If
// prefix is non-empty it is sent as the partial-q parameter.  Not
// available inside a transaction.
func (c *Client) Suggest(prefix string, query, params interface{}) (*Response, error) {
	if c.tx != nil {
		return nil, ErrNotSupported{Method: "Suggest"}
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	if prefix != "" {
		values.Set("partial-q", prefix)
	}
	return c.postQuery("/suggest", query, values)
}

// SuggestParams gets suggestions without a combined query.
func (c *Client) SuggestParams(prefix string, params interface{}) (*Response, error) {
	return c.Suggest(prefix, nil, params)
}

// ListValues lists the server-side values definitions.
func (c *Client) ListValues(params interface{}) (*Response, error) {
	return c.Request("/values", params, nil)
}

// Values gets the values for a named definition, optionally
// constrained by a combined query.
func (c *Client) Values(name string, query, params interface{}) (*Response, error) {
	if name == "" {
		return nil, ErrMissingArgument{What: "values definition name"}
	}
	endpoint, err := expand("/values/{name}", map[string]interface{}{"name": name})
	if err != nil {
		return nil, err
	}
	return c.postQuery(endpoint, query, params)
}

// ValuesParams gets the values for a named definition without a
// combined query.
func (c *Client) ValuesParams(name string, params interface{}) (*Response, error) {
	return c.Values(name, nil, params)
}
