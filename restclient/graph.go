// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"net/http"
	"strings"
)

// rdfRequest asks for graph contents as RDF/JSON.
func rdfRequest() *Request {
	return &Request{
		Method: http.MethodGet,
		Header: http.Header{"Accept": {restdata.RDFJSONMediaType}},
	}
}

// ListGraphs lists every semantic graph by name.  The server returns
// a text/uri-list; on success this is translated into a response with
// the same status whose body is a JSON array of graph names.  A
// failing response is returned unchanged.
func (c *Client) ListGraphs() (*Response, error) {
	resp, err := c.Request("/graphs", nil, &Request{
		Method: http.MethodGet,
		Header: http.Header{"Accept": {restdata.URIListMediaType}},
	})
	if err != nil || !resp.OK() {
		return resp, err
	}

	names := []string{}
	for _, line := range strings.Split(resp.Text(), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) > 0 {
			names = append(names, line)
		}
	}
	body, err := restdata.Encode(names)
	if err != nil {
		return nil, err
	}
	return resp.withBody(restdata.JSONMediaType, body), nil
}

// Graph gets the contents of a named graph, or of the default graph
// if uri is empty.
func (c *Client) Graph(uri string, params interface{}) (*Response, error) {
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	if uri != "" {
		values.Set("graph", uri)
	} else {
		values.Set("default", "")
	}
	return c.Request("/graphs", values, rdfRequest())
}

// Thing gets the triples related to a single IRI.
func (c *Client) Thing(iri string, params interface{}) (*Response, error) {
	if iri == "" {
		return nil, ErrInvalidArgument{What: "IRI"}
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	values.Set("iri", iri)
	return c.Request("/graphs/things", values, rdfRequest())
}

// Things gets the triples related to any of several IRIs.  iris must
// not be nil.
func (c *Client) Things(iris []string, params interface{}) (*Response, error) {
	if iris == nil {
		return nil, ErrInvalidArgument{What: "IRI list"}
	}
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	for _, iri := range iris {
		values.Add("iri", iri)
	}
	return c.Request("/graphs/things", values, rdfRequest())
}

// SPARQL would evaluate a SPARQL query.
func (c *Client) SPARQL(query string) (*Response, error) {
	return nil, ErrNotImplemented{Method: "SPARQL"}
}
