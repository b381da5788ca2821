// Regression tests for rest.go.
//
// Main tests are really by running the end-to-end path, driven from
// restclient.  This contains the framework tests and special-case bug
// tests.
//
// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/url"
	"testing"
)

type failResponseWriter struct {
	Headers    http.Header
	StatusCode int
}

func (rw *failResponseWriter) Header() http.Header {
	if rw.Headers == nil {
		rw.Headers = make(http.Header)
	}
	return rw.Headers
}

func (rw *failResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("foo")
}

func (rw *failResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
}

// TestDoubleFault checks that, if there is an error writing a
// response, it doesn't actually panic the process.
func TestDoubleFault(t *testing.T) {
	backend := memory.New()
	err := backend.Put(memory.Scope{}, memory.Document{
		URI:     "/doc.json",
		Content: []byte(`{"a":1}`),
	})
	if !assert.NoError(t, err) {
		return
	}

	router := NewRouter(backend)
	req := &http.Request{
		Method: http.MethodGet,
		URL: &url.URL{
			Path:     "/v1/documents",
			RawQuery: "uri=%2Fdoc.json",
		},
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Close:      true,
		Host:       "localhost",
	}
	resp := &failResponseWriter{}
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func negotiate(accept string) (string, error) {
	req := &http.Request{Header: http.Header{}}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return negotiateResponse(req)
}

func TestNegotiateResponse(t *testing.T) {
	tests := []struct {
		Accept string
		Type   string
	}{
		{"", restdata.JSONMediaType},
		{"*/*", restdata.JSONMediaType},
		{"application/*", restdata.JSONMediaType},
		{"text/*", "text/json"},
		{"application/json", restdata.JSONMediaType},
		{"text/uri-list", restdata.URIListMediaType},
		{"application/rdf+json", restdata.RDFJSONMediaType},
		{"text/html, */*;q=0.1", restdata.JSONMediaType},
		{"text/uri-list;q=0.5, application/json", restdata.JSONMediaType},
		{"*/*, text/uri-list", restdata.URIListMediaType},
	}
	for _, test := range tests {
		actual, err := negotiate(test.Accept)
		if assert.NoError(t, err, test.Accept) {
			assert.Equal(t, test.Type, actual, test.Accept)
		}
	}
}

func TestNegotiateResponseFails(t *testing.T) {
	_, err := negotiate("text/html")
	assert.Equal(t, errNotAcceptable{}, err)

	_, err = negotiate("application/json;q=2")
	assert.Equal(t, errBadAccept, err)
}
