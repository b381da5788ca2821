// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/stretchr/testify/assert"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// sentRequest is a request as it reached the fake HTTP client.
type sentRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Host   string
	Body   []byte
}

// fakeHTTP is an HTTPClient that records every request and answers it
// from an http.Handler, without a network.
type fakeHTTP struct {
	mu       sync.Mutex
	requests []sentRequest

	// Handler produces responses; if nil every request gets an
	// empty 200 OK.
	Handler http.HandlerFunc

	// Fail, if non-nil, may return an error in place of a
	// response.
	Fail func(*http.Request) error
}

func (f *fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	sent := sentRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Header: req.Header,
		Host:   req.Host,
	}
	if req.Body != nil {
		sent.Body, _ = ioutil.ReadAll(req.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, sent)
	f.mu.Unlock()

	if f.Fail != nil {
		if err := f.Fail(req); err != nil {
			return nil, err
		}
	}
	rec := httptest.NewRecorder()
	if f.Handler != nil {
		f.Handler(rec, req)
	}
	return rec.Result(), nil
}

// Requests returns a copy of the requests sent so far.
func (f *fakeHTTP) Requests() []sentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentRequest(nil), f.requests...)
}

// Last returns the most recent request.
func (f *fakeHTTP) Last() sentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return sentRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// writeJSON sends a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := restdata.Encode(v)
	if err != nil {
		panic(err)
	}
	w.Header().Set("Content-Type", restdata.JSONMediaType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// newFakeClient creates a Client over a fake HTTP client with a fixed
// base URI.
func newFakeClient(t *testing.T, fake *fakeHTTP) *Client {
	c, err := NewWithHTTPClient(Options{BaseURI: "http://db.example.com:8000/"}, fake)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return c
}
