// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/url"
	"testing"
)

func TestBuildURL(t *testing.T) {
	fake := &fakeHTTP{}
	plain := newFakeClient(t, fake)
	prefixed, err := NewWithHTTPClient(Options{
		BaseURI:  "http://db.example.com:8000/",
		Endpoint: "/api/",
		Version:  "v2",
	}, fake)
	if !assert.NoError(t, err) {
		return
	}

	tests := []struct {
		Client   *Client
		Endpoint string
		URL      string
	}{
		{plain, "foo", "http://db.example.com:8000/v1/foo"},
		{plain, "/foo", "http://db.example.com:8000/v1/foo"},
		{plain, "/v1/foo", "http://db.example.com:8000/v1/foo"},
		{prefixed, "foo", "http://db.example.com:8000/api/v2/foo"},
		{prefixed, "/foo", "http://db.example.com:8000/api/v2/foo"},
		{prefixed, "/v1/foo", "http://db.example.com:8000/v1/foo"},
		{prefixed, "/v10/foo", "http://db.example.com:8000/v10/foo"},
		{prefixed, "/vx/foo", "http://db.example.com:8000/api/v2/vx/foo"},
	}
	for _, test := range tests {
		u, err := test.Client.BuildURL(test.Endpoint)
		if assert.NoError(t, err, test.Endpoint) {
			assert.Equal(t, test.URL, u.String(), test.Endpoint)
		}
	}
}

func TestDefaultHeaders(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	_, err := c.Request("/foo", nil, nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodGet, sent.Method)
		assert.Equal(t, restdata.JSONMediaType, sent.Header.Get("Accept"))
		assert.Equal(t, restdata.JSONMediaType, sent.Header.Get("Content-Type"))
	}
}

func TestRequestDefaultsMerge(t *testing.T) {
	fake := &fakeHTTP{}
	c, err := NewWithHTTPClient(Options{
		BaseURI: "http://db.example.com:8000/",
		Request: Request{
			Method: http.MethodPost,
			Host:   "virtual.example.com",
			Header: http.Header{
				"x-default": {"d"},
				"Accept":    {"text/plain"},
			},
		},
	}, fake)
	if !assert.NoError(t, err) {
		return
	}

	_, err = c.Request("/foo", nil, &Request{
		Header: http.Header{"Accept": {restdata.URIListMediaType}},
		Body:   []byte("body"),
	})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPost, sent.Method)
		assert.Equal(t, "virtual.example.com", sent.Host)
		assert.Equal(t, "d", sent.Header.Get("X-Default"))
		assert.Equal(t, restdata.URIListMediaType, sent.Header.Get("Accept"))
		assert.Equal(t, restdata.JSONMediaType, sent.Header.Get("Content-Type"))
		assert.Equal(t, []byte("body"), sent.Body)
	}

	// The per-call request did not leak into the defaults
	_, err = c.Request("/foo", nil, nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, "text/plain", sent.Header.Get("Accept"))
		assert.Empty(t, sent.Body)
	}
}

func TestSubmitPreconditions(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	abs, _ := url.Parse("http://db.example.com:8000/v1/foo")
	rel, _ := url.Parse("/v1/foo")

	_, err := c.Submit(nil, url.Values{}, &Request{})
	assert.Equal(t, ErrInvalidArgument{What: "url"}, err)
	_, err = c.Submit(rel, url.Values{}, &Request{})
	assert.Equal(t, ErrInvalidArgument{What: "url"}, err)
	_, err = c.Submit(abs, nil, &Request{})
	assert.Equal(t, ErrInvalidArgument{What: "params"}, err)
	_, err = c.Submit(abs, url.Values{}, nil)
	assert.Equal(t, ErrInvalidArgument{What: "request"}, err)
	assert.Empty(t, fake.Requests())

	_, err = c.Submit(abs, url.Values{"a": {"b"}}, &Request{})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, "/v1/foo", sent.Path)
		assert.Equal(t, url.Values{"a": {"b"}}, sent.Query)
	}
}

func TestResponse(t *testing.T) {
	fake := &fakeHTTP{Handler: func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, restdata.ErrorResponse{
			Detail: restdata.ErrorDetail{
				StatusCode:  http.StatusNotFound,
				MessageCode: "not-found",
				Message:     "No such document /a",
			},
		})
	}}
	c := newFakeClient(t, fake)
	resp, err := c.Doc("/a", nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.StatusText())

	var errResp restdata.ErrorResponse
	if assert.NoError(t, resp.Decode(&errResp)) {
		assert.Equal(t, "not-found", errResp.Detail.MessageCode)
	}

	err = checkHTTPStatus(resp)
	if assert.IsType(t, ErrorHTTP{}, err) {
		assert.EqualError(t, err, "404 Not Found: not-found: No such document /a")
	}
}
