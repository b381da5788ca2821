// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Request holds the parts of an API request other than its URL.
// Zero fields are filled in from the client's default request.
type Request struct {
	// Method is the HTTP method; empty means GET.
	Method string

	// Header holds request headers.  These are merged with default
	// headers one header at a time.
	Header http.Header

	// Body holds the request body, if any.
	Body []byte

	// Host overrides the Host: header sent to the server.
	Host string
}

// versionedPath matches endpoints that already name an API version,
// which bypass the configured endpoint prefix and version.
var versionedPath = regexp.MustCompile(`^/v[0-9]+/`)

// BuildURL resolves an API endpoint to an absolute URL.  An endpoint
// such as "/v1/search" is taken relative to the base URI as is;
// anything else, such as "search" or "/search", is placed under the
// configured endpoint prefix and version.
func (c *Client) BuildURL(endpoint string) (*url.URL, error) {
	relative := endpoint
	if !versionedPath.MatchString(endpoint) {
		separator := "/"
		if strings.HasPrefix(endpoint, "/") {
			separator = ""
		}
		relative = c.endpoint + c.version + separator + endpoint
	}
	u, err := c.baseURI.Parse(relative)
	if err != nil {
		return nil, ErrInvalidURL{URL: relative, Err: err}
	}
	return u, nil
}

// prepareRequest merges a per-call request with the client defaults
// and fills in JSON content negotiation headers.  Neither input is
// modified.
func (c *Client) prepareRequest(req *Request) *Request {
	out := &Request{
		Method: c.request.Method,
		Body:   c.request.Body,
		Host:   c.request.Host,
		Header: make(http.Header),
	}
	for k, v := range c.request.Header {
		out.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	if req != nil {
		if req.Method != "" {
			out.Method = req.Method
		}
		if req.Body != nil {
			out.Body = req.Body
		}
		if req.Host != "" {
			out.Host = req.Host
		}
		for k, v := range req.Header {
			out.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
		}
	}
	if out.Header.Get("Accept") == "" {
		out.Header.Set("Accept", restdata.JSONMediaType)
	}
	if out.Header.Get("Content-Type") == "" {
		out.Header.Set("Content-Type", restdata.JSONMediaType)
	}
	return out
}

// Request makes an arbitrary REST API request.  params may be nil,
// url.Values, Params, or any other type NormalizeParams accepts.  req
// may be nil.
func (c *Client) Request(endpoint string, params interface{}, req *Request) (*Response, error) {
	values, err := NormalizeParams(params)
	if err != nil {
		return nil, err
	}
	u, err := c.BuildURL(endpoint)
	if err != nil {
		return nil, err
	}
	return c.Submit(u, values, c.prepareRequest(req))
}

// requestTemplate is Request for an endpoint given as a URI
// template, such as "/values/{name}".
func (c *Client) requestTemplate(template string, vars map[string]interface{}, params interface{}, req *Request) (*Response, error) {
	endpoint, err := expand(template, vars)
	if err != nil {
		return nil, err
	}
	return c.Request(endpoint, params, req)
}

// validateSubmission checks the arguments to Submit.
func validateSubmission(u *url.URL, params url.Values, req *Request) error {
	if u == nil || !u.IsAbs() {
		return ErrInvalidArgument{What: "url"}
	}
	if params == nil {
		return ErrInvalidArgument{What: "params"}
	}
	if req == nil {
		return ErrInvalidArgument{What: "request"}
	}
	return nil
}

// Submit sends a fully built request: u must be absolute, and params
// become its query string.  Unlike Request, no defaults are applied.
// A database view adds its database parameter last; a transaction
// waits for the transaction to open and adds its txid.
func (c *Client) Submit(u *url.URL, params url.Values, req *Request) (*Response, error) {
	if c.tx != nil {
		return c.tx.submit(u, params, req)
	}
	if err := validateSubmission(u, params, req); err != nil {
		return nil, err
	}
	if c.database != "" {
		params.Set("database", c.database)
	}
	return c.dispatch(u, params, req)
}
