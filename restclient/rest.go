// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides generic REST client code.

import (
	"bytes"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/jtacoma/uritemplates"
	"github.com/sirupsen/logrus"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the numeric HTTP status, e.g. 200.
	StatusCode int

	// Status is the HTTP status line, e.g. "200 OK".
	Status string

	// Header holds the response headers.
	Header http.Header

	// Body holds the entire response body.
	Body []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the reason phrase of the status line, e.g. "OK".
func (r *Response) StatusText() string {
	prefix := strconv.Itoa(r.StatusCode) + " "
	if strings.HasPrefix(r.Status, prefix) {
		return r.Status[len(prefix):]
	}
	return http.StatusText(r.StatusCode)
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode decodes a JSON response body into out, which must be of
// pointer type.
func (r *Response) Decode(out interface{}) error {
	return restdata.DecodeBytes(r.Header.Get("Content-Type"), r.Body, out)
}

// withBody returns a copy of r with the same status and headers but a
// different body.
func (r *Response) withBody(contentType string, body []byte) *Response {
	header := make(http.Header, len(r.Header))
	for k, v := range r.Header {
		header[k] = append([]string(nil), v...)
	}
	header.Set("Content-Type", contentType)
	header.Del("Content-Length")
	return &Response{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Header:     header,
		Body:       body,
	}
}

// expand fills in a URI template naming an endpoint path.
func expand(template string, vars map[string]interface{}) (string, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return "", err
	}
	return tmpl.Expand(vars)
}

// dispatch actually sends a request.  params replace any query string
// already on u.
func (c *Client) dispatch(u *url.URL, params url.Values, req *Request) (resp *Response, err error) {
	u.RawQuery = params.Encode()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}
	if req.Host != "" {
		httpReq.Host = req.Host
	}

	log := c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    u.String(),
	})
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithField("err", err).Debug("request failed")
		return nil, err
	}
	defer func() {
		err = firstError(err, httpResp.Body.Close())
	}()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	log.WithField("status", httpResp.StatusCode).Debug("request")
	resp = &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       data,
	}
	return resp, nil
}

// ErrorHTTP is a catch-all error for non-successes returned from the
// REST endpoint, where the caller needed success.
type ErrorHTTP struct {
	// Response holds the failing HTTP response.
	Response *Response

	// Err holds the server-provided error, if the body could be
	// decoded as one.
	Err error
}

func (e ErrorHTTP) Error() string {
	if e.Err != nil {
		return e.Response.Status + ": " + e.Err.Error()
	}
	return e.Response.Status
}

func (e ErrorHTTP) Unwrap() error {
	return e.Err
}

// checkHTTPStatus examines a response and returns an error if it is
// not successful.
func checkHTTPStatus(resp *Response) error {
	if resp.OK() {
		return nil
	}

	// Take a shot at decoding it as a better error
	var errResp restdata.ErrorResponse
	err := resp.Decode(&errResp)
	if err == nil && errResp.Detail.Message != "" {
		return ErrorHTTP{Response: resp, Err: errResp.ToError()}
	}
	return ErrorHTTP{Response: resp}
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
