// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a typed HTTP client for the
// document-and-search REST API.  It builds request URLs, normalizes
// query parameters, fills in default headers, and runs
// multi-statement transactions.
//
// The server in github.com/diffeo/go-mlrest/cmd/mlrestd runs a
// compatible in-memory REST server.  Call New() with the base URI of
// that service; for instance,
//
//     c, err := restclient.New(restclient.Options{
//         BaseURI: "http://localhost:8000/",
//     })
//     resp, err := c.Doc("/example.json", nil)
//
// Every request method returns the server's response, whatever its
// HTTP status; a Go error means the request could not be built or
// sent.  A Client is safe for concurrent use.  Database() returns a
// view of the client that scopes every request to a named database,
// and Transaction() returns a view that runs every request inside a
// single server-side transaction.
package restclient

import (
	"github.com/sirupsen/logrus"
	"net/http"
	"net/url"
	"os"
)

// BaseURIEnv names the environment variable consulted when Options
// does not give a base URI.
const BaseURIEnv = "MLREST_BASE_URI"

// HTTPClient sends a single HTTP request.  *http.Client satisfies
// this interface.  Timeouts, retries, and connection reuse are all
// the responsibility of the HTTPClient.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a new Client.
type Options struct {
	// Endpoint is the path prefix of the REST API, before the
	// version segment.  Defaults to "/".
	Endpoint string `mapstructure:"endpoint"`

	// Version is the REST API version segment.  Defaults to "v1".
	Version string `mapstructure:"version"`

	// BaseURI is the absolute URI of the REST API instance.  If
	// empty, the MLREST_BASE_URI environment variable is used.
	BaseURI string `mapstructure:"base_uri"`

	// Request holds default request options.  Per-call options
	// override these, except that headers are merged one header
	// at a time.
	Request Request

	// HTTPClient sends requests.  If nil, http.DefaultClient is
	// used.
	HTTPClient HTTPClient

	// Logger receives a debug entry for every request and an
	// entry for every transaction state change.  If nil, the
	// logrus standard logger is used.
	Logger logrus.FieldLogger
}

// Client is a handle on one REST API instance.  It may also be a
// database view (see Database) or the request surface of a
// Transaction.
type Client struct {
	endpoint   string
	version    string
	baseURI    *url.URL
	request    Request
	httpClient HTTPClient
	logger     logrus.FieldLogger

	// database is non-empty on a database view.
	database string

	// tx is non-nil on the client embedded in a Transaction.
	tx *Transaction
}

// New creates a new Client that speaks to an external REST server.
func New(options Options) (*Client, error) {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return NewWithHTTPClient(options, httpClient)
}

// NewWithHTTPClient creates a new Client that sends requests through
// an explicitly provided HTTP client, ignoring options.HTTPClient.
func NewWithHTTPClient(options Options, httpClient HTTPClient) (*Client, error) {
	if httpClient == nil {
		return nil, ErrMissingDependency{Name: "http client"}
	}

	baseURI := options.BaseURI
	if baseURI == "" {
		baseURI = os.Getenv(BaseURIEnv)
	}
	if baseURI == "" {
		return nil, ErrMissingBaseURI
	}
	base, err := url.Parse(baseURI)
	if err != nil {
		return nil, ErrInvalidURL{URL: baseURI, Err: err}
	}
	if !base.IsAbs() {
		return nil, ErrInvalidURL{URL: baseURI}
	}

	c := &Client{
		endpoint:   options.Endpoint,
		version:    options.Version,
		baseURI:    base,
		request:    options.Request,
		httpClient: httpClient,
		logger:     options.Logger,
	}
	if c.endpoint == "" {
		c.endpoint = "/"
	}
	if c.version == "" {
		c.version = "v1"
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
	return c, nil
}

// BaseURI returns the absolute URI requests are resolved against.
func (c *Client) BaseURI() string {
	return c.baseURI.String()
}

// Endpoint returns the configured API path prefix.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Version returns the configured API version segment.
func (c *Client) Version() string {
	return c.version
}

// DatabaseName returns the name of the database this client is bound
// to, or an empty string if it uses the server's default database.
func (c *Client) DatabaseName() string {
	return c.database
}

// derive makes a copy of c sharing its read-only configuration.
func (c *Client) derive() *Client {
	child := *c
	return &child
}
