// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Document bodies are stored exactly as sent, so handlers may ask for
// the raw request body instead of a decoded object, and may return
// a rawResponse to send bytes back unchanged.

import (
	"errors"
	"fmt"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"io/ioutil"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// knownTypes lists the media types a response can be sent as.  Every
// JSON variant gets the same JSON body.
var knownTypes = map[string]bool{
	"text/json":               true,
	restdata.JSONMediaType:    true,
	restdata.RDFJSONMediaType: true,
	restdata.URIListMediaType: true,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errNotImplemented is returned from an arbitrary handler function if
// the actual function is not implemented.
type errNotImplemented struct {
	Text string
}

func (e errNotImplemented) Error() string {
	if e.Text == "" {
		return "Not implemented"
	}
	return e.Text
}

func (e errNotImplemented) HTTPStatus() int {
	return http.StatusNotImplemented
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// responseCreated is returned as a value response from handler
// functions that want to indicate that a new resource was created.
type responseCreated struct {
	// Location holds the canonical URL to the newly created resource.
	Location string

	// Body contains the object sent in the body of the response.
	Body interface{}
}

// rawResponse is returned from handler functions that send a body
// that is already serialized, such as a stored document.
type rawResponse struct {
	ContentType string
	Body        []byte
}

type resourceHandler struct {
	// Name identifies the resource in request metrics.
	Name string

	// Representation is an object representing this resource.
	// A copy of this object will be passed to handler functions.
	// If nil, handler functions receive the raw request body as
	// a []byte instead.
	Representation interface{}

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Logger receives a message for every failure the server
	// causes itself.
	Logger logrus.FieldLogger

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Put, if non-nil, updates the representation of the object.
	// The interface parameter is guaranteed to be the same type
	// as Representation.  The return can be any useful return
	// value.
	Put func(*context, interface{}) (interface{}, error)

	// Post, if non-nil, takes some arbitrary action.  The
	// interface parameter is guaranteed to be the same type as
	// Representation, though in this case this is not necessarily
	// a representation of the resource.  The return can be any
	// useful return value, include responseCreated.
	Post func(*context, interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the object.  The return can be
	// any useful return value.
	Delete func(*context) (interface{}, error)
}

// readBody produces the input value for a PUT or POST handler.
func (h *resourceHandler) readBody(req *http.Request) (interface{}, error) {
	body, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	if h.Representation == nil {
		return body, nil
	}
	in := reflect.New(reflect.TypeOf(h.Representation))
	if len(body) > 0 {
		err = restdata.DecodeBytes(req.Header.Get("Content-Type"), body, in.Interface())
		if err != nil {
			if _, isStatus := err.(restdata.ErrorStatus); !isStatus {
				err = restdata.ErrBadRequest{Err: err}
			}
			return nil, err
		}
	}
	return in.Elem().Interface(), nil
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *context
		in, out      interface{}
		err          error
		status       int
		responseType string
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			h.Logger.WithFields(logrus.Fields{
				"resource": h.Name,
				"panic":    response.Detail.Message,
			}).Error("handler panicked")
			requestsTotal.With(prometheus.Labels{
				"route": h.Name,
				"code":  strconv.Itoa(http.StatusInternalServerError),
			}).Inc()
			body, _ := restdata.Encode(response)
			resp.Header().Set("Content-Type", restdata.JSONMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			_, _ = resp.Write(body)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	if err == nil {
		// Errors here by default are in the header setup
		status = http.StatusBadRequest
		responseType, err = negotiateResponse(req)
		if err != nil {
			// Gotta pick something
			responseType = restdata.JSONMediaType
		}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}
	if err == nil {
		ctx.ResponseType = responseType
	}

	// Read the body, if it's there
	if err == nil && (req.Method == http.MethodPut || req.Method == http.MethodPost) {
		in, err = h.readBody(req)
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		// If anything else goes wrong here, it's an error in
		// client code
		status = http.StatusInternalServerError
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case http.MethodPut:
			if h.Put != nil {
				out, err = h.Put(ctx, in)
			}
		case http.MethodPost:
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		case http.MethodDelete:
			if h.Delete != nil {
				out, err = h.Delete(ctx)
			}
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		if status >= http.StatusInternalServerError {
			h.Logger.WithFields(logrus.Fields{
				"resource": h.Name,
				"err":      err,
			}).Warn("request failed")
		}
		response := restdata.ErrorResponse{}
		response.FromError(status, err)
		out = response
	} else if out == nil {
		status = http.StatusNoContent
	} else if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		if created.Location != "" {
			resp.Header().Set("Location", created.Location)
		}
		out = created.Body
	} else {
		status = http.StatusOK
	}
	if req.Method == http.MethodHead {
		out = nil
	}
	requestsTotal.With(prometheus.Labels{
		"route": h.Name,
		"code":  strconv.Itoa(status),
	}).Inc()

	// Serialize the response.  A JSON response is labeled with the
	// negotiated type if that is some flavor of JSON.
	var body []byte
	contentType := responseType
	if raw, isRaw := out.(rawResponse); isRaw {
		body = raw.Body
		contentType = raw.ContentType
	} else if out != nil {
		if !restdata.IsJSON(contentType) {
			contentType = restdata.JSONMediaType
		}
		body, err = restdata.Encode(out)
		if err != nil {
			response := restdata.ErrorResponse{}
			response.FromError(http.StatusInternalServerError, err)
			status = http.StatusInternalServerError
			contentType = restdata.JSONMediaType
			body, _ = restdata.Encode(response)
		}
	}

	// Actually send the response.  If the writer fails here we've
	// already written an HTTP status line, so there is nothing
	// better to do than drop the error.
	if body != nil {
		resp.Header().Set("Content-Type", contentType)
	}
	resp.WriteHeader(status)
	if body != nil {
		_, _ = resp.Write(body)
	}
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if knownTypes[mediaType] {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*":
		return restdata.JSONMediaType, nil
	case "text/*":
		return "text/json", nil
	default:
		return bestType, nil
	}
}
