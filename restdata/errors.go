// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

func (e ErrNotFound) Unwrap() error {
	return e.Err
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

func (e ErrBadRequest) Unwrap() error {
	return e.Err
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// FromError populates an ErrorResponse from an error value and the
// HTTP status it will be sent with.
func (e *ErrorResponse) FromError(status int, err error) {
	e.Detail.StatusCode = status
	e.Detail.Status = http.StatusText(status)
	e.Detail.MessageCode = "error"
	switch err.(type) {
	case ErrNotFound:
		e.Detail.MessageCode = "not-found"
	case ErrBadRequest:
		e.Detail.MessageCode = "bad-request"
	case ErrUnsupportedMediaType:
		e.Detail.MessageCode = "unsupported-media-type"
	}
	e.Detail.Message = err.Error()
}

// ToError converts e back to a plain error carrying its message.
func (e *ErrorResponse) ToError() error {
	if e.Detail.MessageCode == "" {
		return errors.New(e.Detail.Message)
	}
	return fmt.Errorf("%s: %s", e.Detail.MessageCode, e.Detail.Message)
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//     defer func() {
//         if obj := recovered(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Detail.StatusCode = http.StatusInternalServerError
	e.Detail.Status = http.StatusText(http.StatusInternalServerError)
	e.Detail.MessageCode = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Detail.Message = recoveredError.Error()
	} else {
		e.Detail.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Detail.Stack = string(stack[:len])
}
