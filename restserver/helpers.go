// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains various HTTP-related helpers.

import (
	"fmt"
	"github.com/gorilla/mux"
	"net/url"
)

type urlBuilder struct {
	Router *mux.Router
	Params []string
	Query  url.Values
	Error  error
}

func buildURLs(router *mux.Router, params ...string) *urlBuilder {
	return &urlBuilder{Router: router, Params: params}
}

// WithQuery adds a query parameter to every URL built afterwards.
func (u *urlBuilder) WithQuery(key, value string) *urlBuilder {
	if u.Query == nil {
		u.Query = url.Values{}
	}
	u.Query.Add(key, value)
	return u
}

func (u *urlBuilder) Route(route string) *mux.Route {
	if u.Error != nil {
		return nil
	}
	r := u.Router.Get(route)
	if r == nil {
		u.Error = fmt.Errorf("No such route %q", route)
	}
	return r
}

func (u *urlBuilder) URL(out *string, route string) *urlBuilder {
	var r *mux.Route
	var url *url.URL
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		url, u.Error = r.URL(u.Params...)
	}
	if u.Error == nil {
		if u.Query != nil {
			url.RawQuery = u.Query.Encode()
		}
		*out = url.String()
	}
	return u
}
