// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-mlrest/restdata"
)

// OptionsList lists every stored set of query options.
func (api *restAPI) OptionsList(ctx *context) (interface{}, error) {
	result := restdata.OptionsList{Options: []restdata.OptionsShort{}}
	for _, name := range api.Store.OptionsNames(ctx.Scope.Database) {
		summary := restdata.OptionsShort{Name: name}
		err := buildURLs(api.Router, "name", name).
			URL(&summary.URI, "options").
			Error
		if err != nil {
			return nil, err
		}
		result.Options = append(result.Options, summary)
	}
	return result, nil
}

// OptionsGet returns one stored set of query options.
func (api *restAPI) OptionsGet(ctx *context) (interface{}, error) {
	content, err := api.Store.Options(ctx.Scope.Database, ctx.Vars["name"])
	if err != nil {
		return nil, storeError(err)
	}
	return rawResponse{ContentType: restdata.JSONMediaType, Body: content}, nil
}

// OptionsPut stores a set of query options.
func (api *restAPI) OptionsPut(ctx *context, in interface{}) (interface{}, error) {
	content, valid := in.([]byte)
	if !valid {
		return nil, errUnmarshal
	}
	api.Store.PutOptions(ctx.Scope.Database, ctx.Vars["name"], content)
	return nil, nil
}
