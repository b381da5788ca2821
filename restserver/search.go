// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-mlrest/restdata"
)

// defaultPageLength is the number of results in a search page if the
// request does not say.
const defaultPageLength = 10

// searchRequest is the part of a combined query body this server
// understands: the search text.  Other fields are ignored.
type searchRequest struct {
	Search searchCriteria `json:"search"`
}

type searchCriteria struct {
	QText string `json:"qtext"`
}

func (api *restAPI) search(ctx *context, in searchRequest) (interface{}, error) {
	start, err := ctx.IntParam("start", 1)
	if err != nil {
		return nil, err
	}
	pageLength, err := ctx.IntParam("pageLength", defaultPageLength)
	if err != nil {
		return nil, err
	}
	if start < 1 {
		start = 1
	}
	if pageLength < 0 {
		pageLength = 0
	}

	uris, err := api.Store.Search(ctx.Scope, ctx.Query(in.Search.QText))
	if err != nil {
		return nil, storeError(err)
	}
	result := restdata.SearchResponse{
		Total:      len(uris),
		Start:      start,
		PageLength: pageLength,
		Results:    []restdata.SearchResult{},
	}
	for i := start - 1; i < len(uris) && i < start-1+pageLength; i++ {
		result.Results = append(result.Results, restdata.SearchResult{
			Index: i + 1,
			URI:   uris[i],
		})
	}
	return result, nil
}

// SearchGet searches using only query parameters.
func (api *restAPI) SearchGet(ctx *context) (interface{}, error) {
	return api.search(ctx, searchRequest{})
}

// SearchPost searches using a query body and query parameters.
func (api *restAPI) SearchPost(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(searchRequest)
	if !valid {
		return nil, errUnmarshal
	}
	return api.search(ctx, req)
}

// SearchDelete deletes every document matching the query
// parameters.  With no parameters it deletes every document in the
// database.
func (api *restAPI) SearchDelete(ctx *context) (interface{}, error) {
	_, err := api.Store.DeleteMatching(ctx.Scope, ctx.Query(""))
	if err != nil {
		return nil, storeError(err)
	}
	return nil, nil
}

func (api *restAPI) suggest(ctx *context, in searchRequest) (interface{}, error) {
	prefix := ctx.QueryParams.Get("partial-q")
	suggestions, err := api.Store.Suggest(ctx.Scope, prefix, ctx.Query(in.Search.QText))
	if err != nil {
		return nil, storeError(err)
	}
	limit, err := ctx.IntParam("limit", defaultPageLength)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return restdata.SuggestResponse{Suggestions: suggestions}, nil
}

// SuggestGet suggests completions using only query parameters.
func (api *restAPI) SuggestGet(ctx *context) (interface{}, error) {
	return api.suggest(ctx, searchRequest{})
}

// SuggestPost suggests completions using a query body and query
// parameters.
func (api *restAPI) SuggestPost(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(searchRequest)
	if !valid {
		return nil, errUnmarshal
	}
	return api.suggest(ctx, req)
}
