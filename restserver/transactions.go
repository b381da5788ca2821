// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"fmt"
	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/sirupsen/logrus"
	"time"
)

// transactionError converts a store error about the transaction named
// in the URL path.
func transactionError(err error) error {
	if _, missing := err.(memory.ErrNoSuchTransaction); missing {
		return restdata.ErrNotFound{Err: err}
	}
	return err
}

// TransactionPost opens a new transaction.  The optional "name" and
// "timeLimit" (in seconds) parameters describe it.
func (api *restAPI) TransactionPost(ctx *context, in interface{}) (interface{}, error) {
	seconds, err := ctx.IntParam("timeLimit", 0)
	if err != nil {
		return nil, err
	}
	detail := api.Store.Begin(ctx.Scope.Database, ctx.QueryParams.Get("name"),
		time.Duration(seconds)*time.Second)
	api.observeTransactions()
	api.Logger.WithFields(logrus.Fields{
		"txid":     detail.ID,
		"database": detail.Database,
	}).Debug("transaction begun")

	var location string
	err = buildURLs(api.Router, "txid", detail.ID).
		URL(&location, "transaction").
		Error
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: location,
		Body:     restdata.TransactionStatus{Status: detail},
	}, nil
}

// TransactionGet describes an open transaction.
func (api *restAPI) TransactionGet(ctx *context) (interface{}, error) {
	detail, err := api.Store.Transaction(ctx.Vars["txid"])
	if err != nil {
		return nil, transactionError(err)
	}
	return restdata.TransactionStatus{Status: detail}, nil
}

// TransactionEnd commits or rolls back a transaction, according to
// the "result" parameter.
func (api *restAPI) TransactionEnd(ctx *context, in interface{}) (interface{}, error) {
	txid := ctx.Vars["txid"]
	result := ctx.QueryParams.Get("result")
	var err error
	switch result {
	case "commit":
		err = api.Store.Commit(txid)
	case "rollback":
		err = api.Store.Rollback(txid)
	case "":
		return nil, errMissingParam{Name: "result"}
	default:
		return nil, restdata.ErrBadRequest{Err: fmt.Errorf("Invalid result %q", result)}
	}
	api.observeTransactions()
	if err != nil {
		return nil, transactionError(err)
	}
	api.Logger.WithFields(logrus.Fields{
		"txid":   txid,
		"result": result,
	}).Debug("transaction ended")
	return nil, nil
}
