// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Mlrestd serves the document-and-search REST API from an in-memory
// store.  This is intended for local development and for testing
// clients; nothing is persisted.
package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restserver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// requestLogger returns negroni middleware that logs every request
// to a logrus logger.
func requestLogger(logger logrus.FieldLogger) negroni.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		start := time.Now()
		next(rw, req)
		res := rw.(negroni.ResponseWriter)
		logger.WithFields(logrus.Fields{
			"method":  req.Method,
			"url":     req.URL.String(),
			"status":  res.Status(),
			"elapsed": time.Since(start),
		}).Info("request")
	}
}

// newHandler builds the complete HTTP handler: the REST API, the
// metrics endpoint, and middleware.
func newHandler(store *memory.Store, logRequests bool) http.Handler {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, store, logrus.StandardLogger())
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New(negroni.NewRecovery())
	if logRequests {
		n.Use(requestLogger(logrus.StandardLogger()))
	}
	n.UseHandler(r)
	return n
}

func main() {
	httpBind := flag.String("http", ":8000",
		"[ip]:port for HTTP REST interface")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	logLevel := flag.String("log-level", "info", "logging level")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Invalid log level")
		return
	}
	logrus.SetLevel(level)

	handler := newHandler(memory.New(), *logRequests)
	logrus.WithFields(logrus.Fields{
		"http": *httpBind,
	}).Info("serving")
	err = http.ListenAndServe(*httpBind, handler)
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server failed")
}
