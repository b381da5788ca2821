// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/prometheus/client_golang/prometheus"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "mlrest",
		Name:      "requests_total",
		Help:      "REST API requests by resource and HTTP status",
	},
	[]string{
		"route",
		"code",
	},
)

var openTransactions = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "mlrest",
		Name:      "open_transactions",
		Help:      "Number of open multi-statement transactions",
	},
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(openTransactions)
}

// observeTransactions records the current number of open
// transactions.
func (api *restAPI) observeTransactions() {
	openTransactions.Set(float64(len(api.Store.OpenTransactions())))
}
