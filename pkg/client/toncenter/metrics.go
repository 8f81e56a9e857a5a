// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package toncenter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nft",
		Subsystem: "toncenter",
		Name:      "requests",
		Help:      "Number of JSON-RPC requests by method and outcome",
	}, []string{"method", "status"})

	mLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nft",
		Subsystem: "toncenter",
		Name:      "request_duration",
		Help:      "JSON-RPC request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)
