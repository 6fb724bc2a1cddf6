// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus collectors for the oracle, the pool
// and the HTTP API
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shiftd"

var (
	// Registry - the collectors of this process
	Registry = prometheus.NewRegistry()

	peerPolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "peer_polls_total",
			Help:      "Storage peer requests by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	pollDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "peer_poll_duration_seconds",
			Help:      "Duration of storage peer requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"endpoint"},
	)

	storagePeers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "storage_peers",
			Help:      "Number of active storage peers.",
		},
	)

	snapshotSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "snapshot_saves_total",
			Help:      "Cluster snapshot writes by result.",
		},
		[]string{"result"},
	)

	clusterBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "cluster_total_bytes",
			Help:      "Total bytes of the last saved snapshot.",
		},
	)

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservoir",
			Name:      "admissions_total",
			Help:      "Pool admissions by transaction type and result.",
		},
		[]string{"type", "result"},
	)

	blocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservoir",
			Name:      "blocks_total",
			Help:      "Blocks applied or undone by result.",
		},
		[]string{"operation", "result"},
	)

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "HTTP API requests by route and status class.",
		},
		[]string{"route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		peerPolls,
		pollDuration,
		storagePeers,
		snapshotSaves,
		clusterBytes,
		admissions,
		blocks,
		apiRequests,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler - the /metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordPeerPoll - one storage peer request
func RecordPeerPoll(endpoint string, err error, duration time.Duration) {
	peerPolls.WithLabelValues(endpoint, result(err)).Inc()
	pollDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SetStoragePeers - current size of the peer list
func SetStoragePeers(n int) {
	storagePeers.Set(float64(n))
}

// RecordSnapshotSave - one snapshot write attempt
func RecordSnapshotSave(err error, totalBytes uint64) {
	snapshotSaves.WithLabelValues(result(err)).Inc()
	if nil == err {
		clusterBytes.Set(float64(totalBytes))
	}
}

// RecordAdmission - one pool admission
func RecordAdmission(transactionType string, err error) {
	admissions.WithLabelValues(transactionType, result(err)).Inc()
}

// RecordBlock - one block apply or undo
func RecordBlock(operation string, err error) {
	blocks.WithLabelValues(operation, result(err)).Inc()
}

// RecordRequest - one API request
func RecordRequest(route string, status int) {
	class := "5xx"
	switch {
	case status < 300:
		class = "2xx"
	case status < 400:
		class = "3xx"
	case status < 500:
		class = "4xx"
	}
	apiRequests.WithLabelValues(route, class).Inc()
}

func result(err error) string {
	if nil == err {
		return "ok"
	}
	return "error"
}
