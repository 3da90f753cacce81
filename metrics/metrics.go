// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus instrumentation of routed operations
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/lineaged/fault"
)

const namespace = "lineaged"

// Metrics - the collectors of one daemon
type Metrics struct {
	submitted *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	affected  prometheus.Counter
	paused    prometheus.Gauge
}

// New - create and register all collectors
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "submitted_total",
			Help:      "Requests submitted, by action.",
		}, []string{"action"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "failed_total",
			Help:      "Requests aborted, by action and error class.",
		}, []string{"action", "class"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "duration_seconds",
			Help:      "Time to route and apply a request.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"action"}),
		affected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "affected_assets_total",
			Help:      "Assets touched by successful requests.",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "paused",
			Help:      "1 while the router rejects submissions.",
		}),
	}

	collectors := []prometheus.Collector{
		m.submitted,
		m.failed,
		m.duration,
		m.affected,
		m.paused,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}

// Observe - record one routed request
//
// a nil receiver does nothing, so metrics are optional
func (m *Metrics) Observe(action string, start time.Time, affected int, err error) {
	if nil == m {
		return
	}
	m.submitted.WithLabelValues(action).Inc()
	m.duration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if nil != err {
		m.failed.WithLabelValues(action, fault.Class(err)).Inc()
		return
	}
	m.affected.Add(float64(affected))
}

// SetPaused - reflect the router state
func (m *Metrics) SetPaused(paused bool) {
	if nil == m {
		return
	}
	if paused {
		m.paused.Set(1)
	} else {
		m.paused.Set(0)
	}
}
