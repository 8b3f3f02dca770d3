// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by engine runs. A nil
// *Metrics records nothing.
type Metrics struct {
	Runs           *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	Checks         *prometheus.CounterVec
	FailedElements *prometheus.CounterVec
}

// NewMetrics creates the engine collectors and registers them with reg when
// it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qcgrid",
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Quality control runs by final state (completed, aborted, error).",
		}, []string{"state"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qcgrid",
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Wall time of quality control runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		Checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qcgrid",
			Subsystem: "engine",
			Name:      "checks_total",
			Help:      "Checker invocations by rule and checker kind.",
		}, []string{"rule", "checker"}),
		FailedElements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qcgrid",
			Subsystem: "engine",
			Name:      "failed_elements_total",
			Help:      "Elements flagged by checkers, by rule.",
		}, []string{"rule"}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.RunDuration, m.Checks, m.FailedElements)
	}
	return m
}

func (m *Metrics) observeRun(state string, d time.Duration) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(state).Inc()
	m.RunDuration.Observe(d.Seconds())
}

func (m *Metrics) observeCheck(rule, checker string, failed int) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(rule, checker).Inc()
	m.FailedElements.WithLabelValues(rule).Add(float64(failed))
}
