// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opSet     = "set"
	opGet     = "get"
	opMeasure = "measure"
	opBiasOff = "bias_off"

	outcomeOK        = "ok"
	outcomeRange     = "range"
	outcomeTransport = "transport"
	outcomeProtocol  = "protocol"
)

// Metrics holds the instrument exchange metrics.  A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	commands *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates and registers the metrics with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "instrument",
			Name:      "commands_total",
			Help:      "Number of operations issued to the analyzer by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "instrument",
			Name:      "exchange_seconds",
			Help:      "Time spent talking to the analyzer per operation.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.commands, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &m, nil
}

func (m *Metrics) observe(op string, d time.Duration, err error) {
	if m == nil {
		return
	}

	m.commands.WithLabelValues(op, outcome(err)).Inc()
	if !errors.Is(err, ErrRange) {
		m.latency.WithLabelValues(op).Observe(d.Seconds())
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrRange):
		return outcomeRange
	case errors.Is(err, ErrTransport):
		return outcomeTransport
	default:
		return outcomeProtocol
	}
}
