// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/fetchx"
	"github.com/gogama/fetchx/transient"
	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	failuresTotal    *prometheus.CounterVec
}

// Metrics returns middleware which records Prometheus metrics for
// every request:
//
//	fetchx_requests_total{method,kind}
//	fetchx_request_duration_seconds{method}
//	fetchx_requests_in_flight{method}
//	fetchx_failures_total{method,category}
//
// The category label of failures is the transient.Category of the
// failure. Collectors already registered with reg by an earlier call
// are reused, so Metrics may be called more than once with the same
// registerer.
//
// The method label comes from the options the middleware is given.
// Applied with fetchx.Compose, it sees only methods set by outer
// layers, and a method given per call is labelled GET. Apply it to the
// root executor to label requests as sent.
func Metrics(reg prometheus.Registerer) (fetchx.Middleware, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &collector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetchx_requests_total",
				Help: "Total number of requests executed, by outcome kind.",
			},
			[]string{"method", "kind"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fetchx_request_duration_seconds",
				Help:    "Duration of requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		requestsInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fetchx_requests_in_flight",
				Help: "Number of requests currently in flight.",
			},
			[]string{"method"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetchx_failures_total",
				Help: "Total number of failed requests, by transience category.",
			},
			[]string{"method", "category"},
		),
	}

	var err error
	if c.requestsTotal, err = register(reg, c.requestsTotal); err != nil {
		return nil, err
	}
	if c.requestDuration, err = register(reg, c.requestDuration); err != nil {
		return nil, err
	}
	if c.requestsInFlight, err = register(reg, c.requestsInFlight); err != nil {
		return nil, err
	}
	if c.failuresTotal, err = register(reg, c.failuresTotal); err != nil {
		return nil, err
	}

	return c.middleware, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (c *collector) middleware(next fetchx.Executor) fetchx.Executor {
	return fetchx.ExecutorFunc(func(ctx context.Context, resource string, opts *fetchx.Options) *fetchx.Outcome {
		method := methodOf(opts)
		inFlight := c.requestsInFlight.WithLabelValues(method)
		inFlight.Inc()
		defer inFlight.Dec()
		start := time.Now()

		o := execute(ctx, next, resource, opts)

		c.requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		c.requestsTotal.WithLabelValues(method, o.Kind().String()).Inc()
		if o.Failed() {
			category := transient.Classify(o.StatusCode(), o.Err())
			c.failuresTotal.WithLabelValues(method, category.String()).Inc()
		}
		return o
	})
}
