// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"context"
	"net/http"

	"github.com/gogama/fetchx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// A TraceOption configures Trace.
type TraceOption func(*traceConfig)

type traceConfig struct {
	propagator propagation.TextMapPropagator
}

// WithPropagator sets the propagator which injects the span context
// into the request headers. The default is the global propagator
// returned by otel.GetTextMapPropagator.
func WithPropagator(p propagation.TextMapPropagator) TraceOption {
	return func(c *traceConfig) {
		c.propagator = p
	}
}

// Trace returns middleware which records one client span per request
// with tracer, and propagates the span context in the request headers.
//
// The span ends with status Error if the outcome failed, and carries
// the outcome kind, cancellation flags and, when resolved, the status
// code as attributes.
//
// Trace reports the resource and method it is given. Applied with
// fetchx.Compose, it runs before the resource and per-call options are
// final, so url.full is empty and the method is the one set by outer
// layers. Apply it to the root executor to trace requests as sent:
//
//	api := fetchx.WithBase(observe.Trace(tracer)(client), base)
func Trace(tracer trace.Tracer, options ...TraceOption) fetchx.Middleware {
	cfg := traceConfig{}
	for _, o := range options {
		o(&cfg)
	}

	return func(next fetchx.Executor) fetchx.Executor {
		return fetchx.ExecutorFunc(func(ctx context.Context, resource string, opts *fetchx.Options) *fetchx.Outcome {
			if ctx == nil {
				ctx = context.Background()
			}
			method := methodOf(opts)
			ctx, span := tracer.Start(ctx, "HTTP "+method,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("http.request.method", method),
					attribute.String("url.full", resource),
				),
			)
			defer span.End()

			propagator := cfg.propagator
			if propagator == nil {
				propagator = otel.GetTextMapPropagator()
			}
			header := http.Header{}
			propagator.Inject(ctx, propagation.HeaderCarrier(header))
			if len(header) > 0 {
				opts = fetchx.Merge(opts, &fetchx.Options{Header: header})
			}

			o := execute(ctx, next, resource, opts)

			span.SetAttributes(
				attribute.String("fetchx.kind", o.Kind().String()),
				attribute.Bool("fetchx.aborted", o.Aborted()),
				attribute.Bool("fetchx.timed_out", o.TimedOut()),
			)
			if o.Resolved() {
				span.SetAttributes(attribute.Int("http.response.status_code", o.StatusCode()))
			}
			if o.Failed() {
				span.RecordError(o.Err())
				span.SetStatus(codes.Error, o.Err().Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return o
		})
	}
}
