// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"context"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gogama/fetchx"
)

// Log returns middleware which logs every outcome: successes at
// verbosity 1, failures as errors.
func Log(logger logr.Logger) fetchx.Middleware {
	return func(next fetchx.Executor) fetchx.Executor {
		return fetchx.ExecutorFunc(func(ctx context.Context, resource string, opts *fetchx.Options) *fetchx.Outcome {
			start := time.Now()
			o := execute(ctx, next, resource, opts)
			kv := []interface{}{
				"method", methodOf(opts),
				"resource", resource,
				"kind", o.Kind().String(),
				"status", o.StatusCode(),
				"duration", time.Since(start),
			}
			if o.Succeeded() {
				logger.V(1).Info("Fetch succeeded", kv...)
				return o
			}
			kv = append(kv, "aborted", o.Aborted(), "timedOut", o.TimedOut())
			logger.Error(o.Err(), "Fetch failed", kv...)
			return o
		})
	}
}

// execute calls next, replacing a nil outcome with a failure.
func execute(ctx context.Context, next fetchx.Executor, resource string, opts *fetchx.Options) *fetchx.Outcome {
	o := next.Execute(ctx, resource, opts)
	if o == nil {
		return fetchx.NoResponse(fetchx.ErrNilOutcome, false, false)
	}
	return o
}

func methodOf(opts *fetchx.Options) string {
	if opts == nil || opts.Method == "" {
		return "GET"
	}
	return strings.ToUpper(opts.Method)
}
