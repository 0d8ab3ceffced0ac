// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/gogama/fetchx"
	"github.com/google/uuid"
)

// RequestIDHeader is the response header in which Debug reports the
// request id it logged.
const RequestIDHeader = "X-Request-Id"

// Debug returns an executor which logs each request instead of sending
// it, and succeeds with a map holding the resource under "resource" and
// a copy of the options under "options". Each request is assigned a
// random id, logged and returned in the RequestIDHeader of a synthetic
// 200 response.
func Debug(logger logr.Logger) fetchx.Executor {
	return fetchx.ExecutorFunc(func(_ context.Context, resource string, opts *fetchx.Options) *fetchx.Outcome {
		opts = fetchx.Merge(nil, opts)
		id := uuid.NewString()
		logger.Info("Debug request",
			"id", id,
			"method", methodOf(opts),
			"resource", resource,
			"label", opts.Label,
			"params", opts.Params)

		resp := synthetic()
		resp.Header.Set(RequestIDHeader, id)
		return fetchx.Succeed(resp, nil, map[string]interface{}{
			"resource": resource,
			"options":  opts,
		})
	})
}

// Void returns an executor which succeeds with an empty map for every
// request, without sending it.
func Void() fetchx.Executor {
	return fetchx.ExecutorFunc(func(context.Context, string, *fetchx.Options) *fetchx.Outcome {
		return fetchx.Succeed(synthetic(), nil, map[string]interface{}{})
	})
}

func synthetic() *http.Response {
	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       http.NoBody,
	}
}
