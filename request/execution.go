// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"
)

// An Execution represents the state of a single request exchange made
// by the fetchx executor.
//
// The executor creates an Execution once the request plan is built and
// updates it as the exchange progresses. Event handlers receive it at
// each plug-in point. Handlers may read the exported fields and store
// their own data with SetValue, but must otherwise leave the fields
// unmodified, with the exception of reasonable changes to Request
// before it is sent (for example to sign it).
type Execution struct {
	// Plan is the request plan being executed. It is never nil.
	Plan *Plan

	// Label is the request label, if one was configured.
	Label string

	// Start is the time the exchange started.
	Start time.Time

	// End is the time the outcome was decided. It is the zero value
	// until then.
	End time.Time

	// Request is the HTTP request sent, or about to be sent.
	Request *http.Request

	// Response is the HTTP response received. It is nil until a
	// response arrives, and stays nil if the exchange failed without
	// one.
	Response *http.Response

	// Body is the buffered response body. It is nil until the body has
	// been read.
	Body []byte

	// Err is the error which ended the exchange, if any. For resolved
	// but unsuccessful exchanges it describes why the response was
	// rejected.
	Err error

	// Aborted indicates the exchange was canceled before it completed.
	Aborted bool

	// TimedOut indicates the exchange was canceled because its timeout
	// elapsed. TimedOut implies Aborted.
	TimedOut bool

	data context.Context
}

// StatusCode returns the status code of the HTTP response, or zero if
// there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers, or the nil header if there
// is no response.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Duration returns the duration of the exchange: zero before it
// starts, End minus Start once it has ended, and the time elapsed since
// Start otherwise.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the exchange has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the exchange outcome has been decided.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// SetValue allows event handlers to store arbitrary data in the
// execution. The key follows the same rules as the key parameter of
// context.WithValue.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
