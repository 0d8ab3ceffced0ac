// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"net/http"
)

// Executor is the interface that wraps the basic Execute method.
//
// Execute requests resource using the configuration in opts and returns
// the outcome. It never returns nil and never panics: every failure,
// including misuse of the options, is reported as a failed Outcome.
// The opts parameter may be nil, and Execute must not modify it.
//
// Client implements Executor, as do the chains built by Compose and the
// layer functions.
type Executor interface {
	Execute(ctx context.Context, resource string, opts *Options) *Outcome
}

// The ExecutorFunc type is an adapter to allow the use of ordinary
// functions as executors.
type ExecutorFunc func(ctx context.Context, resource string, opts *Options) *Outcome

// Execute calls f(ctx, resource, opts).
func (f ExecutorFunc) Execute(ctx context.Context, resource string, opts *Options) *Outcome {
	return f(ctx, resource, opts)
}

// A Middleware wraps an executor, returning a new executor which may
// change the resource or options before calling next, or inspect the
// outcome after.
type Middleware func(next Executor) Executor

// Composed is the interface implemented by executors built by Compose.
// Compose recognizes it and extends the existing composition instead
// of wrapping the composed executor as an opaque root.
type Composed interface {
	Executor
	// Root returns the innermost executor.
	Root() Executor
	// Composition returns the combined middleware between the caller
	// and the root.
	Composition() Middleware
}

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// An UnwrapFunc performs a request and returns the success value, or
// the failure error.
type UnwrapFunc func(ctx context.Context, resource string, opts *Options) (interface{}, error)

// Unwrap converts an executor into a function which reports failures
// as errors, for use with code that expects the conventional Go
// (value, error) pair.
//
// When the failure carries a structured error type, the returned error
// is still the outcome's error; use errors.As with *StatusError for the
// status, or execute the request directly to inspect the error type.
func Unwrap(e Executor) UnwrapFunc {
	if e == nil {
		panic("fetchx: nil executor")
	}

	return func(ctx context.Context, resource string, opts *Options) (interface{}, error) {
		return e.Execute(ctx, resource, opts).Unwrap()
	}
}
