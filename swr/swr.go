// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package swr

import (
	"context"
	"fmt"

	"github.com/gogama/fetchx"
	"github.com/gogama/fetchx/transient"
)

// A Fetcher performs a request and returns the success value, or an
// error describing the failure.
type Fetcher func(ctx context.Context, resource string, opts *fetchx.Options) (interface{}, error)

// An Error reports a failed request.
type Error struct {
	// Type is the decoded error body, or nil if the failure carried
	// none.
	Type interface{}
	// Status is the response status code, or zero if no response was
	// received.
	Status int
	// Err is the error of the failed outcome.
	Err error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("swr: %v", e.Err)
	}
	return fmt.Sprintf("swr: status %d: %v", e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the request might succeed.
func (e *Error) Transient() bool {
	return transient.Classify(e.Status, e.Err).Transient()
}

// Wrap converts an executor into a Fetcher.
func Wrap(e fetchx.Executor) Fetcher {
	if e == nil {
		panic("swr: nil executor")
	}

	return func(ctx context.Context, resource string, opts *fetchx.Options) (interface{}, error) {
		return raise(e.Execute(ctx, resource, opts))
	}
}

func raise(o *fetchx.Outcome) (interface{}, error) {
	if o == nil {
		return nil, &Error{Err: fetchx.ErrNilOutcome}
	}
	if o.Succeeded() {
		return o.Value(), nil
	}

	et, _ := o.ErrorType()
	return nil, &Error{
		Type:   et,
		Status: o.StatusCode(),
		Err:    o.Err(),
	}
}
