// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"net/http"
	"strings"
)

// WithResource returns a chain which appends suffix to the resource.
func WithResource(e Executor, suffix string) *Chain {
	return WithResourceFunc(e, func(resource string) string {
		return resource + suffix
	})
}

// WithResourceFunc returns a chain which replaces the resource with
// f(resource).
func WithResourceFunc(e Executor, f func(resource string) string) *Chain {
	if f == nil {
		panic("fetchx: nil resource func")
	}

	return Compose(e, func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, resource string, opts *Options) *Outcome {
			return next.Execute(ctx, f(resource), opts)
		})
	})
}

// WithBase returns a chain which prefixes the resource with base,
// typically a scheme and host.
//
//	api := fetchx.WithBase(client, "https://example.com/api")
//	user := fetchx.WithResource(api, "/user")
//	o := user.Execute(ctx, "/1", nil) // GET https://example.com/api/user/1
func WithBase(e Executor, base string) *Chain {
	return WithResourceFunc(e, func(resource string) string {
		return base + resource
	})
}

// WithOptions returns a chain which merges opts over the options built
// by the layers before it. Options given to Chain.Execute still take
// priority. WithOptions keeps a copy of opts, so later changes to opts
// have no effect on the chain.
func WithOptions(e Executor, opts *Options) *Chain {
	layer := Merge(nil, opts)
	return Compose(e, func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, resource string, options *Options) *Outcome {
			return next.Execute(ctx, resource, Merge(options, layer))
		})
	})
}

// WithOptionsFunc is like WithOptions, but computes the layer's options
// on every call by passing f a copy of the options built so far. The
// result of f, which may be nil, is merged over them.
func WithOptionsFunc(e Executor, f func(*Options) *Options) *Chain {
	if f == nil {
		panic("fetchx: nil options func")
	}

	return Compose(e, func(next Executor) Executor {
		return ExecutorFunc(func(ctx context.Context, resource string, options *Options) *Outcome {
			return next.Execute(ctx, resource, Merge(options, f(Merge(options, nil))))
		})
	})
}

// Methods is a set of chains differing only by HTTP method. Executing
// a Methods directly issues a GET.
type Methods struct {
	*Chain

	Get    *Chain
	Head   *Chain
	Post   *Chain
	Put    *Chain
	Delete *Chain
	// Del is the same as Delete.
	Del   *Chain
	Patch *Chain

	base Executor
}

// WithMethods returns the method shorthands for e.
func WithMethods(e Executor) *Methods {
	if e == nil {
		panic("fetchx: nil executor")
	}

	m := &Methods{base: e}
	m.Get = m.Method(http.MethodGet)
	m.Chain = m.Get
	m.Head = m.Method(http.MethodHead)
	m.Post = m.Method(http.MethodPost)
	m.Put = m.Method(http.MethodPut)
	m.Delete = m.Method(http.MethodDelete)
	m.Del = m.Delete
	m.Patch = m.Method(http.MethodPatch)
	return m
}

// Method returns a chain issuing requests with the named method, which
// is upper-cased.
func (m *Methods) Method(name string) *Chain {
	return WithOptions(m.base, &Options{Method: strings.ToUpper(name)})
}
