// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// A Declaration pairs a request with a stable key identifying it, for
// use by caches and revalidation libraries. A Declaration is immutable
// and safe for concurrent use if its executor is.
type Declaration[A any] struct {
	// Key identifies the declared request. See the Key function.
	Key string
	// Resource is the declared resource.
	Resource string

	fetch func(ctx context.Context, args A, extra *Options) *Outcome
}

// Fetch executes the declared request. Options in extra are merged
// over the declared options.
func (d *Declaration[A]) Fetch(ctx context.Context, args A, extra *Options) *Outcome {
	return d.fetch(ctx, args, extra)
}

// Declare declares a request for resource with fixed options. The key
// covers the resource and opts.Params. The declared method is kept.
//
// Arguments passed to Fetch are ignored.
func Declare(e Executor, resource string, opts *Options) *Declaration[interface{}] {
	if e == nil {
		panic("fetchx: nil executor")
	}

	opts = Merge(nil, opts)
	key := Key(resource, opts.Params)
	opts.Key = key

	return &Declaration[interface{}]{
		Key:      key,
		Resource: resource,
		fetch: func(ctx context.Context, _ interface{}, extra *Options) *Outcome {
			return e.Execute(ctx, resource, Merge(opts, extra))
		},
	}
}

// DeclareFunc declares a request for resource whose options are built
// from the arguments of each Fetch. The key covers only the resource.
//
// Requests declared with DeclareFunc are mutations: the method is POST
// unless build names PUT, PATCH or DELETE. If build fails or panics,
// Fetch returns an unresolved failure with a *ConfigError and e is not
// called.
func DeclareFunc[A any](e Executor, resource string, build func(args A) (*Options, error)) *Declaration[A] {
	if e == nil {
		panic("fetchx: nil executor")
	}
	if build == nil {
		panic("fetchx: nil options builder")
	}

	key := Key(resource, nil)

	return &Declaration[A]{
		Key:      key,
		Resource: resource,
		fetch: func(ctx context.Context, args A, extra *Options) *Outcome {
			opts, err := buildOptions(build, args)
			if err != nil {
				return NoResponse(configErr("declare", err), false, false)
			}

			method := http.MethodPost
			if opts != nil && mutating(opts.Method) {
				method = strings.ToUpper(opts.Method)
			}
			opts = Merge(opts, &Options{Key: key, Method: method})
			return e.Execute(ctx, resource, Merge(opts, extra))
		},
	}
}

func buildOptions[A any](build func(A) (*Options, error), args A) (opts *Options, err error) {
	defer func() {
		if r := recover(); r != nil {
			opts, err = nil, &PanicError{Value: r}
		}
	}()

	return build(args)
}

func mutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Key returns the canonical key of a request for resource with the
// given query parameters. Equal resources and structurally equal
// params produce equal keys, regardless of map insertion order.
//
//	fetchx.Key("/user", map[string]interface{}{"b": 2, "a": 1})
//	// ["/user",{"params":{"a":1,"b":2}}]
func Key(resource string, params map[string]interface{}) string {
	if params == nil {
		params = map[string]interface{}{}
	}

	b, err := json.Marshal([]interface{}{resource, map[string]interface{}{"params": params}})
	if err != nil {
		return fmt.Sprintf("[%q,{params:%v}]", resource, params)
	}

	return string(b)
}
