// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
)

// A Chain is an executor built from a root executor and a composition
// of middleware. Chains are immutable: With and Compose return new
// chains, so one chain may be extended in several directions.
//
// A Chain is safe for concurrent use if its root and middleware are.
type Chain struct {
	root     Executor
	composed Middleware
}

func identity(next Executor) Executor {
	return next
}

// Compose returns a chain which runs m between the caller and e.
//
// If e is itself composed, Compose extends its composition with m, so
// that e's middleware stays outermost and m runs next to the root. If
// e is not composed, it becomes the root. A nil m leaves the
// composition unchanged.
func Compose(e Executor, m Middleware) *Chain {
	if e == nil {
		panic("fetchx: nil executor")
	}

	root, prior := e, Middleware(identity)
	if c, ok := e.(Composed); ok {
		root, prior = c.Root(), c.Composition()
		if prior == nil {
			prior = identity
		}
	}

	if m == nil {
		return &Chain{root: root, composed: prior}
	}

	return &Chain{
		root: root,
		composed: func(next Executor) Executor {
			return prior(m(next))
		},
	}
}

// Execute runs the composition with an empty resource and empty
// options, ending in the root executor. On the way to the root, path is
// appended to the resource built by the middleware, and opts is merged
// over the options built by the middleware, so that per-call options
// win over layer defaults.
//
// A panicking middleware, or one producing no outcome, yields an
// unresolved failure.
func (c *Chain) Execute(ctx context.Context, path string, opts *Options) (o *Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = NoResponse(&PanicError{Value: r}, false, false)
		} else if o == nil {
			o = NoResponse(ErrNilOutcome, false, false)
		}
	}()

	capping := ExecutorFunc(func(ctx context.Context, resource string, options *Options) *Outcome {
		return c.root.Execute(ctx, resource+path, Merge(options, opts))
	})

	return c.composed(capping).Execute(ctx, "", &Options{})
}

// With returns a new chain extending c with m. It is shorthand for
// Compose(c, m).
func (c *Chain) With(m Middleware) *Chain {
	return Compose(c, m)
}

// Root returns the executor at the end of the chain.
func (c *Chain) Root() Executor {
	return c.root
}

// Composition returns the combined middleware of the chain.
func (c *Chain) Composition() Middleware {
	return c.composed
}
