// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package swr

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogama/fetchx"
	"golang.org/x/sync/singleflight"
)

// A Deduper collapses concurrent fetches of the same declaration and
// arguments into one exchange. The zero value is ready to use. A
// Deduper must not be copied after first use.
type Deduper struct {
	group singleflight.Group
}

// Fetch fetches decl with args through d. While a fetch for the same
// key is in flight, later callers wait for it and share its result
// instead of starting their own. The key is decl.Key combined with the
// JSON encoding of args.
//
// The shared exchange carries the values and deadline of the context
// of the caller which started it, but not its cancellation: that caller
// giving up does not fail the others. A caller whose own ctx is done
// stops waiting and returns ctx's error, while the exchange runs on
// until it completes or the deadline passes.
func Fetch[A any](d *Deduper, ctx context.Context, decl *fetchx.Declaration[A], args A) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	key := decl.Key + argsKey(args)
	ch := d.group.DoChan(key, func() (interface{}, error) {
		sctx, cancel := detach(ctx)
		defer cancel()
		return raise(decl.Fetch(sctx, args, nil))
	})

	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(detached, deadline)
	}
	return context.WithCancel(detached)
}

// Forget makes the next Fetch for decl and args start a new exchange,
// even if one is in flight.
func Forget[A any](d *Deduper, decl *fetchx.Declaration[A], args A) {
	d.group.Forget(decl.Key + argsKey(args))
}

func argsKey(args interface{}) string {
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(b)
}
