// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package abort provides cancellation groups: registries of cooperating
cancellation handles which let a logical set of in-flight requests be
canceled together.

Create a Group and hand it to every request that belongs to the set,
typically through the fetchx.Options Group field:

	g := abort.NewGroup()
	go client.Execute(ctx, "https://example.com/a", &fetchx.Options{Group: g})
	go client.Execute(ctx, "https://example.com/b", &fetchx.Options{Group: g})
	...
	g.Cancel() // Both requests are aborted.

A Group is not poisoned by Cancel. Handles added after a cancel are
live until the next cancel.

Function Follow implements the observer relation used to propagate
cancellation from one context into another.
*/
package abort
