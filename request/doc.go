// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the building blocks the fetchx executor uses
to turn a resource and an option bag into an HTTP request: the request
Plan, the per-call Execution state shared with event handlers, the
multipart form encoder, and the query parameter merger.

A Plan is the logical request: method, URL, headers and a fully
buffered body. Convert it into a net/http request bound to a context
with ToRequest.

	p, err := request.NewPlan("POST", "https://example.com/upload", body)
	...
	req := p.ToRequest(ctx)

Use EncodeForm to build a multipart body from a flat mapping of field
names to values, and MergeParams to overlay query parameters onto a
resource which may already carry a query string.
*/
package request
