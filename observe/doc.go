// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package observe provides executors which stand in for a real client,
and middleware which observe the requests made through an executor.

Debug and Void make no network calls, and may replace any executor in
tests or during development:

	api := fetchx.WithBase(observe.Debug(logger), "https://example.com/api")

Log, Trace and Metrics are middleware. Middleware added by
fetchx.Compose runs before the resource and options of the call are
final, so apply observers directly to the root executor to see the
request as it is sent:

	mw, err := observe.Metrics(prometheus.DefaultRegisterer)
	...
	root := mw(observe.Trace(tracer)(client))
	api := fetchx.WithBase(root, "https://example.com/api")
*/
package observe
