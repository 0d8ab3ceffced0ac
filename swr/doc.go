// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package swr adapts fetchx executors and declarations to caching and
revalidation libraries, which expect fetch functions that return a
value or raise an error.

Wrap turns an executor into a Fetcher. Failures are reported as *Error
values carrying the decoded error body and the status code:

	fetch := swr.Wrap(client)
	v, err := fetch(ctx, "https://example.com/user/1", nil)
	var e *swr.Error
	if errors.As(err, &e) && e.Status == http.StatusNotFound {
		// ...
	}

A Deduper shares one exchange between concurrent fetches of the same
declaration and arguments:

	var d swr.Deduper
	user := fetchx.Declare(client, "/user/1", nil)
	v, err := swr.Fetch(&d, ctx, user, nil)
*/
package swr
