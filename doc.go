// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fetchx builds HTTP clients by layering small, reusable behaviors
over a single request executor. Every request produces an Outcome, a
result value which is either a success holding the decoded response or
a failure holding an error, instead of returning an error.

Create a Client to begin making requests.

	client := &fetchx.Client{}
	o := client.Execute(ctx, "https://www.example.com/api/user/1", nil)
	if o.Failed() {
		...
	}
	user := o.Value()

Options configure a single request. JSON request bodies, multipart
forms, query parameters, timeouts and cancellation are all options:

	o := client.Execute(ctx, "https://www.example.com/api/user", &fetchx.Options{
		Method:  "POST",
		Data:    map[string]interface{}{"name": "gopher"},
		Params:  map[string]interface{}{"notify": true},
		Timeout: 5 * time.Second,
	})

Layers compose behavior over an executor without modifying it. Each
layer returns a new Chain, which is itself an executor:

	api := fetchx.WithBase(client, "https://www.example.com/api")
	api = fetchx.WithOptions(api, &fetchx.Options{
		Header: http.Header{"Authorization": {"Bearer " + token}},
	})
	users := fetchx.WithMethods(fetchx.WithResource(api, "/user"))
	o := users.Get.Execute(ctx, "/1", nil)
	o = users.Post.Execute(ctx, "", &fetchx.Options{Data: newUser})

Options given to Chain.Execute win over options set by layers, and
options set by later layers win over earlier ones.

Requests sharing an abort.Group can be canceled together. Setting
AbortPrevious cancels the group's requests still in flight before
issuing a new one, which suits search-as-you-type:

	g := abort.NewGroup()
	o := client.Execute(ctx, "/search", &fetchx.Options{
		Params:        map[string]interface{}{"q": query},
		Group:         g,
		AbortPrevious: true,
	})
	if o.Aborted() {
		return
	}

Declarations pair a request with a stable key, for caches and
revalidation libraries (see package swr):

	decl := fetchx.Declare(users, "/1", nil)
	cache[decl.Key] = decl.Fetch(ctx, nil, nil)

To hook into the details of the client's request execution, install a
handler into the appropriate handler chain:

	handlers := &fetchx.HandlerGroup{}
	handlers.PushBack(fetchx.BeforeExchange, fetchx.HandlerFunc(
		func(_ fetchx.Event, e *request.Execution) {
			e.Request.Header.Set("X-Signature", sign(e.Plan))
		}),
	)
	client := &fetchx.Client{
		Handlers: handlers,
	}

For logging, tracing and metrics middleware, and executors which make
no network calls, see package observe.
*/
package fetchx
