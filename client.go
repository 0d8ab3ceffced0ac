// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gogama/fetchx/abort"
	"github.com/gogama/fetchx/request"
	"github.com/gogama/fetchx/timeout"
)

// LabelHeader is the request header carrying Options.Label.
const LabelHeader = "X-Request-Label"

// A Client is the primitive request executor. Its zero value is a
// valid configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, runs no event handlers and discards its logs.
//
// Client's HTTPDoer typically has an internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for all details of sending the HTTP request and receiving
// the response, such as redirects, while Client adds:
//
// • request body construction from JSON data, form fields or files;
//
// • query parameter merging;
//
// • cancellation by caller context, extra signal, group or timeout, with
// the cause of the cancellation preserved in the outcome;
//
// • buffering and JSON decoding of the response body;
//
// • strict response validation; and
//
// • event handlers at designated plug-in points.
//
// Client never reports failure through a Go error or a panic. Every
// call produces an Outcome.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses. Options.HTTPDoer overrides it per request.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a request execution.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Logger receives exchange logs at verbosity 1, and rejected
	// requests as errors. Options.Logger overrides it per request.
	Logger logr.Logger
}

type exchange struct {
	resp *http.Response
	err  error
}

// Execute requests resource, which may be an absolute URL or a path
// resolved by the HTTPDoer, configured by opts. A nil ctx is treated as
// context.Background, and a nil opts as the zero Options.
//
// The outcome is decided as follows:
//
// • If the options are inconsistent, for example AbortPrevious without
// a Group or more than one body, the outcome is an unresolved failure
// whose error is a *ConfigError. The HTTPDoer is never called.
//
// • If no response is obtained, the outcome is an unresolved failure
// whose error is a *url.Error. When the request was canceled, Aborted
// is true and the *url.Error wraps the cancellation cause. TimedOut is
// true only when the cause is timeout.ErrElapsed.
//
// • A 2XX response succeeds with the decoded body as value, unless it
// is rejected by strict mode for not being JSON.
//
// • Any other response fails with a *StatusError and the decoded body
// as error type, unless strict mode rejects an empty error body.
//
// JSON bodies, by Content-Type, are decoded with Options.Parse. Other
// bodies become the value as a string.
func (c *Client) Execute(ctx context.Context, resource string, opts *Options) (o *Outcome) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts == nil {
		opts = &Options{}
	}
	logger := c.logger(opts)

	p, err := c.plan(resource, opts)
	if err != nil {
		logger.Error(err, "Request rejected", "resource", resource)
		return NoResponse(err, false, false)
	}

	pctx, cancel := context.WithCancelCause(ctx)
	defer cancel(context.Canceled)

	if opts.Signal != nil {
		stop := abort.Follow(opts.Signal, cancel)
		defer stop()
	}
	if opts.AbortPrevious {
		opts.Group.Cancel()
	}
	if opts.Group != nil {
		h := opts.Group.Add()
		h.Bind(cancel)
		defer h.Release()
	}
	disarm := timeout.Arm(opts.Timeout, cancel)
	defer disarm()

	e := &request.Execution{
		Plan:  p,
		Label: opts.Label,
		Start: time.Now(),
	}
	defer func() {
		if r := recover(); r != nil {
			if e.Response != nil && e.Response.Body != nil && e.Body == nil {
				_ = e.Response.Body.Close()
			}
			o = c.abandon(pctx, e, &PanicError{Value: r})
		}
		c.end(logger, e, o)
	}()

	e.Request = p.ToRequest(pctx)
	c.Handlers.run(BeforeExchange, e)
	if pctx.Err() != nil {
		return c.abandon(pctx, e, context.Cause(pctx))
	}

	resp, err := c.exchange(pctx, c.doer(opts), e.Request)
	if err != nil {
		return c.abandon(pctx, e, err)
	}
	disarm()

	e.Response = resp
	c.Handlers.run(BeforeReadBody, e)
	if err = readBody(e); err != nil {
		return c.abandon(pctx, e, err)
	}

	return decide(opts, e.Response, e.Body)
}

// plan validates opts and builds the request plan. Every error it
// returns is a *ConfigError, including a recovered panic.
func (c *Client) plan(resource string, opts *Options) (p *request.Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, configErr("plan", &PanicError{Value: r})
		}
	}()

	if opts.AbortPrevious && opts.Group == nil {
		return nil, configErr("abort", ErrAbortPreviousWithoutGroup)
	}
	if opts.Label != "" && !request.ValidHeader(LabelHeader, opts.Label) {
		return nil, configErr("label", ErrInvalidLabel)
	}

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return nil, configErr("body", err)
	}

	u, err := request.MergeParams(resource, opts.Params)
	if err != nil {
		return nil, configErr("params", err)
	}

	p, err = request.NewPlan(opts.Method, u, body)
	if err != nil {
		return nil, configErr("plan", err)
	}
	for k, v := range cloneHeader(opts.Header) {
		for _, vv := range v {
			if !request.ValidHeader(k, vv) {
				return nil, configErr("header", fmt.Errorf("invalid header field %q", k))
			}
		}
		p.Header[k] = v
	}
	if contentType != "" {
		p.Header.Set("Content-Type", contentType)
	}
	if opts.Label != "" {
		p.Header.Set(LabelHeader, opts.Label)
	}
	if opts.Host != "" {
		p.Host = opts.Host
	}
	return p, nil
}

func encodeBody(opts *Options) (body interface{}, contentType string, err error) {
	n := 0
	if opts.Data != nil {
		n++
	}
	if opts.Form != nil || opts.Files != nil || opts.Multipart != nil {
		n++
	}
	if opts.Body != nil {
		n++
	}
	if n > 1 || (opts.Multipart != nil && (opts.Form != nil || opts.Files != nil)) {
		return nil, "", ErrMultipleBodies
	}

	switch {
	case opts.Data != nil:
		stringify := opts.Stringify
		if stringify == nil {
			stringify = json.Marshal
		}
		b, err := stringify(opts.Data)
		if err != nil {
			return nil, "", err
		}
		return b, "application/json", nil
	case opts.Multipart != nil:
		return opts.Multipart.Body, opts.Multipart.ContentType, nil
	case opts.Form != nil || opts.Files != nil:
		fd, err := request.EncodeForm(opts.Form, opts.Files)
		if err != nil {
			return nil, "", err
		}
		return fd.Body, fd.ContentType, nil
	default:
		return opts.Body, "", nil
	}
}

// exchange sends r and waits for the response or the cancellation of
// ctx, whichever comes first. A response arriving after cancellation is
// discarded.
func (c *Client) exchange(ctx context.Context, doer HTTPDoer, r *http.Request) (*http.Response, error) {
	ch := make(chan exchange, 1)
	go func() {
		var x exchange
		defer func() {
			if p := recover(); p != nil {
				x = exchange{err: &PanicError{Value: p}}
			}
			ch <- x
		}()
		x.resp, x.err = doer.Do(r)
	}()

	select {
	case x := <-ch:
		if x.err != nil {
			return nil, x.err
		}
		if x.resp == nil {
			return nil, errors.New("fetchx: nil response from HTTPDoer")
		}
		return x.resp, nil
	case <-ctx.Done():
		go discard(ch)
		return nil, context.Cause(ctx)
	}
}

func discard(ch <-chan exchange) {
	x := <-ch
	if x.resp != nil && x.resp.Body != nil {
		_, _ = io.Copy(io.Discard, x.resp.Body)
		_ = x.resp.Body.Close()
	}
}

func readBody(e *request.Execution) error {
	if e.Response.Body == nil {
		e.Body = []byte{}
		return nil
	}
	defer func() {
		_ = e.Response.Body.Close()
	}()
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	return err
}

// abandon produces the unresolved outcome of an exchange that failed
// after it began.
func (c *Client) abandon(ctx context.Context, e *request.Execution, err error) *Outcome {
	aborted := ctx.Err() != nil
	if aborted {
		err = context.Cause(ctx)
	}
	e.Response = nil
	e.Body = nil
	return NoResponse(urlErrorWrap(e.Plan.Method, e.Plan.URL.String(), err), aborted, timeout.Elapsed(ctx))
}

func decide(opts *Options, resp *http.Response, body []byte) *Outcome {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	isJSON := strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "application/json")
	if ok && opts.strict() && !isJSON {
		return FailResponse(resp, body, nil, false, ErrNotJSON)
	}

	var value interface{}
	if isJSON {
		if len(body) > 0 {
			parse := opts.Parse
			if parse == nil {
				parse = parseJSON
			}
			var err error
			if value, err = parse(body); err != nil {
				return FailResponse(resp, body, nil, false, fmt.Errorf("fetchx: decoding response body: %w", err))
			}
		}
	} else {
		value = string(body)
	}

	switch {
	case ok:
		return Succeed(resp, body, value)
	case opts.strict() && empty(value):
		return FailResponse(resp, body, nil, false, ErrEmptyErrorBody)
	default:
		return FailResponse(resp, body, value, true, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status})
	}
}

func parseJSON(b []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// empty reports whether a decoded error body carries nothing usable:
// nil, false, zero, the empty string, or an empty object or array.
func empty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

func (c *Client) end(logger logr.Logger, e *request.Execution, o *Outcome) {
	e.End = time.Now()
	e.Err = o.Err()
	e.Aborted = o.Aborted()
	e.TimedOut = o.TimedOut()
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(&PanicError{Value: r}, "AfterExchange handler panicked")
			}
		}()
		c.Handlers.run(AfterExchange, e)
	}()

	logger.V(1).Info("Exchange",
		"method", e.Plan.Method,
		"url", e.Plan.URL.String(),
		"status", o.StatusCode(),
		"kind", o.Kind().String(),
		"aborted", o.Aborted(),
		"timedOut", o.TimedOut(),
		"duration", e.Duration())
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	doer := c.doer(nil)
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer(opts *Options) HTTPDoer {
	if opts != nil && opts.HTTPDoer != nil {
		return opts.HTTPDoer
	}
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) logger(opts *Options) logr.Logger {
	if opts.Logger.GetSink() != nil {
		return opts.Logger
	}
	return c.Logger
}
