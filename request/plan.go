// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "fetchx/request: nil context"
)

// A Plan contains a logical HTTP request for execution by the fetchx
// executor.
//
// The field structure mirrors the client-side subset of http.Request,
// with a pre-buffered body so that the request can be rebuilt (for
// example by event handlers or redirects) without consuming a stream.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent.
	Body []byte

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string
}

// NewPlan returns a new Plan given a method, URL, and optional body.
//
// Parameter body may be nil (empty body), or any of the types accepted
// by BodyBytes. The method must be a valid HTTP token; the empty method
// means GET.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	if method == "" {
		method = "GET"
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("fetchx/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// ToRequest creates an HTTP request corresponding to the plan. The
// context of the new request is set to ctx, which may not be nil.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r := (&http.Request{
		Method:     p.Method,
		URL:        p.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     p.Header,
		Host:       p.Host,
	}).WithContext(ctx)
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	return r
}

// ValidMethod reports whether method is a valid HTTP method token as
// defined in https://tools.ietf.org/html/rfc7230#section-3.2.6.
func ValidMethod(method string) bool {
	return len(method) > 0 && strings.IndexFunc(method, isNotToken) == -1
}

// ValidHeader reports whether name and value form a valid HTTP header
// field.
func ValidHeader(name, value string) bool {
	return httpguts.ValidHeaderFieldName(name) && httpguts.ValidHeaderFieldValue(value)
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
