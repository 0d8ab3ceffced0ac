// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"net/http"
	"reflect"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/gogama/fetchx/abort"
	"github.com/gogama/fetchx/request"
)

// Options is the configuration bag of a single request. Every field is
// optional, and the zero value requests a strict GET.
//
// Options travel through a composed executor by value: every layer
// works on a copy produced by Merge, so a layer never observes another
// layer's later changes.
type Options struct {
	// Method is the HTTP method. An empty string means GET.
	Method string

	// Header holds request headers. Merge combines headers key by key.
	Header http.Header

	// Body is a raw request body: a string, []byte, io.Reader or
	// io.ReadCloser. It is mutually exclusive with Data and the form
	// fields.
	Body interface{}

	// Host optionally overrides the Host header.
	Host string

	// Strict enforces JSON on successful responses and a non-empty
	// error body on unsuccessful ones. Nil means true. Use Bool to set.
	Strict *bool

	// HTTPDoer overrides the transport of the executing Client.
	HTTPDoer HTTPDoer

	// Label is sent as the X-Request-Label header.
	Label string

	// Group makes the request a member of a cancellation group.
	Group *abort.Group

	// AbortPrevious cancels every current member of Group before the
	// request is made. It requires Group.
	AbortPrevious bool

	// Data is encoded with Stringify and sent as an application/json
	// body. When both sides of a merge hold a map[string]interface{},
	// Merge combines them key by key.
	Data interface{}

	// Form is a flat mapping of field names to values, sent as a
	// multipart/form-data body. See request.EncodeForm for how each
	// value is encoded.
	Form map[string]interface{}

	// Files is like Form, and is encoded after it into the same body.
	Files map[string]interface{}

	// Multipart is a pre-encoded multipart body, sent unmodified.
	Multipart *request.FormData

	// Params are merged onto the query string of the resource,
	// replacing existing values of the same keys. Merge combines
	// params key by key.
	Params map[string]interface{}

	// Parse decodes JSON response bodies. The default decodes into
	// interface{} with encoding/json.
	Parse func([]byte) (interface{}, error)

	// Stringify encodes Data. The default is json.Marshal.
	Stringify func(interface{}) ([]byte, error)

	// Timeout cancels the request once elapsed. Zero means no timeout.
	Timeout time.Duration

	// Key is an opaque identity set by declarations. The executor does
	// not interpret it.
	Key string

	// Signal is an additional cancellation signal followed by the
	// request, besides the context it is executed with.
	Signal context.Context

	// Logger receives merge diagnostics and overrides the logger of the
	// executing Client.
	Logger logr.Logger
}

// Bool returns a pointer to b, for use with Options.Strict.
func Bool(b bool) *bool {
	return &b
}

func (o *Options) strict() bool {
	return o.Strict == nil || *o.Strict
}

// Merge returns a new bag holding base overlaid with over. A field set
// in over replaces the same field in base, except that Header, Params,
// Form, Files and map-valued Data are combined key by key with over's
// keys winning. Either argument may be nil. The result never shares a
// map, slice or header with its arguments.
//
// Replacing Group, Form or Files that are set on both sides is logged
// at verbosity 1, since those fields cannot be combined.
func Merge(base, over *Options) *Options {
	out := &Options{}
	if base != nil {
		*out = *base
	}
	if over != nil {
		overlay(out, over)
	}
	if out.Strict != nil {
		out.Strict = Bool(*out.Strict)
	}
	if base == nil || over == nil {
		out.Header = cloneHeader(out.Header)
		out.Params = cloneMap(out.Params)
		out.Form = cloneMap(out.Form)
		out.Files = cloneMap(out.Files)
		out.Data = cloneValue(out.Data)
		return out
	}

	if (base.Group != nil && over.Group != nil && base.Group != over.Group) ||
		(base.Form != nil && over.Form != nil) ||
		(base.Files != nil && over.Files != nil) {
		out.Logger.V(1).Info("merging options replaces group, form or files; these cannot be combined")
	}

	out.Header = mergeHeader(base.Header, over.Header)
	out.Params = mergeMap(base.Params, over.Params)
	out.Form = cloneMap(out.Form)
	out.Files = cloneMap(out.Files)
	out.Data = mergeData(base.Data, over.Data)
	return out
}

func overlay(out, over *Options) {
	if over.Method != "" {
		out.Method = over.Method
	}
	if over.Header != nil {
		out.Header = over.Header
	}
	if over.Body != nil {
		out.Body = over.Body
	}
	if over.Host != "" {
		out.Host = over.Host
	}
	if over.Strict != nil {
		out.Strict = over.Strict
	}
	if over.HTTPDoer != nil {
		out.HTTPDoer = over.HTTPDoer
	}
	if over.Label != "" {
		out.Label = over.Label
	}
	if over.Group != nil {
		out.Group = over.Group
	}
	if over.AbortPrevious {
		out.AbortPrevious = true
	}
	if over.Data != nil {
		out.Data = over.Data
	}
	if over.Form != nil {
		out.Form = over.Form
	}
	if over.Files != nil {
		out.Files = over.Files
	}
	if over.Multipart != nil {
		out.Multipart = over.Multipart
	}
	if over.Params != nil {
		out.Params = over.Params
	}
	if over.Parse != nil {
		out.Parse = over.Parse
	}
	if over.Stringify != nil {
		out.Stringify = over.Stringify
	}
	if over.Timeout != 0 {
		out.Timeout = over.Timeout
	}
	if over.Key != "" {
		out.Key = over.Key
	}
	if over.Signal != nil {
		out.Signal = over.Signal
	}
	if over.Logger.GetSink() != nil {
		out.Logger = over.Logger
	}
}

// cloneHeader deep-copies h under canonical keys. Values of keys which
// differ only in case are joined in sorted key order.
func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(http.Header, len(h))
	for _, k := range keys {
		ck := http.CanonicalHeaderKey(k)
		out[ck] = append(out[ck], h[k]...)
	}
	return out
}

func mergeHeader(a, b http.Header) http.Header {
	if a == nil && b == nil {
		return nil
	}
	out := cloneHeader(a)
	if out == nil {
		out = make(http.Header, len(b))
	}
	for k, v := range cloneHeader(b) {
		out[k] = v
	}
	return out
}

func mergeMap(a, b map[string]interface{}) map[string]interface{} {
	if a == nil && b == nil {
		return nil
	}
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	for k, v := range b {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	return mergeMap(m, nil)
}

func mergeData(a, b interface{}) interface{} {
	am, aok := a.(map[string]interface{})
	bm, bok := b.(map[string]interface{})
	if aok && bok {
		return mergeMap(am, bm)
	}
	if b != nil {
		return cloneValue(b)
	}
	return cloneValue(a)
}

// cloneValue deep-copies slices and maps, including those nested in
// other slices and maps. Other values are returned as they are.
func cloneValue(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return cloneMap(x)
	case []interface{}:
		if x == nil {
			return x
		}
		out := make([]interface{}, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	case []string:
		if x == nil {
			return x
		}
		return append([]string(nil), x...)
	case nil:
		return nil
	default:
		rv := reflect.ValueOf(v)
		if k := rv.Kind(); k != reflect.Slice && k != reflect.Map {
			return v
		}
		return cloneReflect(rv).Interface()
	}
}

func cloneReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(cloneReflect(rv.Elem()))
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	default:
		return rv
	}
}
