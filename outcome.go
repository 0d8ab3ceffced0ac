// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"errors"
	"net/http"

	"github.com/gogama/fetchx/result"
)

// A Kind classifies an Outcome.
type Kind int

const (
	// KindSuccess is a successful exchange.
	KindSuccess Kind = iota
	// KindConfig is a failure caused by misuse of the option contract.
	// No exchange was attempted.
	KindConfig
	// KindTransport is a failure before any response was received,
	// including cancellation and timeout.
	KindTransport
	// KindProtocol is a response rejected by strict validation. It
	// carries no structured error type.
	KindProtocol
	// KindApplication is an unsuccessful response carrying a decoded
	// error body as its structured error type.
	KindApplication
)

var kindNames = []string{
	"Success",
	"Config",
	"Transport",
	"Protocol",
	"Application",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// An Outcome is the result of executing a request. It is a
// result.Result holding the decoded response value on success, and the
// decoded error body as structured error type on an application
// failure, together with metadata about the exchange.
//
// Outcomes are immutable. The constructors Succeed, FailResponse and
// NoResponse guarantee that an unresolved outcome has no response, and
// that a timed out outcome is also aborted.
type Outcome struct {
	result.Result[interface{}, interface{}]

	aborted  bool
	timedOut bool
	response *http.Response
	body     []byte
}

// Succeed returns a resolved, successful outcome.
func Succeed(resp *http.Response, body []byte, value interface{}) *Outcome {
	return &Outcome{
		Result:   result.Ok[interface{}, interface{}](value),
		response: resp,
		body:     body,
	}
}

// FailResponse returns a resolved failure. If hasType is true, errType
// is attached as the structured error type.
func FailResponse(resp *http.Response, body []byte, errType interface{}, hasType bool, err error) *Outcome {
	o := &Outcome{response: resp, body: body}
	if hasType {
		o.Result = result.FailWith[interface{}](errType, err)
	} else {
		o.Result = result.Fail[interface{}, interface{}](err)
	}
	return o
}

// NoResponse returns an unresolved failure. Setting timedOut implies
// aborted.
func NoResponse(err error, aborted, timedOut bool) *Outcome {
	return &Outcome{
		Result:   result.Fail[interface{}, interface{}](err),
		aborted:  aborted || timedOut,
		timedOut: timedOut,
	}
}

// Aborted reports whether the exchange was canceled before a response
// was obtained.
func (o *Outcome) Aborted() bool {
	return o.aborted
}

// TimedOut reports whether the exchange was canceled because its
// timeout elapsed.
func (o *Outcome) TimedOut() bool {
	return o.timedOut
}

// Resolved reports whether a response was received, even an
// unsuccessful one.
func (o *Outcome) Resolved() bool {
	return o.response != nil
}

// Response returns the HTTP response, or nil if the outcome is not
// resolved. Its body has already been read and closed; use Body.
func (o *Outcome) Response() *http.Response {
	return o.response
}

// Body returns the buffered response body.
func (o *Outcome) Body() []byte {
	return o.body
}

// StatusCode returns the response status code, or zero if the outcome
// is not resolved.
func (o *Outcome) StatusCode() int {
	if o.response == nil {
		return 0
	}
	return o.response.StatusCode
}

// Kind classifies the outcome.
func (o *Outcome) Kind() Kind {
	switch {
	case o.Succeeded():
		return KindSuccess
	case o.response != nil:
		if _, ok := o.ErrorType(); ok {
			return KindApplication
		}
		return KindProtocol
	}
	var ce *ConfigError
	if errors.As(o.Err(), &ce) {
		return KindConfig
	}
	return KindTransport
}
