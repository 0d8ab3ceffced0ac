// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrAbortPreviousWithoutGroup is reported when AbortPrevious is
	// set without a Group to abort.
	ErrAbortPreviousWithoutGroup = errors.New("fetchx: AbortPrevious requires a Group")
	// ErrMultipleBodies is reported when more than one of Data,
	// Form/Files/Multipart and Body is set.
	ErrMultipleBodies = errors.New("fetchx: multiple bodies given, pick one of Data, Form/Files/Multipart or Body")
	// ErrInvalidLabel is reported when Label is not a valid header
	// field value.
	ErrInvalidLabel = errors.New("fetchx: invalid request label")
	// ErrNotJSON is reported when strict mode rejects a successful
	// response whose content type is not JSON.
	ErrNotJSON = errors.New("fetchx: response is not JSON in strict mode")
	// ErrEmptyErrorBody is reported when strict mode rejects an
	// unsuccessful response which carries no usable error body.
	ErrEmptyErrorBody = errors.New("fetchx: unsuccessful response has empty error body in strict mode")
	// ErrNilOutcome is reported when a middleware produces no outcome.
	ErrNilOutcome = errors.New("fetchx: nil outcome")
)

// A ConfigError reports that the caller misused the option contract.
// It is always terminal for the call, and the exchange is never
// attempted.
type ConfigError struct {
	// Op names the step which rejected the configuration.
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *ConfigError) Error() string {
	return "fetchx: " + e.Op + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A StatusError is the error of an application failure: an
// unsuccessful HTTP response carrying a decodable error body.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "fetchx: unsuccessful response: " + status
}

// A PanicError is the error reported when a panic is recovered inside
// a failure boundary.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("fetchx: panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func configErr(op string, err error) *ConfigError {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce
	}
	return &ConfigError{Op: op, Err: err}
}

func urlErrorWrap(method, rawURL string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: rawURL,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
