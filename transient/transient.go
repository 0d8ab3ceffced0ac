// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"net/http"
	"syscall"
)

// A Category is the transience category of a failed request, as
// reported by Categorize, CategorizeStatus and Classify.
//
// The category Not means the failure is not transient, or in other
// words that issuing the same request again is very unlikely to
// succeed. All other categories indicate that a later attempt has some
// prospect of success.
type Category int

const (
	// Not indicates any non-transient failure, and also no failure.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true. This includes
	// timeout.ErrElapsed and context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// which happens while a service is starting or restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// connection, which is common behind load balancers and during
	// deployments.
	ConnReset
	// Status indicates a response whose status code signals a
	// temporary condition: 408, 429, 502, 503 or 504.
	Status
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Status",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Transient reports whether c is any category other than Not.
func (c Category) Transient() bool {
	return c != Not
}

// Categorize returns the transience category of the error of an
// unresolved request. A nil error, and an error which is not
// transient, both produce Not. Cancellation by the caller or by a
// group is not transient.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself. It never checks Temporary methods, as their
// semantics aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

// CategorizeStatus returns the transience category of a response
// status code.
func CategorizeStatus(code int) Category {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return Status
	default:
		return Not
	}
}

// Classify categorizes a failed request: by status code if a response
// was received (status > 0), and by err otherwise.
func Classify(status int, err error) Category {
	if status > 0 {
		return CategorizeStatus(status)
	}
	return Categorize(err)
}

type hasTimeout interface {
	Timeout() bool
}
