// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-logr/logr"
)

var (
	// ErrNoError is the error held by a failure constructed without an
	// explicit error.
	ErrNoError = errors.New("result: no error provided")
	// ErrZero is returned by NotZero when a success holds the zero value
	// of its value type.
	ErrZero = errors.New("result: zero value")
)

// A Result is an immutable success-or-failure value. The zero Result
// is a success holding the zero value of V.
//
// Construct Results with Ok, Fail, FailWith, or Try.
type Result[V, E any] struct {
	failed  bool
	value   V
	err     error
	errType E
	hasType bool
}

// Ok returns a success holding v.
func Ok[V, E any](v V) Result[V, E] {
	return Result[V, E]{value: v}
}

// Fail returns a failure holding err and no structured error type. If
// err is nil, ErrNoError is used.
func Fail[V, E any](err error) Result[V, E] {
	if err == nil {
		err = ErrNoError
	}
	return Result[V, E]{failed: true, err: err}
}

// FailWith returns a failure holding err and the structured error type
// errType. If err is nil, ErrNoError is used.
func FailWith[V, E any](errType E, err error) Result[V, E] {
	r := Fail[V, E](err)
	r.errType = errType
	r.hasType = true
	return r
}

// Try runs fn and captures its outcome. A returned error, or a panic
// raised by fn, produces a failure with no structured error type.
func Try[V, E any](fn func() (V, error)) (r Result[V, E]) {
	defer func() {
		if x := recover(); x != nil {
			r = Fail[V, E](panicErr(x))
		}
	}()
	v, err := fn()
	if err != nil {
		return Fail[V, E](err)
	}
	return Ok[V, E](v)
}

// Failed reports whether r is a failure.
func (r Result[V, E]) Failed() bool {
	return r.failed
}

// Succeeded reports whether r is a success.
func (r Result[V, E]) Succeeded() bool {
	return !r.failed
}

// Value returns the success value, or the zero value of V if r is a
// failure.
func (r Result[V, E]) Value() V {
	return r.value
}

// Err returns the failure error, or nil if r is a success.
func (r Result[V, E]) Err() error {
	return r.err
}

// ErrorType returns the structured error type and true if r is a
// failure carrying one. Otherwise it returns the zero value and false.
func (r Result[V, E]) ErrorType() (E, bool) {
	return r.errType, r.hasType
}

// Match invokes exactly one of its callbacks. If r is a success,
// success is called with the value. If r is a failure, failure is
// called with the error and a pointer to the structured error type,
// which is nil when the failure carries none.
func (r Result[V, E]) Match(success func(V), failure func(err error, errType *E)) {
	if !r.failed {
		success(r.value)
		return
	}
	var t *E
	if r.hasType {
		errType := r.errType
		t = &errType
	}
	failure(r.err, t)
}

// Unwrap returns the success value and a nil error, or the zero value
// and the failure error.
func (r Result[V, E]) Unwrap() (V, error) {
	if r.failed {
		var zero V
		return zero, r.err
	}
	return r.value, nil
}

// Must returns the success value, panicking with the failure error if r
// is a failure.
func (r Result[V, E]) Must() V {
	if r.failed {
		panic(r.err)
	}
	return r.value
}

// NotZero returns the success value if it is not the zero value of V.
// A failure returns its error; a zero success returns ErrZero.
func (r Result[V, E]) NotZero() (V, error) {
	if r.failed {
		return r.value, r.err
	}
	if isZero(r.value) {
		return r.value, ErrZero
	}
	return r.value, nil
}

// Log writes r to logger: a success at verbosity 1, a failure at error
// level together with its structured error type, if any.
func (r Result[V, E]) Log(logger logr.Logger) {
	if !r.failed {
		logger.V(1).Info("result", "value", r.value)
		return
	}
	if r.hasType {
		logger.Error(r.err, "result failed", "errorType", r.errType)
		return
	}
	logger.Error(r.err, "result failed")
}

// String formats r for debugging.
func (r Result[V, E]) String() string {
	if !r.failed {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	if r.hasType {
		return fmt.Sprintf("Fail(%v, %v)", r.err, r.errType)
	}
	return fmt.Sprintf("Fail(%v)", r.err)
}

func isZero(v any) bool {
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || rv.IsZero()
}

func panicErr(x any) error {
	if err, ok := x.(error); ok {
		return err
	}
	return fmt.Errorf("result: panic: %v", x)
}
