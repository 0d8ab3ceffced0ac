// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"encoding/json"
	"fmt"

	"github.com/gogama/fetchx/result"
)

// As returns a typed view of o. The value, and the error type if
// present, are converted by type assertion when possible, and
// otherwise by decoding the buffered response body as JSON into the
// target type.
//
// A value that cannot be converted makes the result a failure. An error
// type that cannot be converted is dropped, leaving the failure's
// error.
func As[V, E any](o *Outcome) result.Result[V, E] {
	if o == nil {
		return result.Fail[V, E](ErrNilOutcome)
	}

	if o.Succeeded() {
		v, err := convert[V](o.Value(), o.Body())
		if err != nil {
			return result.Fail[V, E](err)
		}
		return result.Ok[V, E](v)
	}

	if et, ok := o.ErrorType(); ok {
		if e, err := convert[E](et, o.Body()); err == nil {
			return result.FailWith[V](e, o.Err())
		}
	}

	return result.Fail[V, E](o.Err())
}

func convert[T any](v interface{}, body []byte) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var t T
	if v == nil {
		return t, nil
	}
	if err := json.Unmarshal(body, &t); err != nil {
		return t, fmt.Errorf("fetchx: cannot convert %T to %T: %w", v, t, err)
	}

	return t, nil
}
