// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package result defines Result, a tagged union of a success value and
// a failure, used throughout fetchx to report outcomes as values rather
// than as returned errors or panics.
//
// A Result is either a success holding a value of type V, or a failure
// holding a non-nil error and, optionally, a structured error type of
// type E. Consume a Result exhaustively with Match, or explicitly opt in
// to error-return semantics with Unwrap.
package result
