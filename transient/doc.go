// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies failed requests as transient or
// non-transient, from either the error of an unresolved request or the
// status code of a resolved one. Revalidation libraries use the
// classification to decide whether refetching is worthwhile, and the
// observe package uses it for bucketing error metrics.
//
// Package transient depends only on the standard library.
package transient
