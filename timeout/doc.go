// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout arms deferred, cause-tagged cancellations. A request
// executor uses it to cancel an in-flight request once its timeout
// elapses, and to tell that cancellation apart from every other cause
// afterwards.
package timeout
