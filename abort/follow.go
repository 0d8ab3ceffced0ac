// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package abort

import "context"

// Follow makes cancel observe src: once src is done, cancel is called
// with the cause of src. If src is already done, cancel is called
// immediately, in its own goroutine.
//
// The returned stop function unregisters the observer. It returns true
// if the observer was unregistered before it ran, and false if it had
// already been triggered or stopped.
//
// The cancellation reaches cancel from a separate goroutine, so another
// cause recorded in the meantime wins. Use Handle.Bind to observe a
// group member without that window.
//
// Following is transitive. If src itself follows another context, a
// cancellation anywhere upstream reaches cancel with the original cause.
func Follow(src context.Context, cancel context.CancelCauseFunc) (stop func() bool) {
	return context.AfterFunc(src, func() {
		cancel(context.Cause(src))
	})
}
