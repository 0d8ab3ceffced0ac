// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"context"
	"errors"
	"time"
)

// ErrElapsed is the cancellation cause used by Arm. It is the only
// cause for which Elapsed reports true.
//
// ErrElapsed reports true from a Timeout method, so a *url.Error
// wrapping it is a timeout error.
var ErrElapsed error = elapsedError{}

type elapsedError struct{}

func (elapsedError) Error() string   { return "timeout: elapsed" }
func (elapsedError) Timeout() bool   { return true }
func (elapsedError) Temporary() bool { return true }

// Arm cancels with cause ErrElapsed once d has elapsed. The returned
// disarm function stops the pending cancellation; it returns true if
// the call stopped it and false if it already fired or was already
// disarmed.
//
// If d is zero or negative, nothing is armed and disarm always returns
// false.
func Arm(d time.Duration, cancel context.CancelCauseFunc) (disarm func() bool) {
	if d <= 0 {
		return never
	}
	t := time.AfterFunc(d, func() {
		cancel(ErrElapsed)
	})
	return t.Stop
}

// Elapsed reports whether ctx was canceled because a timeout armed by
// Arm elapsed. A context canceled for any other reason first reports
// false, even if an armed timeout fired later.
func Elapsed(ctx context.Context) bool {
	return ctx.Err() != nil && errors.Is(context.Cause(ctx), ErrElapsed)
}

func never() bool {
	return false
}
