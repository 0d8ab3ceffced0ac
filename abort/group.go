// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package abort

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrGroupCanceled is the cancellation cause of every handle
	// canceled by Group.Cancel.
	ErrGroupCanceled = errors.New("abort: group canceled")
	// ErrReleased is the cancellation cause of a handle that was
	// released without being canceled.
	ErrReleased = errors.New("abort: handle released")
)

// A Group is a registry of cancellation handles. The zero value is an
// empty group ready to use.
//
// A Group is safe for concurrent use by multiple goroutines.
type Group struct {
	mu      sync.Mutex
	handles map[*Handle]struct{}
}

// NewGroup returns a new, empty group.
func NewGroup() *Group {
	return &Group{}
}

// Add creates a new live handle, registers it with the group, and
// returns it. The handle stays registered until it is canceled by
// Cancel or released by its owner.
func (g *Group) Add() *Handle {
	ctx, cancel := context.WithCancelCause(context.Background())
	h := &Handle{ctx: ctx, cancel: cancel, group: g}
	g.mu.Lock()
	if g.handles == nil {
		g.handles = make(map[*Handle]struct{})
	}
	g.handles[h] = struct{}{}
	g.mu.Unlock()
	return h
}

// Cancel cancels every currently registered handle with the cause
// ErrGroupCanceled and clears the registry. Canceling an empty group
// does nothing.
func (g *Group) Cancel() {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	for h := range handles {
		h.end(ErrGroupCanceled)
	}
}

// Len returns the number of handles currently registered.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}

func (g *Group) remove(h *Handle) {
	g.mu.Lock()
	delete(g.handles, h)
	g.mu.Unlock()
}

// A Handle is a single cancelable member of a Group.
type Handle struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	group  *Group

	mu    sync.Mutex
	bound []context.CancelCauseFunc
	ended bool
}

// Context returns a context which is done once the handle is canceled
// or released. Use context.Cause to learn why.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Done returns a channel which is closed once the handle is canceled
// or released.
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Canceled reports whether the handle was canceled, either directly or
// by its group. A handle which was only released is not canceled.
func (h *Handle) Canceled() bool {
	cause := context.Cause(h.ctx)
	return cause != nil && !errors.Is(cause, ErrReleased)
}

// Bind makes cancel observe the handle. When the handle is canceled,
// directly or by its group, cancel is called with the cancellation
// cause before the canceling call returns. If the handle was already
// canceled, cancel is called at once. Releasing the handle unbinds
// cancel without calling it.
func (h *Handle) Bind(cancel context.CancelCauseFunc) {
	h.mu.Lock()
	if !h.ended {
		h.bound = append(h.bound, cancel)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	if h.Canceled() {
		cancel(context.Cause(h.ctx))
	}
}

// Cancel cancels the handle with the given cause and removes it from
// its group. A nil cause is reported as context.Canceled.
func (h *Handle) Cancel(cause error) {
	h.group.remove(h)
	h.end(cause)
}

// Release removes the handle from its group and frees its resources
// without canceling anything that follows it. Release must only be
// called once nothing needs to observe the handle any longer.
func (h *Handle) Release() {
	h.group.remove(h)
	h.end(ErrReleased)
}

func (h *Handle) end(cause error) {
	h.cancel(cause)

	h.mu.Lock()
	bound := h.bound
	h.bound = nil
	h.ended = true
	h.mu.Unlock()

	if !h.Canceled() {
		return
	}
	cause = context.Cause(h.ctx)
	for _, cancel := range bound {
		cancel(cause)
	}
}
