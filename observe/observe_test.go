// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/gogama/fetchx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *logSink) logger() logr.Logger {
	return funcr.New(func(_, args string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lines = append(s.lines, args)
	}, funcr.Options{Verbosity: 1})
}

func (s *logSink) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func fixed(o *fetchx.Outcome) fetchx.Executor {
	return fetchx.ExecutorFunc(func(context.Context, string, *fetchx.Options) *fetchx.Outcome {
		return o
	})
}

func TestDebug(t *testing.T) {
	sink := &logSink{}
	api := fetchx.WithBase(Debug(sink.logger()), "/api")
	opts := &fetchx.Options{Method: "post", Label: "create", Params: map[string]interface{}{"a": 1}}

	o := api.Execute(context.Background(), "/user", opts)

	require.NoError(t, o.Err())
	assert.True(t, o.Resolved())
	assert.Equal(t, 200, o.StatusCode())
	value, ok := o.Value().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/api/user", value["resource"])
	got, ok := value["options"].(*fetchx.Options)
	require.True(t, ok)
	assert.Equal(t, "create", got.Label)
	assert.NotSame(t, opts, got)
	_, err := uuid.Parse(o.Response().Header.Get(RequestIDHeader))
	assert.NoError(t, err)

	lines := sink.all()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"method"="POST"`)
	assert.Contains(t, lines[0], `"resource"="/api/user"`)
	assert.Contains(t, lines[0], o.Response().Header.Get(RequestIDHeader))
}

func TestVoid(t *testing.T) {
	o := Void().Execute(context.Background(), "/anything", nil)

	require.NoError(t, o.Err())
	assert.True(t, o.Resolved())
	assert.Equal(t, map[string]interface{}{}, o.Value())
	assert.False(t, o.Aborted())
}

func TestLog(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sink := &logSink{}
		e := Log(sink.logger())(Void())

		e.Execute(context.Background(), "/ok", &fetchx.Options{Method: "put"})

		lines := sink.all()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"msg"="Fetch succeeded"`)
		assert.Contains(t, lines[0], `"method"="PUT"`)
		assert.Contains(t, lines[0], `"kind"="Success"`)
	})
	t.Run("failure", func(t *testing.T) {
		sink := &logSink{}
		e := Log(sink.logger())(fixed(fetchx.NoResponse(errors.New("refused"), true, true)))

		o := e.Execute(context.Background(), "/fail", nil)

		assert.True(t, o.Failed())
		lines := sink.all()
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `"msg"="Fetch failed"`)
		assert.Contains(t, lines[0], `"error"="refused"`)
		assert.Contains(t, lines[0], `"timedOut"=true`)
		assert.Contains(t, lines[0], `"kind"="Transport"`)
	})
	t.Run("nil outcome", func(t *testing.T) {
		sink := &logSink{}
		e := Log(sink.logger())(fixed(nil))

		o := e.Execute(context.Background(), "/nil", nil)

		require.NotNil(t, o)
		assert.ErrorIs(t, o.Err(), fetchx.ErrNilOutcome)
	})
}

func TestMethodOf(t *testing.T) {
	assert.Equal(t, "GET", methodOf(nil))
	assert.Equal(t, "GET", methodOf(&fetchx.Options{}))
	assert.Equal(t, "PATCH", methodOf(&fetchx.Options{Method: "patch"}))
}

func TestSynthetic(t *testing.T) {
	resp := synthetic()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
	assert.NotNil(t, resp.Body)
}
