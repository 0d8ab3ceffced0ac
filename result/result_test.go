// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package result

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiErr struct {
	Code string
}

func TestOk(t *testing.T) {
	r := Ok[int, apiErr](42)
	assert.False(t, r.Failed())
	assert.True(t, r.Succeeded())
	assert.Equal(t, 42, r.Value())
	assert.NoError(t, r.Err())
	_, ok := r.ErrorType()
	assert.False(t, ok)
	v, err := r.Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, r.Must())
	assert.Equal(t, "Ok(42)", r.String())
}

func TestFail(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		r := Fail[int, apiErr](nil)
		assert.True(t, r.Failed())
		assert.Same(t, ErrNoError, r.Err())
	})
	t.Run("with error", func(t *testing.T) {
		boom := errors.New("boom")
		r := Fail[int, apiErr](boom)
		assert.True(t, r.Failed())
		assert.Equal(t, 0, r.Value())
		assert.Same(t, boom, r.Err())
		_, ok := r.ErrorType()
		assert.False(t, ok)
		_, err := r.Unwrap()
		assert.Same(t, boom, err)
		assert.PanicsWithError(t, "boom", func() { r.Must() })
	})
	t.Run("with type", func(t *testing.T) {
		r := FailWith[int](apiErr{Code: "E1"}, nil)
		assert.True(t, r.Failed())
		assert.Same(t, ErrNoError, r.Err())
		et, ok := r.ErrorType()
		require.True(t, ok)
		assert.Equal(t, "E1", et.Code)
		assert.Equal(t, "Fail(result: no error provided, {E1})", r.String())
	})
}

func TestMatch(t *testing.T) {
	var calls []string
	success := func(v string) { calls = append(calls, "success:"+v) }
	failure := func(err error, et *apiErr) {
		if et != nil {
			calls = append(calls, "failure:"+err.Error()+":"+et.Code)
			return
		}
		calls = append(calls, "failure:"+err.Error())
	}

	Ok[string, apiErr]("a").Match(success, failure)
	Fail[string, apiErr](errors.New("b")).Match(success, failure)
	FailWith[string](apiErr{Code: "X"}, errors.New("c")).Match(success, failure)

	assert.Equal(t, []string{"success:a", "failure:b", "failure:c:X"}, calls)
}

func TestTry(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		r := Try[int, any](func() (int, error) { return 1, nil })
		assert.Equal(t, 1, r.Must())
	})
	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		r := Try[int, any](func() (int, error) { return 0, boom })
		assert.Same(t, boom, r.Err())
	})
	t.Run("panic error", func(t *testing.T) {
		boom := errors.New("boom")
		r := Try[int, any](func() (int, error) { panic(boom) })
		assert.True(t, r.Failed())
		assert.Same(t, boom, r.Err())
	})
	t.Run("panic value", func(t *testing.T) {
		r := Try[int, any](func() (int, error) { panic("ouch") })
		assert.True(t, r.Failed())
		assert.EqualError(t, r.Err(), "result: panic: ouch")
	})
}

func TestNotZero(t *testing.T) {
	v, err := Ok[*int, any](nil).NotZero()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrZero)

	_, err = Ok[any, any](nil).NotZero()
	assert.ErrorIs(t, err, ErrZero)

	n := 3
	v, err = Ok[*int, any](&n).NotZero()
	assert.NoError(t, err)
	assert.Same(t, &n, v)

	boom := errors.New("boom")
	_, err = Fail[*int, any](boom).NotZero()
	assert.Same(t, boom, err)
}

func TestLog(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	Ok[string, any]("hello").Log(logger)
	Fail[string, any](errors.New("boom")).Log(logger)
	FailWith[string](apiErr{Code: "E2"}, errors.New("bad")).Log(logger)

	require.Len(t, lines, 3)
	assert.True(t, strings.Contains(lines[0], `"value"="hello"`), lines[0])
	assert.True(t, strings.Contains(lines[1], `"error"="boom"`), lines[1])
	assert.True(t, strings.Contains(lines[2], `"errorType"`), lines[2])
}
