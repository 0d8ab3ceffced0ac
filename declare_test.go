// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		a := map[string]interface{}{}
		a["b"] = 2
		a["a"] = 1
		b := map[string]interface{}{}
		b["a"] = 1
		b["b"] = 2

		assert.Equal(t, Key("/user", a), Key("/user", b))
		assert.Equal(t, `["/user",{"params":{"a":1,"b":2}}]`, Key("/user", a))
	})
	t.Run("nested", func(t *testing.T) {
		assert.Equal(t,
			Key("/q", map[string]interface{}{"f": map[string]interface{}{"y": 1, "x": []interface{}{"p", "q"}}}),
			Key("/q", map[string]interface{}{"f": map[string]interface{}{"x": []interface{}{"p", "q"}, "y": 1}}))
	})
	t.Run("nil params", func(t *testing.T) {
		assert.Equal(t, `["/user",{"params":{}}]`, Key("/user", nil))
		assert.Equal(t, Key("/user", nil), Key("/user", map[string]interface{}{}))
	})
	t.Run("distinct", func(t *testing.T) {
		assert.NotEqual(t, Key("/user", nil), Key("/users", nil))
		assert.NotEqual(t, Key("/user", map[string]interface{}{"id": 1}), Key("/user", map[string]interface{}{"id": "1"}))
	})
	t.Run("unencodable", func(t *testing.T) {
		var k string
		require.NotPanics(t, func() { k = Key("/user", map[string]interface{}{"f": func() {}}) })
		assert.Contains(t, k, `"/user"`)
	})
}

func TestDeclare(t *testing.T) {
	root := &recorder{}
	users := WithBase(root, "/api")
	params := map[string]interface{}{"id": 1}
	decl := Declare(users, "/user", &Options{Method: "HEAD", Params: params})
	params["id"] = 2

	assert.Equal(t, "/user", decl.Resource)
	assert.Equal(t, Key("/user", map[string]interface{}{"id": 1}), decl.Key)

	o := decl.Fetch(context.Background(), "ignored", &Options{Label: "extra"})

	require.NoError(t, o.Err())
	resource, opts := root.last()
	assert.Equal(t, "/api/user", resource)
	assert.Equal(t, "HEAD", opts.Method)
	assert.Equal(t, decl.Key, opts.Key)
	assert.Equal(t, "extra", opts.Label)
	assert.Equal(t, map[string]interface{}{"id": 1}, opts.Params)

	t.Run("nil options", func(t *testing.T) {
		decl := Declare(root, "/ping", nil)

		decl.Fetch(context.Background(), nil, nil)

		_, opts := root.last()
		assert.Equal(t, "", opts.Method)
		assert.Equal(t, `["/ping",{"params":{}}]`, opts.Key)
	})
}

func TestDeclareFunc(t *testing.T) {
	type newUser struct {
		Name   string
		Method string
	}

	root := &recorder{}
	decl := DeclareFunc(root, "/user", func(u newUser) (*Options, error) {
		if u.Name == "" {
			return nil, errors.New("name required")
		}
		if u.Name == "panic" {
			panic("builder exploded")
		}
		return &Options{
			Method: u.Method,
			Data:   map[string]interface{}{"name": u.Name},
		}, nil
	})

	assert.Equal(t, Key("/user", nil), decl.Key)

	testCases := []struct {
		method   string
		expected string
	}{
		{"", "POST"},
		{"GET", "POST"},
		{"put", "PUT"},
		{"PATCH", "PATCH"},
		{"DELETE", "DELETE"},
	}
	for _, testCase := range testCases {
		t.Run("method "+testCase.method, func(t *testing.T) {
			o := decl.Fetch(context.Background(), newUser{Name: "gopher", Method: testCase.method}, nil)

			require.NoError(t, o.Err())
			_, opts := root.last()
			assert.Equal(t, testCase.expected, opts.Method)
			assert.Equal(t, decl.Key, opts.Key)
			assert.Equal(t, map[string]interface{}{"name": "gopher"}, opts.Data)
		})
	}

	t.Run("extra wins", func(t *testing.T) {
		decl.Fetch(context.Background(), newUser{Name: "gopher"}, &Options{Method: "GET", Label: "x"})

		_, opts := root.last()
		assert.Equal(t, "GET", opts.Method)
		assert.Equal(t, "x", opts.Label)
	})

	for _, name := range []string{"", "panic"} {
		t.Run("builder failure "+name, func(t *testing.T) {
			n := len(root.resources)

			o := decl.Fetch(context.Background(), newUser{Name: name}, nil)

			assert.Len(t, root.resources, n, "executor must not be called")
			assert.True(t, o.Failed())
			assert.False(t, o.Resolved())
			assert.Equal(t, KindConfig, o.Kind())
		})
	}

	t.Run("nil builder", func(t *testing.T) {
		assert.Panics(t, func() { DeclareFunc[int](root, "/x", nil) })
	})
}

func TestDeclare_Client(t *testing.T) {
	mockDoer := newMockHTTPDoer(t)
	cl := &Client{HTTPDoer: mockDoer}
	decl := DeclareFunc(WithBase(cl, "http://example.com"), "/user", func(id int) (*Options, error) {
		return &Options{Data: id, Form: map[string]interface{}{"id": id}}, nil
	})

	o := decl.Fetch(context.Background(), 1, nil)

	mockDoer.AssertNotCalled(t, "Do", mock.Anything)
	assert.ErrorIs(t, o.Err(), ErrMultipleBodies)
	assert.Equal(t, KindConfig, o.Kind())
}
