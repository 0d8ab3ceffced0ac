// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeParams(t *testing.T) {
	testCases := []struct {
		name     string
		resource string
		params   map[string]interface{}
		expected string
	}{
		{
			name:     "no params",
			resource: "/user?b=2&a=1",
			expected: "/user?b=2&a=1",
		},
		{
			name:     "bare path",
			resource: "/user",
			params:   map[string]interface{}{"id": "a"},
			expected: "/user?id=a",
		},
		{
			name:     "complete URL",
			resource: "https://github.com/user",
			params:   map[string]interface{}{"id": "a"},
			expected: "https://github.com/user?id=a",
		},
		{
			name:     "override by key",
			resource: "/x?id=a&for=b",
			params:   map[string]interface{}{"id": "c"},
			expected: "/x?for=b&id=c",
		},
		{
			name:     "override complete URL",
			resource: "https://github.com/user?id=a&for=b",
			params:   map[string]interface{}{"id": "b"},
			expected: "https://github.com/user?for=b&id=b",
		},
		{
			name:     "non-string values",
			resource: "/search",
			params: map[string]interface{}{
				"page":  2,
				"exact": true,
				"tag":   []string{"go", "http"},
				"mix":   []interface{}{1, "two"},
			},
			expected: "/search?exact=true&mix=1&mix=two&page=2&tag=go&tag=http",
		},
		{
			name:     "nil removes key",
			resource: "/x?id=a&for=b",
			params:   map[string]interface{}{"for": nil},
			expected: "/x?id=a",
		},
		{
			name:     "escaping",
			resource: "/q",
			params:   map[string]interface{}{"s": "a b&c"},
			expected: "/q?s=a+b%26c",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := MergeParams(testCase.resource, testCase.params)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}

	t.Run("invalid resource", func(t *testing.T) {
		_, err := MergeParams("http://[::1", map[string]interface{}{"a": 1})
		assert.Error(t, err)
	})
}
