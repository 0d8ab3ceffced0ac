// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	urlpkg "net/url"
)

// MergeParams overlays params onto the query string of resource, which
// may be a complete URL or a bare path. A key in params replaces every
// existing value of the same key; keys not named in params are kept. A
// nil value removes the key. The resulting query string is sorted by
// key.
//
//	MergeParams("/user", map[string]interface{}{"id": "a"})
//	// /user?id=a
//	MergeParams("https://example.com/user?id=a&for=b", map[string]interface{}{"id": "c"})
//	// https://example.com/user?for=b&id=c
//
// If params is empty, resource is returned unchanged.
func MergeParams(resource string, params map[string]interface{}) (string, error) {
	if len(params) == 0 {
		return resource, nil
	}
	u, err := urlpkg.Parse(resource)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		if v == nil {
			q.Del(k)
			continue
		}
		q[k] = paramValues(v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func paramValues(v interface{}) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case []string:
		return append([]string(nil), x...)
	case []interface{}:
		s := make([]string, len(x))
		for i := range x {
			s[i] = fmt.Sprint(x[i])
		}
		return s
	default:
		return []string{fmt.Sprint(x)}
	}
}
