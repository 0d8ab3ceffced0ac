// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"sort"
	"strings"
)

// A File is a file-like form value. EncodeForm attaches it as a file
// part rather than as a text field.
type File struct {
	// Name is the file name sent in the part's Content-Disposition.
	Name string
	// ContentType is the part's content type. If empty,
	// application/octet-stream is used.
	ContentType string
	// Data is the file content.
	Data []byte
}

// FormData is an encoded multipart/form-data body. The executor sends
// a FormData unmodified.
type FormData struct {
	// ContentType is the full content type of the body, including the
	// multipart boundary parameter.
	ContentType string
	// Body is the encoded multipart body.
	Body []byte
}

// EncodeForm encodes one or more flat mappings of field names to
// values as a multipart/form-data body. Fields are written in key
// order, mapping by mapping. Each value is encoded as follows:
//
// • a typed nil pointer is omitted;
//
// • untyped nil is sent as the empty string;
//
// • strings, numbers and booleans are sent as text;
//
// • a *File is attached as a file part;
//
// • a non-empty slice made up entirely of files ([]*File, or []any
// holding only *File values) attaches each file under the same field
// name;
//
// • any other value is JSON-encoded into a text field, and silently
// dropped if it cannot be encoded.
func EncodeForm(fields ...map[string]interface{}) (*FormData, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, m := range fields {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeValue(w, k, m[k]); err != nil {
				return nil, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &FormData{
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func writeValue(w *multipart.Writer, key string, value interface{}) error {
	switch x := value.(type) {
	case nil:
		return w.WriteField(key, "")
	case string:
		return w.WriteField(key, x)
	case *File:
		if x == nil {
			return nil
		}
		return writeFile(w, key, x)
	case []*File:
		if len(x) > 0 && allFiles(x) {
			for _, f := range x {
				if err := writeFile(w, key, f); err != nil {
					return err
				}
			}
			return nil
		}
	case []interface{}:
		if files, ok := asFiles(x); ok {
			return writeValue(w, key, files)
		}
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return writeValue(w, key, v.Elem().Interface())
	case reflect.String:
		return w.WriteField(key, v.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return w.WriteField(key, fmt.Sprint(value))
	}

	b, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return w.WriteField(key, string(b))
}

func allFiles(files []*File) bool {
	for _, f := range files {
		if f == nil {
			return false
		}
	}
	return true
}

func asFiles(values []interface{}) ([]*File, bool) {
	if len(values) == 0 {
		return nil, false
	}
	files := make([]*File, len(values))
	for i, v := range values {
		f, ok := v.(*File)
		if !ok || f == nil {
			return nil, false
		}
		files[i] = f
	}
	return files, true
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, key string, f *File) error {
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(key), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}
