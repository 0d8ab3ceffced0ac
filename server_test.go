// Copyright 2021 The fetchx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetchx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer, http2Server}

func TestMain(m *testing.M) {
	httpServer.Start()
	httpsServer.StartTLS()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	waitForServerStart(httpServer)
	waitForServerStart(httpsServer)
	waitForServerStart(http2Server)
	code := m.Run()
	httpServer.Close()
	httpsServer.Close()
	http2Server.Close()
	os.Exit(code)
}

func waitForServerStart(server *httptest.Server) {
	cl := &Client{
		HTTPDoer: server.Client(),
	}
	deadline := time.Now().Add(10 * time.Second)
	for {
		i := &serverInstruction{StatusCode: 200}
		o := cl.Execute(context.Background(), server.URL, i.toOptions(2*time.Second))
		if o.StatusCode() == 200 {
			return
		}
		if time.Now().After(deadline) {
			panic(fmt.Sprintf("Test server startup failed with status %d and error %v",
				o.StatusCode(), o.Err()))
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	case http2Server:
		return "http2"
	default:
		panic("unknown server")
	}
}

// serverInstruction tells the test server how to respond. It travels
// in the "instruction" query parameter so that the request body stays
// free for the test.
type serverInstruction struct {
	HeaderPause time.Duration
	StatusCode  int
	ContentType string
	Body        string
	// Echo replaces Body with a JSON description of the request.
	Echo bool
}

type serverEcho struct {
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	Query       map[string][]string `json:"query"`
	ContentType string              `json:"contentType"`
	Label       string              `json:"label"`
	Body        string              `json:"body"`
}

func (i *serverInstruction) toParams() map[string]interface{} {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}

	return map[string]interface{}{"instruction": string(b)}
}

func (i *serverInstruction) toOptions(d time.Duration) *Options {
	return &Options{
		Params:  i.toParams(),
		Timeout: d,
		Strict:  Bool(false),
	}
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	// Decode the instructions.
	var i serverInstruction
	q := req.URL.Query()
	if err := json.Unmarshal([]byte(q.Get("instruction")), &i); err != nil {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("failed to read instruction: %s", err.Error()))
		return
	}

	// Validate the instruction.
	if i.StatusCode == 0 {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("bad StatusCode in instruction: %v", i))
		return
	}

	body := []byte(i.Body)
	if i.Echo {
		reqBody, _ := io.ReadAll(req.Body)
		q.Del("instruction")
		body, _ = json.Marshal(serverEcho{
			Method:      req.Method,
			Path:        req.URL.Path,
			Query:       q,
			ContentType: req.Header.Get("Content-Type"),
			Label:       req.Header.Get(LabelHeader),
			Body:        string(reqBody),
		})
		i.ContentType = "application/json"
	}

	// Create the response headers.
	header := w.Header()
	header.Set("Content-Length", strconv.Itoa(len(body)))
	if i.ContentType != "" {
		header.Set("Content-Type", i.ContentType)
	}

	// Sleep for the duration indicated by the pause field. This is done
	// to allow the client to play with timeouts.
	select {
	case <-time.After(i.HeaderPause):
	case <-req.Context().Done():
		return
	}

	w.WriteHeader(i.StatusCode)
	_, _ = w.Write(body)
}
