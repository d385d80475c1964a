// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-rhymer"
	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/internal/testutil"
)

var errLoad = errors.New("load failed")

func newTestServer(t *testing.T, opts *Options) (*Server, *rhymer.Rhymer) {
	t.Helper()

	r := rhymer.New(testutil.Index(t, testutil.Words...), nil)
	return New(r, opts), r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestServer_rhymes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		status   int
		expected []*rhymer.Result
	}{
		{
			name:   "word",
			target: "/rhymes/cat",
			status: http.StatusOK,
			expected: []*rhymer.Result{
				{OneSyllable: []string{"bat", "hat", "kitcat"}},
			},
		},
		{
			name:   "folded word",
			target: "/rhymes/CAT",
			status: http.StatusOK,
			expected: []*rhymer.Result{
				{OneSyllable: []string{"bat", "hat", "kitcat"}},
			},
		},
		{
			name:   "max",
			target: "/rhymes/cat?max=1",
			status: http.StatusOK,
			expected: []*rhymer.Result{
				{OneSyllable: []string{"bat"}},
			},
		},
		{
			name:     "unknown word",
			target:   "/rhymes/zyzzyva",
			status:   http.StatusOK,
			expected: []*rhymer.Result{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, nil)
			w := do(t, s, http.MethodGet, test.target)
			if got, want := w.Code, test.status; got != want {
				t.Fatalf("status: got %d, want %d", got, want)
			}
			if got, want := w.Header().Get("Content-Type"), "application/json"; got != want {
				t.Errorf("Content-Type: got %q, want %q", got, want)
			}

			got := decode[[]*rhymer.Result](t, w)
			if got == nil {
				t.Fatal("response: got null, want array")
			}
			if diff := cmp.Diff(test.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("response (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestServer_rhymesBadMax(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"abc", "-2", "1.5"} {
		t.Run(v, func(t *testing.T) {
			t.Parallel()

			s, _ := newTestServer(t, nil)
			w := do(t, s, http.MethodGet, "/rhymes/cat?max="+v)
			if got, want := w.Code, http.StatusBadRequest; got != want {
				t.Fatalf("status: got %d, want %d", got, want)
			}
			if resp := decode[errorResponse](t, w); resp.Error == "" {
				t.Error("error: got empty message")
			}
		})
	}
}

func TestServer_defaultMax(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, &Options{MaxResults: 2})
	w := do(t, s, http.MethodGet, "/rhymes/cat")

	expected := []*rhymer.Result{
		{OneSyllable: []string{"bat", "hat"}},
	}
	if diff := cmp.Diff(expected, decode[[]*rhymer.Result](t, w), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("response (-want, +got):\n%s", diff)
	}
}

func TestServer_health(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/healthz")
	if got, want := w.Code, http.StatusOK; got != want {
		t.Fatalf("status: got %d, want %d", got, want)
	}

	// HELLO and TUESDAY have two variants each.
	expected := healthResponse{Status: "ok", Words: len(testutil.Words) - 2}
	if diff := cmp.Diff(expected, decode[healthResponse](t, w)); diff != "" {
		t.Errorf("response (-want, +got):\n%s", diff)
	}
}

func TestServer_reload(t *testing.T) {
	t.Parallel()

	loader := func(context.Context) (*index.Index, error) {
		return testutil.Index(t, "CAT  K AE1 T", "SPRAT  S P R AE1 T"), nil
	}
	s, r := newTestServer(t, &Options{MaxResults: rhymer.Unlimited, Loader: loader})

	w := do(t, s, http.MethodPost, "/reload")
	if got, want := w.Code, http.StatusOK; got != want {
		t.Fatalf("status: got %d, want %d", got, want)
	}
	if got, want := decode[reloadResponse](t, w).Words, 2; got != want {
		t.Errorf("words: got %d, want %d", got, want)
	}

	expected := []*rhymer.Result{
		{OneSyllable: []string{"sprat"}},
	}
	if diff := cmp.Diff(expected, r.Query("cat", rhymer.Unlimited), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Query (-want, +got):\n%s", diff)
	}
}

func TestServer_reloadFailure(t *testing.T) {
	t.Parallel()

	loader := func(context.Context) (*index.Index, error) {
		return nil, errLoad
	}
	s, r := newTestServer(t, &Options{MaxResults: rhymer.Unlimited, Loader: loader})
	before := r.Index()

	w := do(t, s, http.MethodPost, "/reload")
	if got, want := w.Code, http.StatusInternalServerError; got != want {
		t.Fatalf("status: got %d, want %d", got, want)
	}
	if got, want := decode[errorResponse](t, w).Error, errLoad.Error(); got != want {
		t.Errorf("error: got %q, want %q", got, want)
	}
	if r.Index() != before {
		t.Error("index replaced after failed reload")
	}
}

func TestServer_reloadDisabled(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)
	if got, want := do(t, s, http.MethodPost, "/reload").Code, http.StatusNotFound; got != want {
		t.Fatalf("status: got %d, want %d", got, want)
	}
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ln.Addr().String()+"/healthz", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusOK; got != want {
		t.Errorf("status: got %d, want %d", got, want)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve: did not return after cancel")
	}
}

func TestServer_Serve_drainsReload(t *testing.T) {
	t.Parallel()

	next := testutil.Index(t, "CAT  K AE1 T", "SPRAT  S P R AE1 T")
	started := make(chan struct{})
	release := make(chan struct{})
	loader := func(ctx context.Context) (*index.Index, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return next, nil
	}
	s, r := newTestServer(t, &Options{MaxResults: rhymer.Unlimited, Loader: loader})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	status := make(chan int, 1)
	go func() {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://"+ln.Addr().String()+"/reload", nil)
		if err != nil {
			status <- 0
			return
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			status <- 0
			return
		}
		_ = resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-started
	cancel()
	// Give Shutdown time to begin waiting on the active request.
	time.Sleep(100 * time.Millisecond)
	close(release)

	if got, want := <-status, http.StatusOK; got != want {
		t.Errorf("POST /reload: status: got %d, want %d", got, want)
	}
	if err := <-done; err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if r.Index() != next {
		t.Error("index not replaced by drained reload")
	}
}
