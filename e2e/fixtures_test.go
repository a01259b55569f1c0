//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeBackend answers /search with a fixed image list and /extract-color with one color
type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	searches []map[string]any
}

func newFakeBackend(t *testing.T, images []string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		fb.mu.Lock()
		fb.searches = append(fb.searches, body)
		fb.mu.Unlock()

		out := make([]map[string]string, len(images))
		for i, u := range images {
			out[i] = map[string]string{"url": u}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"images": out})
	})
	mux.HandleFunc("POST /extract-color", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"hex":     "#3c5ab4",
			"rgb":     []int{60, 90, 180},
		})
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) Searches() []map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]map[string]any(nil), fb.searches...)
}

// fakeOpener records the color messages posted by the picker
type fakeOpener struct {
	*httptest.Server

	mu       sync.Mutex
	messages []map[string]string
}

func newFakeOpener(t *testing.T) *fakeOpener {
	t.Helper()
	fo := &fakeOpener{}
	fo.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var msg map[string]string
			_ = json.NewDecoder(r.Body).Decode(&msg)
			fo.mu.Lock()
			fo.messages = append(fo.messages, msg)
			fo.mu.Unlock()
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(fo.Close)
	return fo
}

func (fo *fakeOpener) Messages() []map[string]string {
	fo.mu.Lock()
	defer fo.mu.Unlock()
	return append([]map[string]string(nil), fo.messages...)
}
