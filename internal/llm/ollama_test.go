package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docuchat/pkg/logger"
)

func newStreamServer(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("request path = %q, want /api/generate", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if req.Model == "" || req.Prompt == "" {
			t.Errorf("request is missing model or prompt: %+v", req)
		}
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}))
}

func TestGenerate_ConcatenatesFragments(t *testing.T) {
	srv := newStreamServer(t, []string{
		`{"response":"Hello","done":false}`,
		`{"response":", ","done":false}`,
		`{"response":"world","done":true}`,
	})
	defer srv.Close()

	gen := NewOllama("llama3", srv.URL, 5*time.Second, logger.New("test"))
	got, err := gen.Generate(context.Background(), "greet me")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("Generate() = %q, want %q", got, "Hello, world")
	}
}

func TestGenerate_SkipsMalformedFragments(t *testing.T) {
	// A garbage line in the stream must be dropped without losing the
	// fragments around it.
	srv := newStreamServer(t, []string{
		`{"response":"Hello","done":false}`,
		`this is not json`,
		``,
		`{"response":" world","done":true}`,
	})
	defer srv.Close()

	gen := NewOllama("llama3", srv.URL, 5*time.Second, logger.New("test"))
	got, err := gen.Generate(context.Background(), "greet me")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Hello world" {
		t.Errorf("Generate() = %q, want %q", got, "Hello world")
	}
}

func TestGenerate_Non2xxStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewOllama("llama3", srv.URL, 5*time.Second, logger.New("test"))
	if _, err := gen.Generate(context.Background(), "anything"); err == nil {
		t.Fatal("Generate() returned nil error on a 500 response")
	}
}

func TestGenerate_TransportFailureIsAnError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	gen := NewOllama("llama3", url, 2*time.Second, logger.New("test"))
	if _, err := gen.Generate(context.Background(), "anything"); err == nil {
		t.Fatal("Generate() returned nil error when the server is unreachable")
	}
}
