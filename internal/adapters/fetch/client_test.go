package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenRouterClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewOpenRouterClient(WithOpenRouterBaseURL(srv.URL))
	body, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != `{"data": []}` {
		t.Errorf("unexpected body %q", body)
	}
}

func TestHeliconeClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/llm-costs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewHeliconeClient(WithHeliconeBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestHeliconeClientFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	client := NewHeliconeClient(WithHeliconeBaseURL(srv.URL))
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Error("non-200 status must return an error")
	}
}

func TestLiteLLMClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gpt-4o": {}}`))
	}))
	defer srv.Close()

	client := NewLiteLLMClient(WithLiteLLMURL(srv.URL))
	body, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(body) == 0 {
		t.Error("expected a payload")
	}
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOpenRouterClient(WithOpenRouterBaseURL(srv.URL))
	if _, err := client.Fetch(ctx); err == nil {
		t.Error("cancelled context must return an error")
	}
}
