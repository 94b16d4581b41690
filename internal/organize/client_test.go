package organize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
)

func newTestClient(endpoint string) *Client {
	return NewClient(ClientConfig{
		Endpoint:    endpoint,
		APIKey:      "secret-key",
		Model:       "test-model",
		Timeout:     2 * time.Second,
		MaxTokens:   256,
		Temperature: 0.1,
	}, logger.New("error", false))
}

func TestClientComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"groups":[]}`}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Complete(context.Background(), "classify these")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if res.Content != `{"groups":[]}` {
		t.Errorf("content = %q", res.Content)
	}
	if res.Usage == nil || res.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v, want total 15", res.Usage)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.Stream {
		t.Errorf("request = %+v, want model test-model and stream false", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "classify these" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestClientCompleteNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "x"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Model: "m", Timeout: time.Second}, logger.New("error", false))
	if _, err := c.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("authorization = %q, want none", gotAuth)
	}
}

func TestClientCompleteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "p")
	if err == nil {
		t.Fatal("Complete() expected error on 429")
	}
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Complete(context.Background(), "p"); err == nil {
		t.Fatal("Complete() expected error on empty choices")
	}
}

func TestClientCompleteCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(srv.URL).Complete(ctx, "p")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want context.Canceled", err)
	}
}

func TestClientCompleteTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(ClientConfig{Endpoint: srv.URL, Model: "m", Timeout: 30 * time.Millisecond}, logger.New("error", false))
	_, err := c.Complete(context.Background(), "p")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Complete() error = %v, want context.DeadlineExceeded", err)
	}
}
