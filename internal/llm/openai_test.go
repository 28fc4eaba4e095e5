package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIEmbedder(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestOpenAIEmbedder_Defaults(t *testing.T) {
	p, err := NewOpenAIEmbedder(Config{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder failed: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected name openai, got %s", p.Name())
	}
	if p.Model() != string(openai.SmallEmbedding3) {
		t.Errorf("expected default model %s, got %s", openai.SmallEmbedding3, p.Model())
	}
	if p.Endpoint() != openAIDefaultBaseURL {
		t.Errorf("expected default endpoint, got %s", p.Endpoint())
	}
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("expected path /embeddings, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "text-embedding-3-small" {
			t.Errorf("unexpected model %s", req.Model)
		}
		if len(req.Input) != 2 {
			t.Errorf("expected 2 inputs, got %d", len(req.Input))
		}

		// Out of order on purpose; Index decides placement
		resp := openai.EmbeddingResponse{
			Object: "list",
			Data: []openai.Embedding{
				{Object: "embedding", Index: 1, Embedding: []float32{0, 1}},
				{Object: "embedding", Index: 0, Embedding: []float32{1, 0}},
			},
			Model: openai.SmallEmbedding3,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, err := NewOpenAIEmbedder(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder failed: %v", err)
	}

	vecs, err := p.Embed(context.Background(), []string{"The Lost Kitten", "Once upon a time, a kitten got lost."})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}
	if vecs[0][0] != 1 || vecs[1][1] != 1 {
		t.Errorf("vectors not placed by index: %v", vecs)
	}
}

func TestOpenAIEmbedder_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.EmbeddingResponse{
			Data: []openai.Embedding{{Index: 0, Embedding: []float32{1}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p, _ := NewOpenAIEmbedder(Config{APIKey: "k", BaseURL: server.URL})
	if _, err := p.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("expected error for missing embeddings")
	}
}

func TestOpenAIEmbedder_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p, _ := NewOpenAIEmbedder(Config{APIKey: "bad", BaseURL: server.URL})
	if _, err := p.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestOpenAIEmbedder_EmptyInput(t *testing.T) {
	p, _ := NewOpenAIEmbedder(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	vecs, err := p.Embed(context.Background(), nil)
	if err != nil || vecs != nil {
		t.Errorf("expected no-op for empty input, got %v, %v", vecs, err)
	}
}
