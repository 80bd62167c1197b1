package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		cfg := Config{}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing API key")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		cfg := Config{APIKey: "test-key"}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != DefaultModel {
			t.Errorf("expected default model %q, got %q", DefaultModel, cfg.Model)
		}
		if cfg.APIURL != DefaultAPIURL {
			t.Errorf("expected default API URL %q, got %q", DefaultAPIURL, cfg.APIURL)
		}
	})
}

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 {
			t.Errorf("expected 1 content, got %d", len(req.Contents))
		}

		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{
					Role:  "model",
					Parts: []geminiPart{{Text: "hello"}},
				}},
			},
			UsageMetadata: &geminiUsageMetadata{
				PromptTokenCount:     10,
				CandidatesTokenCount: 5,
				TotalTokenCount:      15,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "test-key", APIURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &Request{
		Messages: []Content{
			{Role: "user", Parts: []Part{{Text: "hi"}}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "hello" {
		t.Errorf("unexpected response content: %+v", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestGenerateContentFunctionCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{
					Role: "model",
					Parts: []geminiPart{{
						FunctionCall: &geminiFunctionCall{
							Name: "search_places",
							Args: map[string]interface{}{"keyword": "coffee"},
						},
					}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "test-key", APIURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &Request{
		Messages: []Content{{Role: "user", Parts: []Part{{Text: "find coffee"}}}},
		Tools:    []Tool{{Name: "search_places", Description: "search", Parameters: map[string]interface{}{"type": "object"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc := resp.Content.Parts[0].FunctionCall
	if fc == nil || fc.Name != "search_places" {
		t.Fatalf("expected function call search_places, got %+v", resp.Content.Parts[0])
	}
	if fc.Args["keyword"] != "coffee" {
		t.Errorf("expected keyword arg 'coffee', got %v", fc.Args["keyword"])
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key invalid"}}`))
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "bad-key", APIURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.GenerateContent(context.Background(), &Request{
		Messages: []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}},
	})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}
