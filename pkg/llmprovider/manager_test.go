package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"waypilot/pkg/log"
)

type stubProvider struct {
	name     string
	resp     *Response
	err      error
	failures int // fail this many calls before succeeding
	calls    int
}

func (p *stubProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	p.calls++
	if p.failures > 0 && p.calls <= p.failures {
		return nil, errors.New("transient failure")
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.resp, nil
}

func (p *stubProvider) Name() string  { return p.name }
func (p *stubProvider) Model() string { return p.name + "-model" }

func textResponse(text string) *Response {
	return &Response{
		Content: Message{Role: "assistant", Parts: []Part{{Text: text}}},
		Usage:   &Usage{},
	}
}

func TestManagerGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("no providers", func(t *testing.T) {
		m := NewManager(nil, &Config{RetryAttempts: 1}, log.NewNoop())
		_, err := m.GenerateContent(ctx, &Request{})
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})

	t.Run("first provider succeeds", func(t *testing.T) {
		p := &stubProvider{name: "gemini", resp: textResponse("ok")}
		m := NewManager([]Provider{p}, &Config{RetryAttempts: 1}, log.NewNoop())

		resp, err := m.GenerateContent(ctx, &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "ok" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("fallback to second provider", func(t *testing.T) {
		bad := &stubProvider{name: "gemini", err: errors.New("down")}
		good := &stubProvider{name: "deepseek", resp: textResponse("fallback")}
		m := NewManager([]Provider{bad, good}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   1,
		}, log.NewNoop())

		resp, err := m.GenerateContent(ctx, &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "fallback" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("fallback disabled stops at first provider", func(t *testing.T) {
		bad := &stubProvider{name: "gemini", err: errors.New("down")}
		good := &stubProvider{name: "deepseek", resp: textResponse("unreached")}
		m := NewManager([]Provider{bad, good}, &Config{
			FallbackEnabled: false,
			RetryAttempts:   1,
		}, log.NewNoop())

		_, err := m.GenerateContent(ctx, &Request{})
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Errorf("expected ErrAllProvidersFailed, got %v", err)
		}
		if good.calls != 0 {
			t.Errorf("second provider should not be called, got %d calls", good.calls)
		}
	})

	t.Run("retry then succeed", func(t *testing.T) {
		p := &stubProvider{name: "gemini", resp: textResponse("ok"), failures: 2}
		m := NewManager([]Provider{p}, &Config{
			RetryAttempts: 3,
			RetryDelay:    time.Millisecond,
		}, log.NewNoop())

		resp, err := m.GenerateContent(ctx, &Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "ok" {
			t.Errorf("unexpected response: %+v", resp)
		}
		if p.calls != 3 {
			t.Errorf("expected 3 calls, got %d", p.calls)
		}
	})
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Provider: "gemini", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected ProviderError to unwrap to inner error")
	}
}
