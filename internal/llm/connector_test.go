package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/config"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/notation"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/report"
)

// fakeProvider is an in-memory Provider for connector tests. It records
// the last request so tests can inspect what the connector sent.
type fakeProvider struct {
	response string
	err      error
	lastReq  *Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &Response{
		Content:    f.response,
		Model:      req.Model,
		TokenUsage: TokenUsage{InputTokens: 12, OutputTokens: 34},
		StopReason: "stop",
	}, nil
}

func (f *fakeProvider) Stream(ctx context.Context, req *Request) (<-chan StreamChunk, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan StreamChunk, 2)
	ch <- StreamChunk{Delta: f.response}
	ch <- StreamChunk{Done: true}
	close(ch)
	return ch, nil
}

func newTestConnector(fake *fakeProvider) *Connector {
	return NewConnector(fake, &config.LLMConfig{
		Provider:    "fake",
		Model:       "test-model",
		MaxTokens:   256,
		Temperature: 0.3,
	})
}

func TestTranslateValidOutput(t *testing.T) {
	fake := &fakeProvider{response: "Here is the algorithm:\n```pseudocode\nx ← 1\n```\nDone."}
	c := newTestConnector(fake)

	result, err := c.Translate(context.Background(), "set x to one")
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if result.Pseudocode != "x ← 1" {
		t.Errorf("Pseudocode = %q, want %q", result.Pseudocode, "x ← 1")
	}
	if !result.Valid {
		t.Errorf("Valid = false, want true (parse error: %s)", result.ParseError)
	}
	if result.ParseError != "" {
		t.Errorf("ParseError = %q, want empty", result.ParseError)
	}
	if result.Usage.InputTokens != 12 || result.Usage.OutputTokens != 34 {
		t.Errorf("Usage = %+v, want {12 34}", result.Usage)
	}
}

func TestTranslateInvalidOutput(t *testing.T) {
	fake := &fakeProvider{response: "```pseudocode\nx := 1\n```"}
	c := newTestConnector(fake)

	result, err := c.Translate(context.Background(), "set x to one")
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if result.Valid {
		t.Fatal("Valid = true for pseudocode using :=, want false")
	}
	if result.ParseError == "" {
		t.Fatal("ParseError empty for invalid pseudocode")
	}
	if !strings.Contains(result.ParseError, "←") {
		t.Errorf("ParseError = %q, want mention of ←", result.ParseError)
	}
}

func TestTranslateEmptyOutput(t *testing.T) {
	fake := &fakeProvider{response: "```pseudocode\n```"}
	c := newTestConnector(fake)

	result, err := c.Translate(context.Background(), "do nothing")
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if result.Valid {
		t.Error("Valid = true for empty pseudocode, want false")
	}
}

func TestTranslateProviderError(t *testing.T) {
	fake := &fakeProvider{err: ErrRateLimit("fake")}
	c := newTestConnector(fake)

	_, err := c.Translate(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	var terr *TranslationError
	if !errors.As(err, &terr) {
		t.Fatalf("error type = %T, want *TranslationError", err)
	}
	if terr.Code != "rate_limit" {
		t.Errorf("Code = %q, want %q", terr.Code, "rate_limit")
	}
}

func TestTranslateSendsConfig(t *testing.T) {
	fake := &fakeProvider{response: "```pseudocode\nx ← 1\n```"}
	c := newTestConnector(fake)

	if _, err := c.Translate(context.Background(), "set x to one"); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if fake.lastReq == nil {
		t.Fatal("provider never received a request")
	}
	if fake.lastReq.Model != "test-model" {
		t.Errorf("Model = %q, want %q", fake.lastReq.Model, "test-model")
	}
	if fake.lastReq.MaxTokens != 256 {
		t.Errorf("MaxTokens = %d, want 256", fake.lastReq.MaxTokens)
	}
	if fake.lastReq.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", fake.lastReq.Temperature)
	}
	if len(fake.lastReq.Messages) != 2 {
		t.Fatalf("got %d messages, want 2 (system + user)", len(fake.lastReq.Messages))
	}
	if fake.lastReq.Messages[0].Role != RoleSystem {
		t.Errorf("first message role = %q, want %q", fake.lastReq.Messages[0].Role, RoleSystem)
	}
	if !strings.Contains(fake.lastReq.Messages[1].Content, "set x to one") {
		t.Error("user message does not carry the description")
	}
}

func TestToCode(t *testing.T) {
	fake := &fakeProvider{response: "```python\ndef f():\n    return 1\n```"}
	c := newTestConnector(fake)

	code, err := c.ToCode(context.Background(), "return 1")
	if err != nil {
		t.Fatalf("ToCode() error: %v", err)
	}
	want := "def f():\n    return 1"
	if code != want {
		t.Errorf("ToCode() = %q, want %q", code, want)
	}
}

func TestSecondOpinion(t *testing.T) {
	fake := &fakeProvider{response: "The analysis is correct: the loop dominates."}
	c := newTestConnector(fake)

	r := &report.Report{
		Algorithm: report.Algorithm{
			ID:     1,
			Source: "for i ← 1 to n do\n\tx ← x + 1",
			Kind:   report.KindIterative,
		},
		Complexity: &notation.Complexity{
			BigO:          "O(n)",
			BigOmega:      "Ω(n)",
			BigTheta:      "Θ(n)",
			Justification: "the loop body runs n times",
		},
	}

	opinion, err := c.SecondOpinion(context.Background(), r)
	if err != nil {
		t.Fatalf("SecondOpinion() error: %v", err)
	}
	if opinion != fake.response {
		t.Errorf("opinion = %q, want %q", opinion, fake.response)
	}

	// The prompt must carry the full analysis for the model to review.
	prompt := fake.lastReq.Messages[len(fake.lastReq.Messages)-1].Content
	for _, want := range []string{"O(n)", "Ω(n)", "Θ(n)", "the loop body runs n times", "for i ← 1 to n do"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("second-opinion prompt missing %q", want)
		}
	}
}

func TestClassifyPattern(t *testing.T) {
	fake := &fakeProvider{response: "Divide and Conquer"}
	c := newTestConnector(fake)

	got, err := c.ClassifyPattern(context.Background(), "MERGE-SORT(A, p, r)")
	if err != nil {
		t.Fatalf("ClassifyPattern() error: %v", err)
	}
	if got != "Divide and Conquer" {
		t.Errorf("ClassifyPattern() = %q", got)
	}
}

// ── Registry ──

func TestNewProviderNilConfig(t *testing.T) {
	_, err := NewProvider(nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}
	var terr *TranslationError
	if !errors.As(err, &terr) || terr.Code != "no_provider" {
		t.Errorf("got %v, want no_provider TranslationError", err)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(&config.LLMConfig{
		Provider: "skynet",
		Model:    "t-800",
		APIKey:   "key",
	})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "skynet") {
		t.Errorf("error %q does not name the provider", err.Error())
	}
	if !strings.Contains(err.Error(), "gemini") {
		t.Errorf("error %q does not list supported providers", err.Error())
	}
}

func TestRegisterProvider(t *testing.T) {
	fake := &fakeProvider{response: "ok"}
	RegisterProvider("recorded", func(cfg *config.LLMConfig) (Provider, error) {
		return fake, nil
	})

	p, err := NewProvider(&config.LLMConfig{
		Provider: "recorded",
		Model:    "m",
		APIKey:   "k",
	})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p.Name() != "fake" {
		t.Errorf("Name() = %q, want %q", p.Name(), "fake")
	}
}

func TestNewProviderAppliesDefaults(t *testing.T) {
	RegisterProvider("defaulted", func(cfg *config.LLMConfig) (Provider, error) {
		return &fakeProvider{}, nil
	})

	cfg := &config.LLMConfig{Provider: "defaulted", Model: "m", APIKey: "k"}
	if _, err := NewProvider(cfg); err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
}

// ── Errors ──

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err      error
		code     string
		contains string
	}{
		{ErrNoAPIKey("gemini"), "no_api_key", "GEMINI_API_KEY"},
		{ErrAuthFailed("gemini"), "auth_failed", "Authentication failed"},
		{ErrRateLimit("gemini"), "rate_limit", "Rate limit"},
		{ErrNetworkFailure("ollama", "connection refused"), "network_failure", "connection refused"},
		{ErrOllamaNotRunning(), "ollama_not_running", "ollama serve"},
		{ErrProviderError("gemini", 500, "oops"), "provider_error", "HTTP 500"},
		{ErrNoProvider(), "no_provider", "config.json"},
		{ErrInvalidOutput("bad token"), "invalid_output", "bad token"},
	}

	for _, tt := range tests {
		var terr *TranslationError
		if !errors.As(tt.err, &terr) {
			t.Errorf("%v: not a *TranslationError", tt.err)
			continue
		}
		if terr.Code != tt.code {
			t.Errorf("Code = %q, want %q", terr.Code, tt.code)
		}
		if !strings.Contains(terr.Message, tt.contains) {
			t.Errorf("Message %q missing %q", terr.Message, tt.contains)
		}
	}
}
