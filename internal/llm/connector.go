package llm

import (
	"context"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/config"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/llm/prompts"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/report"
)

// Connector orchestrates the LLM-backed operations around the core
// analysis: translating natural language into the dialect, translating
// the dialect into executable code, and producing a second opinion on a
// computed complexity. It wraps a Provider and validates generated
// pseudocode by re-parsing it.
type Connector struct {
	provider Provider
	config   *config.LLMConfig
}

// NewConnector creates a Connector with the given provider and config.
func NewConnector(provider Provider, cfg *config.LLMConfig) *Connector {
	return &Connector{
		provider: provider,
		config:   cfg,
	}
}

// TranslateResult is the result of a natural-language translation.
type TranslateResult struct {
	// RawResponse is the full LLM response.
	RawResponse string

	// Pseudocode is the extracted dialect code (fences stripped).
	Pseudocode string

	// Valid is true if the extracted pseudocode parses successfully.
	Valid bool

	// ParseError describes why the pseudocode is invalid (empty if Valid).
	ParseError string

	// Usage tracks token consumption.
	Usage TokenUsage
}

// Translate converts a natural-language algorithm description into
// dialect pseudocode and validates it against the parser.
func (c *Connector) Translate(ctx context.Context, text string) (*TranslateResult, error) {
	resp, err := c.complete(ctx, prompts.TranslatePrompt(text))
	if err != nil {
		return nil, err
	}

	code := prompts.ExtractCode(resp.Content, "pseudocode")
	valid, parseErr := validatePseudocode(code)

	return &TranslateResult{
		RawResponse: resp.Content,
		Pseudocode:  code,
		Valid:       valid,
		ParseError:  parseErr,
		Usage:       resp.TokenUsage,
	}, nil
}

// ToCode translates dialect pseudocode into an executable Python
// function. Used when the caller wants a runnable representation of an
// analyzed algorithm; the core analysis never depends on it.
func (c *Connector) ToCode(ctx context.Context, pseudocode string) (string, error) {
	resp, err := c.complete(ctx, prompts.ToCodePrompt(pseudocode))
	if err != nil {
		return "", err
	}
	return prompts.ExtractCode(resp.Content, "python"), nil
}

// SecondOpinion asks the model to review a finished report's
// complexity analysis and returns its narrative.
func (c *Connector) SecondOpinion(ctx context.Context, r *report.Report) (string, error) {
	cx := r.Complexity
	resp, err := c.complete(ctx, prompts.SecondOpinionPrompt(
		r.Algorithm.Source, cx.BigO, cx.BigOmega, cx.BigTheta, cx.Justification))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// ClassifyPattern asks the model to name the design paradigm of a
// pseudocode program (divide and conquer, dynamic programming, …).
func (c *Connector) ClassifyPattern(ctx context.Context, pseudocode string) (string, error) {
	resp, err := c.complete(ctx, prompts.ClassifyPrompt(pseudocode))
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *Connector) complete(ctx context.Context, pMsgs []prompts.Message) (*Response, error) {
	return c.provider.Complete(ctx, &Request{
		Messages:    convertMessages(pMsgs),
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
}

// validatePseudocode checks generated output against the dialect
// parser. Returns (true, "") if valid, (false, errorMessage) if not.
func validatePseudocode(code string) (bool, string) {
	if code == "" {
		return false, "empty pseudocode"
	}
	if _, err := parser.Parse(code); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// convertMessages converts prompts.Message to llm.Message.
func convertMessages(pMsgs []prompts.Message) []Message {
	msgs := make([]Message, len(pMsgs))
	for i, m := range pMsgs {
		msgs[i] = Message{
			Role:    Role(m.Role),
			Content: m.Content,
		}
	}
	return msgs
}
