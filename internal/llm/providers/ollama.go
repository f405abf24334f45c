package providers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/config"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/llm"
)

const ollamaDefaultBaseURL = "http://localhost:11434"

// Ollama implements llm.Provider for a local Ollama server using its
// OpenAI-compatible chat completions endpoint. No API key is needed.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

func init() {
	llm.RegisterProvider("ollama", newOllama)
}

func newOllama(cfg *config.LLMConfig) (llm.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}

	return &Ollama{
		model:   cfg.Model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

// OpenAI-compatible chat completions wire types, shared by the
// non-streaming and streaming paths.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (o *Ollama) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	body := o.buildRequest(req, false)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := o.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		if isConnectionRefused(err) {
			return nil, llm.ErrOllamaNotRunning()
		}
		return nil, llm.ErrNetworkFailure("Ollama", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := o.checkError(resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	content := ""
	stopReason := ""
	if len(apiResp.Choices) > 0 {
		content = apiResp.Choices[0].Message.Content
		stopReason = apiResp.Choices[0].FinishReason
	}

	usage := llm.TokenUsage{}
	if apiResp.Usage != nil {
		usage.InputTokens = apiResp.Usage.PromptTokens
		usage.OutputTokens = apiResp.Usage.CompletionTokens
	}

	model := apiResp.Model
	if model == "" {
		model = body.Model
	}

	return &llm.Response{
		Content:    content,
		Model:      model,
		StopReason: stopReason,
		TokenUsage: usage,
	}, nil
}

func (o *Ollama) Stream(ctx context.Context, req *llm.Request) (<-chan llm.StreamChunk, error) {
	body := o.buildRequest(req, true)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := o.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		if isConnectionRefused(err) {
			return nil, llm.ErrOllamaNotRunning()
		}
		return nil, llm.ErrNetworkFailure("Ollama", err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, o.checkError(resp.StatusCode, respBody)
	}

	ch := make(chan llm.StreamChunk, 64)
	go o.readSSE(resp.Body, ch)
	return ch, nil
}

func (o *Ollama) buildRequest(req *llm.Request, stream bool) chatRequest {
	model := req.Model
	if model == "" {
		model = o.model
	}

	cr := chatRequest{
		Model:       model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      stream,
	}
	for _, msg := range req.Messages {
		cr.Messages = append(cr.Messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return cr
}

func (o *Ollama) checkError(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	switch statusCode {
	case 401, 403:
		return llm.ErrAuthFailed("Ollama")
	case 429:
		return llm.ErrRateLimit("Ollama")
	default:
		var apiErr chatError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return llm.ErrProviderError("Ollama", statusCode, apiErr.Error.Message)
		}
		return llm.ErrProviderError("Ollama", statusCode, string(body))
	}
}

// readSSE parses the OpenAI-format event stream: "data: {json}" lines
// terminated by "data: [DONE]".
func (o *Ollama) readSSE(body io.ReadCloser, ch chan<- llm.StreamChunk) {
	defer close(ch)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			ch <- llm.StreamChunk{Done: true}
			return
		}

		var resp chatResponse
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			continue
		}

		if len(resp.Choices) > 0 && resp.Choices[0].Delta.Content != "" {
			ch <- llm.StreamChunk{Delta: resp.Choices[0].Delta.Content}
		}

		if resp.Usage != nil {
			ch <- llm.StreamChunk{
				Usage: &llm.TokenUsage{
					InputTokens:  resp.Usage.PromptTokens,
					OutputTokens: resp.Usage.CompletionTokens,
				},
			}
		}
	}

	if err := scanner.Err(); err != nil {
		ch <- llm.StreamChunk{Err: err, Done: true}
		return
	}

	ch <- llm.StreamChunk{Done: true}
}

func isConnectionRefused(err error) bool {
	s := err.Error()
	return strings.Contains(s, "connection refused") || strings.Contains(s, "dial tcp")
}
