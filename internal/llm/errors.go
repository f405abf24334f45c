package llm

import "fmt"

// TranslationError is a structured failure from the LLM collaborator.
// It is a distinct type from parser.SyntaxError on purpose: a failed
// translation must never be mistaken for malformed pseudocode.
type TranslationError struct {
	Code    string // short identifier, e.g. "no_api_key"
	Message string // user-facing message
}

func (e *TranslationError) Error() string {
	return e.Message
}

// ErrNoAPIKey returns an error when no API key is configured for a provider.
func ErrNoAPIKey(provider string) error {
	envVar := "the appropriate API key"
	if provider == "gemini" {
		envVar = "GEMINI_API_KEY"
	}
	return &TranslationError{
		Code:    "no_api_key",
		Message: fmt.Sprintf("No API key found for %s. Set the %s environment variable.", provider, envVar),
	}
}

// ErrAuthFailed returns an error when the API rejects the provided key.
func ErrAuthFailed(provider string) error {
	return &TranslationError{
		Code:    "auth_failed",
		Message: fmt.Sprintf("Authentication failed for %s. Check that your API key is valid and has not expired.", provider),
	}
}

// ErrRateLimit returns an error when the API rate limit is exceeded.
func ErrRateLimit(provider string) error {
	return &TranslationError{
		Code:    "rate_limit",
		Message: fmt.Sprintf("Rate limit exceeded for %s. Wait a moment and try again.", provider),
	}
}

// ErrNetworkFailure returns an error when the provider can't be reached.
func ErrNetworkFailure(provider string, detail string) error {
	return &TranslationError{
		Code:    "network_failure",
		Message: fmt.Sprintf("Could not connect to %s: %s", provider, detail),
	}
}

// ErrOllamaNotRunning returns an error when Ollama is not reachable.
func ErrOllamaNotRunning() error {
	return &TranslationError{
		Code:    "ollama_not_running",
		Message: "Could not connect to Ollama. Make sure Ollama is running (ollama serve) and accessible at its configured URL.",
	}
}

// ErrProviderError returns an error for an unexpected provider response.
func ErrProviderError(provider string, statusCode int, body string) error {
	return &TranslationError{
		Code:    "provider_error",
		Message: fmt.Sprintf("%s returned an error (HTTP %d): %s", provider, statusCode, body),
	}
}

// ErrNoProvider returns an error when no LLM provider is configured.
func ErrNoProvider() error {
	return &TranslationError{
		Code:    "no_provider",
		Message: "No LLM provider configured. Add an llm section to .efficode/config.json, or set the GEMINI_API_KEY environment variable.",
	}
}

// ErrInvalidOutput returns an error when the model produced pseudocode
// that does not parse in the dialect.
func ErrInvalidOutput(detail string) error {
	return &TranslationError{
		Code:    "invalid_output",
		Message: fmt.Sprintf("The model produced pseudocode that does not parse: %s", detail),
	}
}
