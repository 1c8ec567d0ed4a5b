package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrMissingCredential is a configuration error: the selected provider has
// no API key. It is raised before any request is sent.
type ErrMissingCredential struct {
	Provider string
	EnvVar   string
}

func (e *ErrMissingCredential) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("%s API key is missing", e.Provider)
	}
	return fmt.Sprintf("%s API key is missing: set %s", e.Provider, e.EnvVar)
}

// ErrRateLimit is a 429 from the vendor. RetryAfter is zero when the vendor
// gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model produced nothing usable: no text, text
// that is not JSON, or JSON that breaks the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and vendor 5xx errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the reply was cut off at MaxTokens. Content
// holds the partial output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrContentBlocked means the vendor's safety system refused the prompt or
// withheld the reply. Resending the same request gets the same answer.
type ErrContentBlocked struct {
	Provider string
	Reason   string
}

func (e *ErrContentBlocked) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s blocked the response", e.Provider)
	}
	return fmt.Sprintf("%s blocked the response: %s", e.Provider, e.Reason)
}

func errEmptyContent(provider string) error {
	return fmt.Errorf("%s returned no text content", provider)
}
