package llm

import "context"

// Provider defines the interface for LLM providers. The screener only
// needs single-turn completions, so the interface stays minimal.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request holds a single-turn completion request.
type Request struct {
	System      string // optional system prompt
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response holds the completion from the provider.
type Response struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
}
