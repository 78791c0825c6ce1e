package llm

import (
	"context"

	"github.com/ollama/ollama/api"
)

type Capability uint8

const (
	NativeToolCalling Capability = 1 << iota
)

type LLMClient interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...LLMOption,
	) error

	// GenerateInferenceWithTools supports native tool calling. Exactly one of
	// the callbacks fires per call: contentCallback when the model answers
	// directly, toolCallback when it requests tool invocations.
	GenerateInferenceWithTools(
		ctx context.Context,
		messages []Message,
		contentCallback func(chunk string) error,
		toolCallback func(toolCalls []api.ToolCall) error,
		opts ...LLMOption,
	) error

	Capabilities() Capability

	GetModel() string
}

type LLMSettings struct {
	model       string     // model name
	temperature float64    // randomness (0.0 to 1.0)
	maxTokens   int        // maximum tokens to generate
	system      string     // system prompt
	tools       []api.Tool // tools to use for tool calling
}

// Accessors for providers implemented outside this package.
func (s *LLMSettings) Temperature() float64 { return s.temperature }
func (s *LLMSettings) MaxTokens() int       { return s.maxTokens }
func (s *LLMSettings) System() string       { return s.system }
func (s *LLMSettings) Tools() []api.Tool    { return s.tools }

type LLMOption func(*LLMSettings)

// Common options for all LLM providers
func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) LLMOption {
	return func(s *LLMSettings) { s.system = prompt }
}

func WithTools(tools []api.Tool) LLMOption {
	return func(s *LLMSettings) { s.tools = tools }
}

type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // the message content

	// IsToolResult marks user-role messages that carry a tool execution
	// result back to the model rather than actual user input.
	IsToolResult bool `json:"is_tool_result,omitempty"`
}
