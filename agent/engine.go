package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/course-rag/llm"
	"github.com/SaiNageswarS/course-rag/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

const DefaultMaxTokens = 800

// Engine runs the two-phase tool-calling conversation for a single query.
// Phase one offers the registry's tools to the model; if the model requests
// tool calls, the engine executes them and runs a second model call, without
// tools, to synthesize the final answer.
type Engine struct {
	llm       llm.LLMClient
	tools     *ToolRegistry
	maxTokens int
}

func NewEngine(client llm.LLMClient, tools *ToolRegistry, maxTokens int) *Engine {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Engine{llm: client, tools: tools, maxTokens: maxTokens}
}

// Answer resolves one user query. history is the pre-formatted transcript of
// the session's prior exchanges and may be empty.
func (e *Engine) Answer(ctx context.Context, query, history string) (string, error) {
	systemPrompt, err := prompts.RenderAssistantPrompt(history)
	if err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}

	messages := []llm.Message{
		{Role: "user", Content: query},
	}

	var answer string
	var toolCalls []api.ToolCall

	err = e.llm.GenerateInferenceWithTools(ctx, messages,
		func(chunk string) error {
			answer += chunk
			return nil
		},
		func(calls []api.ToolCall) error {
			toolCalls = calls
			return nil
		},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithTemperature(0),
		llm.WithMaxTokens(e.maxTokens),
		llm.WithTools(e.tools.Schemas()),
	)
	if err != nil {
		logger.Error("Model call failed", zap.Error(err))
		return "", err
	}

	// Direct answer, no tools requested.
	if len(toolCalls) == 0 {
		return answer, nil
	}

	messages = append(messages, llm.Message{
		Role:    "assistant",
		Content: renderToolRequests(toolCalls),
	})

	for _, call := range toolCalls {
		output := e.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
		messages = append(messages, llm.Message{
			Role:         "user",
			Content:      output,
			IsToolResult: true,
		})
	}

	// Second call synthesizes the answer from tool output. No tools are
	// offered, so the model cannot recurse.
	answer = ""
	err = e.llm.GenerateInference(ctx, messages,
		func(chunk string) error {
			answer += chunk
			return nil
		},
		llm.WithSystemPrompt(systemPrompt),
		llm.WithTemperature(0),
		llm.WithMaxTokens(e.maxTokens),
	)
	if err != nil {
		logger.Error("Model call failed after tool execution", zap.Error(err))
		return "", err
	}

	return answer, nil
}

func renderToolRequests(calls []api.ToolCall) string {
	var sb strings.Builder
	for i, call := range calls {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Calling tool '%s' with arguments: %v",
			call.Function.Name, call.Function.Arguments))
	}
	return sb.String()
}
