package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SaiNageswarS/course-rag/agent"
	"github.com/SaiNageswarS/course-rag/chunker"
	"github.com/SaiNageswarS/course-rag/db"
	"github.com/SaiNageswarS/course-rag/ingest"
	"github.com/SaiNageswarS/course-rag/llm"
	"github.com/SaiNageswarS/course-rag/memory"
	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/SaiNageswarS/course-rag/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	answer string
	err    error
}

func (f *stubLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(string) error, opts ...llm.LLMOption) error {
	if f.err != nil {
		return f.err
	}
	return callback(f.answer)
}

func (f *stubLLM) GenerateInferenceWithTools(ctx context.Context, messages []llm.Message, contentCallback func(string) error, toolCallback func([]api.ToolCall) error, opts ...llm.LLMOption) error {
	if f.err != nil {
		return f.err
	}
	return contentCallback(f.answer)
}

func (f *stubLLM) Capabilities() llm.Capability { return llm.NativeToolCalling }
func (f *stubLLM) GetModel() string             { return "stub-model" }

type stubTool struct{}

func (stubTool) Schema() api.Tool {
	return agent.NewToolSchemaBuilder("search_course_content", "stub").
		StringParam("query", "q", true).
		Build()
}

func (stubTool) Execute(ctx context.Context, params api.ToolCallFunctionArguments) (*schema.ToolResult, error) {
	return &schema.ToolResult{Content: "stub"}, nil
}

type emptyCourseRepository struct{}

func (emptyCourseRepository) CreateWithChunks(ctx context.Context, course *db.CourseModel, chunks []*db.ChunkModel) (bool, error) {
	return true, nil
}

func (emptyCourseRepository) Exists(ctx context.Context, title string) (bool, error) {
	return false, nil
}

func (emptyCourseRepository) ListTitles(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (emptyCourseRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newAskHandler(client llm.LLMClient) *AskHandler {
	courses := emptyCourseRepository{}
	ingestor := ingest.ProvideIngestor(courses, chunker.New(200, 50), stubEmbedder{})
	assistant := services.ProvideCourseAssistant(
		client, stubTool{}, memory.ProvideSessionMemory(2), ingestor, courses, 800)
	return ProvideAskHandler(assistant)
}

func askRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "ask_course"
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAskHandler_Success(t *testing.T) {
	handler := newAskHandler(&stubLLM{answer: "Go is a language."})

	result, err := handler.Handle(context.Background(), askRequest(map[string]any{
		"query": "What is Go?",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)

	var answer schema.Answer
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &answer))
	assert.Equal(t, "Go is a language.", answer.Answer)
	assert.NotEmpty(t, answer.SessionID)
}

func TestAskHandler_MissingQuery(t *testing.T) {
	handler := newAskHandler(&stubLLM{answer: "unused"})

	result, err := handler.Handle(context.Background(), askRequest(map[string]any{}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "No query provided", resultText(t, result))
}

func TestAskHandler_FailureHidesDetail(t *testing.T) {
	handler := newAskHandler(&stubLLM{err: errors.New("provider down: api key rejected")})

	result, err := handler.Handle(context.Background(), askRequest(map[string]any{
		"query": "anything",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)

	text := resultText(t, result)
	assert.Equal(t, "Query failed. Please try again.", text)
	assert.NotContains(t, text, "provider down")
}
