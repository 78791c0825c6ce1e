package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/course-rag/agent"
	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/ollama/ollama/api"
)

const ContentSearchToolName = "search_course_content"

// ContentSearchTool exposes the retriever to the model as a callable tool.
type ContentSearchTool struct {
	retriever *Retriever
}

func NewContentSearchTool(retriever *Retriever) *ContentSearchTool {
	return &ContentSearchTool{retriever: retriever}
}

func (t *ContentSearchTool) Schema() api.Tool {
	return agent.NewToolSchemaBuilder(ContentSearchToolName,
		"Search course materials with smart course name matching and lesson filtering").
		StringParam("query", "What to search for in the course content", true).
		StringParam("course_name", "Course title (partial matches work, e.g. 'MCP', 'Introduction')", false).
		IntParam("lesson_number", "Specific lesson number to search within (e.g. 1, 2, 3)", false).
		Build()
}

func (t *ContentSearchTool) Execute(ctx context.Context, params api.ToolCallFunctionArguments) (*schema.ToolResult, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("missing required parameter 'query'")
	}

	courseName, _ := params["course_name"].(string)

	// JSON numbers decode as float64.
	var lessonNumber *int
	if raw, ok := params["lesson_number"].(float64); ok {
		n := int(raw)
		lessonNumber = &n
	}

	result, err := t.retriever.Search(ctx, query, courseName, lessonNumber)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return &schema.ToolResult{
				ToolName: ContentSearchToolName,
				Content:  fmt.Sprintf("No course found matching '%s'.", courseName),
			}, nil
		}
		return nil, err
	}

	if result.Empty() {
		return &schema.ToolResult{
			ToolName: ContentSearchToolName,
			Content:  emptyResultMessage(courseName, lessonNumber),
		}, nil
	}

	return &schema.ToolResult{
		ToolName: ContentSearchToolName,
		Content:  formatResults(result),
		Sources:  result.Sources,
	}, nil
}

// formatResults renders each chunk under a bracketed course and lesson
// header so the model can attribute content.
func formatResults(result *Result) string {
	blocks := make([]string, 0, len(result.Results))
	for i, scored := range result.Results {
		header := result.Sources[i].Label()
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", header, scored.Chunk.Content))
	}
	return strings.Join(blocks, "\n\n")
}

func emptyResultMessage(courseName string, lessonNumber *int) string {
	var scope strings.Builder
	scope.WriteString("No relevant content found")
	if courseName != "" {
		scope.WriteString(fmt.Sprintf(" in course '%s'", courseName))
	}
	if lessonNumber != nil {
		scope.WriteString(fmt.Sprintf(" in lesson %d", *lessonNumber))
	}
	scope.WriteString(".")
	return scope.String()
}
