package search

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/course-rag/db"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearchTool(chunkRepo *fakeChunkRepository, titles []string) *ContentSearchTool {
	resolver := NewCourseResolver(&fakeCourseRepository{titles: titles}, 0.6)
	retriever := NewRetriever(resolver, chunkRepo, &fakeEmbedder{vector: []float32{0.5}}, 5)
	return NewContentSearchTool(retriever)
}

func TestContentSearchTool_Schema(t *testing.T) {
	tool := newTestSearchTool(&fakeChunkRepository{}, nil)

	schema := tool.Schema()

	assert.Equal(t, ContentSearchToolName, schema.Function.Name)
	assert.Equal(t, []string{"query"}, schema.Function.Parameters.Required)
	assert.Contains(t, schema.Function.Parameters.Properties, "course_name")
	assert.Contains(t, schema.Function.Parameters.Properties, "lesson_number")
}

func TestContentSearchTool_Execute(t *testing.T) {
	lesson := 1
	chunkRepo := &fakeChunkRepository{results: []db.ScoredChunk{
		{
			Chunk: db.ChunkModel{
				Content:      "Lesson 1 content: Retrieval augments generation.",
				CourseTitle:  "Introduction to Retrieval",
				LessonNumber: &lesson,
			},
			Similarity: 0.88,
		},
	}}
	tool := newTestSearchTool(chunkRepo, []string{"Introduction to Retrieval"})

	result, err := tool.Execute(context.Background(), api.ToolCallFunctionArguments{
		"query":         "what is retrieval",
		"course_name":   "Introduction to Retrieval",
		"lesson_number": float64(1),
	})

	require.NoError(t, err)
	assert.Contains(t, result.Content, "[Introduction to Retrieval - Lesson 1]")
	assert.Contains(t, result.Content, "Retrieval augments generation.")
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Introduction to Retrieval", result.Sources[0].CourseTitle)

	require.NotNil(t, chunkRepo.gotFilter.LessonNumber)
	assert.Equal(t, 1, *chunkRepo.gotFilter.LessonNumber)
}

func TestContentSearchTool_MissingQuery(t *testing.T) {
	tool := newTestSearchTool(&fakeChunkRepository{}, nil)

	_, err := tool.Execute(context.Background(), api.ToolCallFunctionArguments{})

	assert.Error(t, err)
}

func TestContentSearchTool_NoCourseMatch(t *testing.T) {
	tool := newTestSearchTool(&fakeChunkRepository{}, []string{"Introduction to Retrieval"})

	result, err := tool.Execute(context.Background(), api.ToolCallFunctionArguments{
		"query":       "anything",
		"course_name": "Completely Unrelated Title",
	})

	// Unresolvable names come back as model-readable text, not an error.
	require.NoError(t, err)
	assert.Equal(t, "No course found matching 'Completely Unrelated Title'.", result.Content)
	assert.Empty(t, result.Sources)
}

func TestContentSearchTool_EmptyResults(t *testing.T) {
	tool := newTestSearchTool(&fakeChunkRepository{}, []string{"Introduction to Retrieval"})

	result, err := tool.Execute(context.Background(), api.ToolCallFunctionArguments{
		"query":         "anything",
		"course_name":   "Introduction to Retrieval",
		"lesson_number": float64(7),
	})

	require.NoError(t, err)
	assert.Equal(t, "No relevant content found in course 'Introduction to Retrieval' in lesson 7.", result.Content)
	assert.Empty(t, result.Sources)
}
