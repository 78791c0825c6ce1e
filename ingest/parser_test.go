package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `Course Title: Introduction to Retrieval
Course Link: https://example.com/retrieval
Course Instructor: Ada Lovelace

Lesson 0: Welcome
Lesson Link: https://example.com/retrieval/lesson-0
Welcome to the course. This lesson introduces the syllabus.

Lesson 1: Embeddings
Embeddings map text into vectors.
Similar texts land close together.
`

func TestParseCourseDocument(t *testing.T) {
	doc, err := ParseCourseDocument("retrieval.txt", strings.NewReader(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Introduction to Retrieval", doc.Title)
	assert.Equal(t, "https://example.com/retrieval", doc.Link)
	assert.Equal(t, "Ada Lovelace", doc.Instructor)

	require.Len(t, doc.Lessons, 2)

	assert.Equal(t, 0, doc.Lessons[0].Number)
	assert.Equal(t, "Welcome", doc.Lessons[0].Title)
	assert.Equal(t, "https://example.com/retrieval/lesson-0", doc.Lessons[0].Link)
	assert.Equal(t, "Welcome to the course. This lesson introduces the syllabus.", doc.Lessons[0].Content)

	assert.Equal(t, 1, doc.Lessons[1].Number)
	assert.Equal(t, "Embeddings", doc.Lessons[1].Title)
	assert.Empty(t, doc.Lessons[1].Link)
	assert.Equal(t, "Embeddings map text into vectors.\nSimilar texts land close together.", doc.Lessons[1].Content)
}

func TestParseCourseDocument_MissingTitle(t *testing.T) {
	content := "Course Link: https://example.com\n\nLesson 1: Something\nBody text.\n"

	_, err := ParseCourseDocument("broken.txt", strings.NewReader(content))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Course Title")
}

func TestParseCourseDocument_NoLessons(t *testing.T) {
	doc, err := ParseCourseDocument("bare.txt", strings.NewReader("Course Title: Bare Course\n"))

	require.NoError(t, err)
	assert.Equal(t, "Bare Course", doc.Title)
	assert.Empty(t, doc.Lessons)
}

func TestParseCourseDocument_EmptyLessonBody(t *testing.T) {
	content := "Course Title: Sparse\n\nLesson 1: Placeholder\n\nLesson 2: Real\nActual content here.\n"

	doc, err := ParseCourseDocument("sparse.txt", strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, doc.Lessons, 2)
	assert.Empty(t, doc.Lessons[0].Content)
	assert.Equal(t, "Actual content here.", doc.Lessons[1].Content)
}
