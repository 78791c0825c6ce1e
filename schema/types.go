package schema

import "fmt"

// Source identifies where a piece of retrieved content came from.
type Source struct {
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
}

// Label renders the source the way it is shown to callers, e.g.
// "Building RAG Systems - Lesson 3".
func (s Source) Label() string {
	if s.LessonNumber != nil {
		return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, *s.LessonNumber)
	}
	return s.CourseTitle
}

// ToolResult is the outcome of one tool execution. Content is the text fed
// back to the language model; Sources carry the attributions recovered out of
// band for display.
type ToolResult struct {
	ToolName string   `json:"tool_name"`
	Content  string   `json:"content"`
	Sources  []Source `json:"sources,omitempty"`
}

// Answer is the response of one query turn.
type Answer struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

// Stats summarizes the ingested corpus.
type Stats struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

// IngestReport counts the outcome of one folder ingestion.
type IngestReport struct {
	CoursesAdded     int `json:"courses_added"`
	ChunksAdded      int `json:"chunks_added"`
	DocumentsSkipped int `json:"documents_skipped"`
}
