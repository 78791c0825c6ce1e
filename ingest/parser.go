package ingest

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var lessonMarkerRegex = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// Lesson is one parsed lesson of a course document.
type Lesson struct {
	Number  int
	Title   string
	Link    string
	Content string
}

// CourseDocument is the parsed form of one plain-text course file.
type CourseDocument struct {
	Title      string
	Link       string
	Instructor string
	Lessons    []Lesson
}

// ParseCourseDocument reads a course document: up to three metadata header
// lines (title required, link and instructor optional), then repeated
// "Lesson N: <title>" markers, each optionally followed by a "Lesson Link:"
// line, with lesson body text running until the next marker or EOF.
func ParseCourseDocument(name string, r io.Reader) (*CourseDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &CourseDocument{}

	var current *Lesson
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		doc.Lessons = append(doc.Lessons, *current)
		current = nil
		body = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		if m := lessonMarkerRegex.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &Lesson{Number: number, Title: strings.TrimSpace(m[2])}
			continue
		}

		if current != nil {
			if link, ok := strings.CutPrefix(strings.TrimSpace(line), "Lesson Link:"); ok && len(body) == 0 {
				current.Link = strings.TrimSpace(link)
				continue
			}
			body = append(body, line)
			continue
		}

		// Header region, before the first lesson marker.
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Course Title:"):
			doc.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Title:"))
		case strings.HasPrefix(trimmed, "Course Link:"):
			doc.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Link:"))
		case strings.HasPrefix(trimmed, "Course Instructor:"):
			doc.Instructor = strings.TrimSpace(strings.TrimPrefix(trimmed, "Course Instructor:"))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if doc.Title == "" {
		return nil, fmt.Errorf("document %s is missing the required 'Course Title:' header", name)
	}

	return doc, nil
}
