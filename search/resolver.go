package search

import (
	"context"
	"errors"
	"strings"

	"github.com/SaiNageswarS/course-rag/db"
	"github.com/agnivade/levenshtein"
)

// ErrNoMatch indicates no stored course title is close enough to the
// requested name.
var ErrNoMatch = errors.New("no matching course")

const DefaultMatchThreshold = 0.6

// CourseResolver maps a loosely specified course name to an exact stored
// title. Matching is case-insensitive and tolerant of partial names.
type CourseResolver struct {
	courses   db.CourseRepository
	threshold float64
}

func NewCourseResolver(courses db.CourseRepository, threshold float64) *CourseResolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}
	return &CourseResolver{courses: courses, threshold: threshold}
}

// Resolve returns the stored title best matching rawName. It returns
// ErrNoMatch when no candidate clears the similarity threshold.
func (r *CourseResolver) Resolve(ctx context.Context, rawName string) (string, error) {
	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return "", ErrNoMatch
	}

	titles, err := r.courses.ListTitles(ctx)
	if err != nil {
		return "", err
	}

	bestTitle := ""
	bestScore := 0.0

	for _, title := range titles {
		score := matchScore(rawName, title)
		if score > bestScore {
			bestScore = score
			bestTitle = title
		}
	}

	if bestScore < r.threshold {
		return "", ErrNoMatch
	}
	return bestTitle, nil
}

// matchScore combines normalized edit distance with a substring check so that
// partial names like "MCP" still resolve against long titles.
func matchScore(rawName, title string) float64 {
	query := strings.ToLower(rawName)
	candidate := strings.ToLower(title)

	if query == candidate {
		return 1.0
	}

	// A query fully contained in the title is a strong partial match,
	// weighted by how much of the title it covers.
	if strings.Contains(candidate, query) {
		coverage := float64(len(query)) / float64(len(candidate))
		if coverage < 0.75 {
			coverage = 0.75
		}
		return coverage
	}

	distance := levenshtein.ComputeDistance(query, candidate)
	longest := max(len([]rune(query)), len([]rune(candidate)))
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(distance)/float64(longest)
}
