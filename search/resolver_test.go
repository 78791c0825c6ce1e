package search

import (
	"context"
	"errors"
	"testing"

	"github.com/SaiNageswarS/course-rag/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepository struct {
	titles []string
	err    error
}

func (f *fakeCourseRepository) CreateWithChunks(ctx context.Context, course *db.CourseModel, chunks []*db.ChunkModel) (bool, error) {
	return false, nil
}

func (f *fakeCourseRepository) Exists(ctx context.Context, title string) (bool, error) {
	for _, t := range f.titles {
		if t == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepository) ListTitles(ctx context.Context) ([]string, error) {
	return f.titles, f.err
}

func (f *fakeCourseRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.titles)), f.err
}

func TestCourseResolver_Resolve(t *testing.T) {
	repo := &fakeCourseRepository{titles: []string{
		"Building Towards Computer Use with Anthropic",
		"MCP: Build Rich-Context AI Apps with Anthropic",
		"Introduction to Retrieval",
	}}
	resolver := NewCourseResolver(repo, 0.6)

	tests := []struct {
		name    string
		rawName string
		want    string
	}{
		{"exact title", "Introduction to Retrieval", "Introduction to Retrieval"},
		{"case insensitive", "introduction to retrieval", "Introduction to Retrieval"},
		{"partial name", "MCP", "MCP: Build Rich-Context AI Apps with Anthropic"},
		{"minor typo", "Introducton to Retrieval", "Introduction to Retrieval"},
		{"dropped word", "Introduction Retrieval", "Introduction to Retrieval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(context.Background(), tt.rawName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseResolver_NoMatch(t *testing.T) {
	repo := &fakeCourseRepository{titles: []string{"Introduction to Retrieval"}}
	resolver := NewCourseResolver(repo, 0.6)

	_, err := resolver.Resolve(context.Background(), "Quantum Basket Weaving")

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCourseResolver_EmptyName(t *testing.T) {
	resolver := NewCourseResolver(&fakeCourseRepository{}, 0.6)

	_, err := resolver.Resolve(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestCourseResolver_RepositoryError(t *testing.T) {
	repo := &fakeCourseRepository{err: errors.New("db down")}
	resolver := NewCourseResolver(repo, 0.6)

	_, err := resolver.Resolve(context.Background(), "anything")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}
