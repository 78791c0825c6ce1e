package db

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// SearchFilter restricts the searchable chunk set before similarity ranking.
// Both fields are exact-match metadata filters, not post-hoc re-ranks.
type SearchFilter struct {
	CourseTitle  string
	LessonNumber *int
}

// ScoredChunk pairs a chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk      ChunkModel
	Similarity float64
}

// ChunkRepository is the semantic store for embedded chunks. Chunk writes
// happen inside CourseRepository.CreateWithChunks so a course and its chunks
// land in one transaction.
type ChunkRepository interface {
	// SearchSimilar returns at most limit chunks ordered by descending
	// cosine similarity, restricted to the filtered set.
	SearchSimilar(ctx context.Context, embedding []float32, filter SearchFilter, limit int) ([]ScoredChunk, error)
}

type chunkRepository struct {
	db *gorm.DB
}

func ProvideChunkRepository(gormDB *gorm.DB) ChunkRepository {
	return &chunkRepository{db: gormDB}
}

func (r *chunkRepository) SearchSimilar(ctx context.Context, embedding []float32, filter SearchFilter, limit int) ([]ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query) recovers the similarity score.
	type row struct {
		ChunkModel
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("chunks").
		Select("chunks.*, 1 - (embedding <=> ?) AS similarity", queryVector)

	if filter.CourseTitle != "" {
		query = query.Where("course_title = ?", filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		query = query.Where("lesson_number = ?", *filter.LessonNumber)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ScoredChunk, 0, len(rows))
	for _, res := range rows {
		out = append(out, ScoredChunk{Chunk: res.ChunkModel, Similarity: res.Similarity})
	}
	return out, nil
}
