package search

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/course-rag/db"
	"github.com/SaiNageswarS/course-rag/embedding"
	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DefaultTopK = 5

// Result carries ranked chunks plus the source attribution for each.
type Result struct {
	Results []db.ScoredChunk
	Sources []schema.Source
}

// Empty reports whether the search found anything.
func (r *Result) Empty() bool { return len(r.Results) == 0 }

// Retriever runs filtered semantic search over embedded course chunks.
type Retriever struct {
	resolver *CourseResolver
	chunks   db.ChunkRepository
	embedder embedding.Embedder
	topK     int
}

func NewRetriever(resolver *CourseResolver, chunks db.ChunkRepository, embedder embedding.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		resolver: resolver,
		chunks:   chunks,
		embedder: embedder,
		topK:     topK,
	}
}

// Search embeds the query and ranks chunks by similarity. courseName, when
// non-empty, is resolved to an exact title and the search is restricted to
// it before ranking; an unresolvable name fails the whole search rather than
// silently widening scope. lessonNumber further narrows to one lesson.
func (r *Retriever) Search(ctx context.Context, query, courseName string, lessonNumber *int) (*Result, error) {
	filter := db.SearchFilter{LessonNumber: lessonNumber}

	if courseName != "" {
		title, err := r.resolver.Resolve(ctx, courseName)
		if err != nil {
			if errors.Is(err, ErrNoMatch) {
				return nil, err
			}
			logger.Error("Course resolution failed", zap.String("course", courseName), zap.Error(err))
			return nil, status.Errorf(codes.Internal, "resolve course: %v", err)
		}
		filter.CourseTitle = title
	}

	emb, err := r.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("Failed to embed query", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "embed: %v", err)
	}

	scored, err := r.chunks.SearchSimilar(ctx, emb, filter, r.topK)
	if err != nil {
		logger.Error("Vector search failed", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "vector search: %v", err)
	}

	sources := linq.Map(scored, func(c db.ScoredChunk) schema.Source {
		return schema.Source{
			CourseTitle:  c.Chunk.CourseTitle,
			LessonNumber: c.Chunk.LessonNumber,
		}
	})

	return &Result{Results: scored, Sources: sources}, nil
}
