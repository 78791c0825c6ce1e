package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/SaiNageswarS/course-rag/chunker"
	"github.com/SaiNageswarS/course-rag/db"
	"github.com/SaiNageswarS/course-rag/embedding"
	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// Ingestor walks a folder of course documents, chunks and embeds their
// lessons and persists courses and chunks. Re-ingestion is idempotent at
// course-title granularity: a known title is skipped, never re-indexed.
type Ingestor struct {
	courses  db.CourseRepository
	chunker  *chunker.Chunker
	embedder embedding.Embedder
}

func ProvideIngestor(courses db.CourseRepository, chunkr *chunker.Chunker, embedder embedding.Embedder) *Ingestor {
	return &Ingestor{
		courses:  courses,
		chunker:  chunkr,
		embedder: embedder,
	}
}

// IngestFolder processes every .txt document in folder. Malformed documents
// are logged and skipped; the rest of the folder still ingests.
func (ing *Ingestor) IngestFolder(ctx context.Context, folder string) (*schema.IngestReport, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		logger.Error("Failed to read course folder", zap.String("folder", folder), zap.Error(err))
		return nil, err
	}

	report := &schema.IngestReport{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		added, err := ing.ingestDocument(ctx, path)
		if err != nil {
			logger.Error("Skipping malformed course document", zap.String("path", path), zap.Error(err))
			report.DocumentsSkipped++
			continue
		}

		if added == -1 {
			// Known course title, deliberate no-op.
			continue
		}

		report.CoursesAdded++
		report.ChunksAdded += added
	}

	logger.Info("Folder ingestion complete",
		zap.String("folder", folder),
		zap.Int("coursesAdded", report.CoursesAdded),
		zap.Int("chunksAdded", report.ChunksAdded),
		zap.Int("documentsSkipped", report.DocumentsSkipped))
	return report, nil
}

// ingestDocument returns the number of chunks stored, or -1 when the course
// already exists.
func (ing *Ingestor) ingestDocument(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	doc, err := ParseCourseDocument(filepath.Base(path), file)
	if err != nil {
		return 0, err
	}

	exists, err := ing.courses.Exists(ctx, doc.Title)
	if err != nil {
		return 0, err
	}
	if exists {
		logger.Info("Course already ingested, skipping", zap.String("title", doc.Title))
		return -1, nil
	}

	// Embed before touching the database: a failed embedding skips the
	// document without writing anything, so the next run can retry it.
	chunks, err := ing.buildChunks(ctx, doc)
	if err != nil {
		return 0, err
	}

	course := &db.CourseModel{
		Title:      doc.Title,
		Link:       doc.Link,
		Instructor: doc.Instructor,
	}
	for _, lesson := range doc.Lessons {
		course.Lessons = append(course.Lessons, db.LessonModel{
			CourseTitle: doc.Title,
			Number:      lesson.Number,
			Title:       lesson.Title,
			Link:        lesson.Link,
		})
	}

	if _, err := ing.courses.CreateWithChunks(ctx, course, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// buildChunks chunks every lesson, embedding all chunk texts concurrently.
// Chunk index is zero-based across the whole course so attribution order
// survives storage.
func (ing *Ingestor) buildChunks(ctx context.Context, doc *CourseDocument) ([]*db.ChunkModel, error) {
	type pendingChunk struct {
		content      string
		lessonNumber int
	}

	var pending []pendingChunk
	for i, lesson := range doc.Lessons {
		lastLesson := i == len(doc.Lessons)-1
		texts := ing.chunker.ChunkLesson(lesson.Content, doc.Title, lesson.Number, lastLesson)
		for _, text := range texts {
			pending = append(pending, pendingChunk{content: text, lessonNumber: lesson.Number})
		}
	}

	if len(pending) == 0 {
		return nil, nil
	}

	embedTasks := make([]<-chan async.Result[[]float32], 0, len(pending))
	for _, p := range pending {
		content := p.content
		embedTasks = append(embedTasks, async.Go(func() ([]float32, error) {
			return ing.embedder.Embed(ctx, content)
		}))
	}

	embeddings, err := async.AwaitAll(embedTasks...)
	if err != nil {
		logger.Error("Failed to embed chunks", zap.String("course", doc.Title), zap.Error(err))
		return nil, err
	}

	chunks := make([]*db.ChunkModel, 0, len(pending))
	for i, p := range pending {
		lessonNumber := p.lessonNumber
		chunks = append(chunks, &db.ChunkModel{
			Content:      p.content,
			CourseTitle:  doc.Title,
			LessonNumber: &lessonNumber,
			ChunkIndex:   i,
			Embedding:    pgvector.NewVector(embeddings[i]),
		})
	}
	return chunks, nil
}
