package services

import (
	"context"

	"github.com/SaiNageswarS/course-rag/agent"
	"github.com/SaiNageswarS/course-rag/db"
	"github.com/SaiNageswarS/course-rag/ingest"
	"github.com/SaiNageswarS/course-rag/llm"
	"github.com/SaiNageswarS/course-rag/memory"
	"github.com/SaiNageswarS/course-rag/schema"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.uber.org/zap"
)

// CourseAssistant is the exposed boundary of the system: answer questions
// about ingested course materials, report stats and ingest new folders.
type CourseAssistant struct {
	llmClient  llm.LLMClient
	searchTool agent.Tool
	sessions   *memory.SessionMemory
	ingestor   *ingest.Ingestor
	courses    db.CourseRepository
	maxTokens  int
}

func ProvideCourseAssistant(
	llmClient llm.LLMClient,
	searchTool agent.Tool,
	sessions *memory.SessionMemory,
	ingestor *ingest.Ingestor,
	courses db.CourseRepository,
	maxTokens int,
) *CourseAssistant {
	return &CourseAssistant{
		llmClient:  llmClient,
		searchTool: searchTool,
		sessions:   sessions,
		ingestor:   ingestor,
		courses:    courses,
		maxTokens:  maxTokens,
	}
}

// Query answers one question. An empty sessionID starts a fresh session and
// the generated identifier comes back in the answer. Each query gets its own
// tool registry and engine so source attribution cannot leak between
// concurrent callers.
func (s *CourseAssistant) Query(ctx context.Context, query, sessionID string) (*schema.Answer, error) {
	if sessionID == "" {
		sessionID = memory.NewSessionID()
	}

	registry := agent.NewToolRegistry(s.searchTool)
	engine := agent.NewEngine(s.llmClient, registry, s.maxTokens)

	registry.ResetSources()
	answer, err := engine.Answer(ctx, query, s.sessions.History(sessionID))
	if err != nil {
		logger.Error("Query failed", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	sources := linq.Map(registry.LastSources(), func(src schema.Source) string {
		return src.Label()
	})

	s.sessions.Append(sessionID, query, answer)

	return &schema.Answer{
		Answer:    answer,
		Sources:   sources,
		SessionID: sessionID,
	}, nil
}

// GetStats reports the ingested course catalog.
func (s *CourseAssistant) GetStats(ctx context.Context) (*schema.Stats, error) {
	count, err := s.courses.Count(ctx)
	if err != nil {
		return nil, err
	}

	titles, err := s.courses.ListTitles(ctx)
	if err != nil {
		return nil, err
	}

	return &schema.Stats{
		TotalCourses: int(count),
		CourseTitles: titles,
	}, nil
}

// IngestFolder ingests every course document in folder. Existing course
// titles are skipped.
func (s *CourseAssistant) IngestFolder(ctx context.Context, folder string) (*schema.IngestReport, error) {
	return s.ingestor.IngestFolder(ctx, folder)
}
