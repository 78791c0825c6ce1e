package main

import (
	"context"
	"os"

	"github.com/SaiNageswarS/course-rag/appconfig"
	"github.com/SaiNageswarS/course-rag/chunker"
	"github.com/SaiNageswarS/course-rag/db"
	"github.com/SaiNageswarS/course-rag/embedding"
	"github.com/SaiNageswarS/course-rag/handlers"
	"github.com/SaiNageswarS/course-rag/ingest"
	"github.com/SaiNageswarS/course-rag/llm"
	"github.com/SaiNageswarS/course-rag/memory"
	"github.com/SaiNageswarS/course-rag/search"
	"github.com/SaiNageswarS/course-rag/services"
	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	ccfgg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", ccfgg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	gormDB, err := db.Connect(ccfgg.PostgresDSN)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	ollamaClient, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Fatal("Failed to create Ollama client", zap.Error(err))
	}

	claude := llm.NewAnthropicClient(ccfgg.AnthropicModel)
	embedder := embedding.ProvideOllamaEmbedder(ollamaClient, ccfgg.EmbeddingModel)

	courses := db.ProvideCourseRepository(gormDB)
	chunks := db.ProvideChunkRepository(gormDB)

	resolver := search.NewCourseResolver(courses, ccfgg.CourseMatchThreshold)
	retriever := search.NewRetriever(resolver, chunks, embedder, ccfgg.SearchTopK)
	searchTool := search.NewContentSearchTool(retriever)

	ingestor := ingest.ProvideIngestor(courses,
		chunker.New(ccfgg.ChunkSize, ccfgg.ChunkOverlap), embedder)

	assistant := services.ProvideCourseAssistant(
		claude,
		searchTool,
		memory.ProvideSessionMemory(ccfgg.MaxExchanges),
		ingestor,
		courses,
		ccfgg.MaxTokens,
	)

	ingestStartupFolder(assistant, ccfgg.CourseDocsDir)

	s := server.NewMCPServer(
		"course-rag",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	askTool := mcp.NewTool(
		"ask_course",
		mcp.WithDescription("Answers questions about ingested course materials using retrieval-augmented generation. Returns JSON with the answer, source attributions and the session id."),
		mcp.WithString("query",
			mcp.Description("The question to answer"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier for conversation continuity; omit to start a new session"),
		),
	)

	statsTool := mcp.NewTool(
		"course_stats",
		mcp.WithDescription("Returns the number of ingested courses and their titles as JSON."),
	)

	ingestTool := mcp.NewTool(
		"ingest_courses",
		mcp.WithDescription("Ingests every course document in a folder. Existing course titles are skipped. Returns JSON counters."),
		mcp.WithString("folder",
			mcp.Description("Path of the folder containing .txt course documents"),
			mcp.Required(),
		),
	)

	s.AddTool(askTool, handlers.ProvideAskHandler(assistant).Handle)
	s.AddTool(statsTool, handlers.ProvideStatsHandler(assistant).Handle)
	s.AddTool(ingestTool, handlers.ProvideIngestHandler(assistant).Handle)

	if err := server.ServeStdio(s); err != nil {
		logger.Fatal("Failed to serve MCP", zap.Error(err))
	}
}

// ingestStartupFolder loads the configured docs folder once at boot so the
// assistant is queryable immediately. A missing folder is not fatal.
func ingestStartupFolder(assistant *services.CourseAssistant, folder string) {
	if folder == "" {
		return
	}
	if _, err := os.Stat(folder); err != nil {
		logger.Info("Course docs folder not found, skipping startup ingestion",
			zap.String("folder", folder))
		return
	}

	if _, err := assistant.IngestFolder(context.Background(), folder); err != nil {
		logger.Error("Startup ingestion failed", zap.String("folder", folder), zap.Error(err))
	}
}
