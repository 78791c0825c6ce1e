package handlers

import (
	"context"
	"encoding/json"

	"github.com/SaiNageswarS/course-rag/services"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

type IngestHandler struct {
	assistant *services.CourseAssistant
}

func ProvideIngestHandler(assistant *services.CourseAssistant) *IngestHandler {
	return &IngestHandler{assistant: assistant}
}

func (h *IngestHandler) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := req.GetString("folder", "")
	if folder == "" {
		return mcp.NewToolResultError("No folder provided"), nil
	}

	report, err := h.assistant.IngestFolder(ctx, folder)
	if err != nil {
		logger.Error("Ingestion failed", zap.String("folder", folder), zap.Error(err))
		return mcp.NewToolResultError("Ingestion failed: " + err.Error()), nil
	}

	jsonResponse, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError("Failed to marshal report: " + err.Error()), nil
	}

	return mcp.NewToolResultText(string(jsonResponse)), nil
}
