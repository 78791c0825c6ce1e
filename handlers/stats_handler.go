package handlers

import (
	"context"
	"encoding/json"

	"github.com/SaiNageswarS/course-rag/services"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

type StatsHandler struct {
	assistant *services.CourseAssistant
}

func ProvideStatsHandler(assistant *services.CourseAssistant) *StatsHandler {
	return &StatsHandler{assistant: assistant}
}

func (h *StatsHandler) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.assistant.GetStats(ctx)
	if err != nil {
		logger.Error("Stats lookup failed", zap.Error(err))
		return mcp.NewToolResultError("Stats lookup failed: " + err.Error()), nil
	}

	jsonResponse, err := json.Marshal(stats)
	if err != nil {
		return mcp.NewToolResultError("Failed to marshal stats: " + err.Error()), nil
	}

	return mcp.NewToolResultText(string(jsonResponse)), nil
}
