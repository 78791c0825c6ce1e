package handlers

import (
	"context"
	"encoding/json"

	"github.com/SaiNageswarS/course-rag/services"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

type AskHandler struct {
	assistant *services.CourseAssistant
}

func ProvideAskHandler(assistant *services.CourseAssistant) *AskHandler {
	return &AskHandler{assistant: assistant}
}

func (h *AskHandler) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("No query provided"), nil
	}

	sessionID := req.GetString("session_id", "")

	answer, err := h.assistant.Query(ctx, query, sessionID)
	if err != nil {
		// Upstream failure detail stays in the logs; callers get a generic
		// message.
		logger.Error("Query failed", zap.Error(err))
		return mcp.NewToolResultError("Query failed. Please try again."), nil
	}

	jsonResponse, err := json.Marshal(answer)
	if err != nil {
		return mcp.NewToolResultError("Failed to marshal answer: " + err.Error()), nil
	}

	return mcp.NewToolResultText(string(jsonResponse)), nil
}
