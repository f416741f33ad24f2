package server

import (
	"context"
	"time"

	"github.com/acm19/imagetools/internal/logger"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type requestIDKey struct{}

// RequestID returns the id assigned to the tool call carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func loggingMiddleware(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		ctx = context.WithValue(ctx, requestIDKey{}, id)
		start := time.Now()

		logger.Debug("Tool call started", "tool", request.Params.Name, "request_id", id)
		result, err := next(ctx, request)

		attrs := []any{"tool", request.Params.Name, "request_id", id, "duration", time.Since(start)}
		switch {
		case err != nil:
			logger.Error("Tool call failed", append(attrs, "error", err)...)
		case result != nil && result.IsError:
			logger.Warn("Tool call returned an error", append(attrs, "message", resultText(result))...)
		default:
			logger.Info("Tool call completed", attrs...)
		}
		return result, err
	}
}

func resultText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
