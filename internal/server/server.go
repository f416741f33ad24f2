package server

import (
	"context"
	"io"

	"github.com/acm19/imagetools/internal/imaging"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Name is advertised to MCP clients during initialization.
const Name = "image-tools-mcp-server"

const instructions = "Image manipulation tools backed by ImageMagick. " +
	"All paths are local filesystem paths. Results are JSON documents."

// Server exposes the image operations as MCP tools.
type Server struct {
	processor imaging.ImageProcessor
	publisher imaging.Publisher
	defaults  imaging.Defaults
	version   string
	mcp       *mcpserver.MCPServer
}

// Option customises a Server.
type Option func(*Server)

// WithPublisher enables the upload_images tool.
func WithPublisher(p imaging.Publisher) Option {
	return func(s *Server) {
		s.publisher = p
	}
}

// WithDefaults sets the defaults advertised in tool schemas. They should
// match the processor's defaults.
func WithDefaults(d imaging.Defaults) Option {
	return func(s *Server) {
		s.defaults = d
	}
}

// WithVersion sets the advertised server version.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New creates a Server with every tool registered.
func New(processor imaging.ImageProcessor, opts ...Option) *Server {
	s := &Server{
		processor: processor,
		defaults:  imaging.DefaultDefaults(),
		version:   "1.0.0",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcpserver.NewMCPServer(Name, s.version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions(instructions),
		mcpserver.WithToolHandlerMiddleware(loggingMiddleware),
		mcpserver.WithRecovery(),
	)
	s.mcp.AddTools(s.tools()...)
	return s
}

func (s *Server) tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		{Tool: optimizeImageTool(s.defaults), Handler: s.handleOptimizeImage},
		{Tool: createThumbnailTool(), Handler: s.handleCreateThumbnail},
		{Tool: createIconTool(s.defaults), Handler: s.handleCreateIcon},
		{Tool: convertFormatTool(s.defaults), Handler: s.handleConvertFormat},
		{Tool: getImageInfoTool(), Handler: s.handleGetImageInfo},
		{Tool: listImagesTool(), Handler: s.handleListImages},
		{Tool: batchOptimizeTool(s.defaults), Handler: s.handleBatchOptimize},
		{Tool: uploadImagesTool(), Handler: s.handleUploadImages},
	}
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx is cancelled or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, in, out)
}
