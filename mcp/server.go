// Package mcp serves oxysearch tools over the Model Context Protocol.
//
// The server speaks JSON-RPC over stdio, so it can be registered with any
// MCP client as a local command:
//
//	srv := mcp.NewServer(mcp.ServerOptions{Name: "oxysearch", Version: "0.1.0"})
//	if err := srv.SetTools(toolkit.NewOxylabsTools(opts)...); err != nil {
//	    return err
//	}
//	return srv.ServeStdio(ctx)
//
// SetTools may be called again while serving to swap the tool set, e.g.
// after a configuration reload. Connected clients are notified that the
// tool list changed.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerOptions configures a Server
type ServerOptions struct {
	Name    string
	Version string
	Logger  slogger.Logger
}

// Server exposes a replaceable set of oxysearch tools to MCP clients
type Server struct {
	mcpServer *server.MCPServer
	logger    slogger.Logger
	mutex     sync.RWMutex
	toolNames []string
}

// NewServer creates a new MCP server with no tools
func NewServer(opts ServerOptions) *Server {
	if opts.Name == "" {
		opts.Name = "oxysearch"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = slogger.DefaultLogger
	}
	return &Server{
		mcpServer: server.NewMCPServer(opts.Name, opts.Version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		logger: opts.Logger,
	}
}

// SetTools replaces the served tools. The previous set stays in place if
// the new one is invalid.
func (s *Server) SetTools(tools ...oxysearch.Tool) error {
	if len(tools) == 0 {
		return NewMCPError("set tools", "", ErrNoTools)
	}
	serverTools := make([]server.ServerTool, 0, len(tools))
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		if slices.Contains(names, tool.Name()) {
			return NewMCPError("set tools", tool.Name(), ErrDuplicateTool)
		}
		serverTool, err := ConvertTool(tool)
		if err != nil {
			return err
		}
		serverTools = append(serverTools, serverTool)
		names = append(names, tool.Name())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mcpServer.SetTools(serverTools...)
	s.toolNames = names
	s.logger.Info("mcp tools registered", "tools", names)
	return nil
}

// ToolNames returns the names of the currently served tools
func (s *Server) ToolNames() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.toolNames)
}

// HandleMessage processes a single JSON-RPC message and returns the
// response, or nil for notifications.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ServeStdio serves on the process stdin and stdout until ctx is done or
// stdin is closed.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves MCP over the given reader and writer.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("mcp server listening", "tools", s.ToolNames())
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}
