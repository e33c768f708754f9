// Package mcp exposes the layout editor to agents over the Model Context
// Protocol.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cynageos/calibrate/internal/config"
	"github.com/cynageos/calibrate/internal/hyprconf"
	"github.com/cynageos/calibrate/internal/platform"
)

const (
	ServerName    = "calibrate"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for display layout editing.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	backend   platform.Backend
	saver     *hyprconf.Saver
	logger    *slog.Logger

	// mu serializes tool calls: each one enumerates, edits and maybe writes.
	mu sync.Mutex
}

// NewServer creates a server that enumerates through backend and writes
// through saver.
func NewServer(cfg *config.Config, backend platform.Backend, saver *hyprconf.Saver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		config:  cfg,
		backend: backend,
		saver:   saver,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the connected displays with resolution, real position and rotation, plus the monitor line each would produce.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_layout",
		Description: "Apply moves (real coordinates) and rotations to the current layout without writing anything. Returns the monitor config text that save_layout would write and the current file content.",
	}, s.handlePreviewLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_layout",
		Description: "Apply moves and rotations, overwrite the monitor config file and ask the compositor to reload. Requires confirm=true; call preview_layout first.",
	}, s.handleSaveLayout)
}
