// Package mcptool exposes a calculator session as MCP tools over stdio.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rbright/caltwo/internal/session"
)

// Tool names
const (
	ToolPress   = "press"
	ToolDisplay = "display"
	ToolClear   = "clear"
)

// Tools binds MCP tool handlers to one session controller.
type Tools struct {
	controller *session.Controller
}

// New creates tool handlers for controller.
func New(controller *session.Controller) *Tools {
	return &Tools{controller: controller}
}

// NewServer builds an MCP server with every calculator tool registered.
func NewServer(name, version string, controller *session.Controller) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	New(controller).Register(s)
	return s
}

// Serve blocks serving s on stdin/stdout.
func Serve(s *server.MCPServer) error {
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serve mcp stdio: %w", err)
	}
	return nil
}

// Register adds the calculator tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(pressTool(), t.HandlePress)
	s.AddTool(displayTool(), t.HandleDisplay)
	s.AddTool(clearTool(), t.HandleClear)
}

func pressTool() mcp.Tool {
	return mcp.NewTool(ToolPress,
		mcp.WithDescription("Press calculator buttons in order and return the display. "+
			"Labels: 0-9 . + - × ÷ = C ← (aliases: * x / bs)"),
		mcp.WithString("buttons", mcp.Required(), mcp.Description("Space-separated button labels, e.g. \"2 + 3 =\"")),
	)
}

func displayTool() mcp.Tool {
	return mcp.NewTool(ToolDisplay,
		mcp.WithDescription("Return the current calculator display"),
	)
}

func clearTool() mcp.Tool {
	return mcp.NewTool(ToolClear,
		mcp.WithDescription("Reset the calculator to 0"),
	)
}

// HandlePress processes the press tool request.
func (t *Tools) HandlePress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buttons := mcp.ParseString(req, "buttons", "")
	if strings.TrimSpace(buttons) == "" {
		return mcp.NewToolResultError("buttons parameter is required"), nil
	}

	state, err := t.controller.Press(ctx, buttons)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (display: %s)", err, state.Display())), nil
	}
	return mcp.NewToolResultText(state.Display()), nil
}

// HandleDisplay processes the display tool request.
func (t *Tools) HandleDisplay(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.controller.Display()), nil
}

// HandleClear processes the clear tool request.
func (t *Tools) HandleClear(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.controller.Clear(ctx).Display()), nil
}
