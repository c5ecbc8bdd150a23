// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes rollover settings and dry runs over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/rollover/internal/apperr"
	"github.com/starford/rollover/internal/models"
	"github.com/starford/rollover/internal/parser"
	"github.com/starford/rollover/internal/rollover"
)

const todoFormatURI = "rollover://todo-format"

// History lists recorded rollovers.
type History interface {
	ListRollovers(limit int) ([]models.Rollover, error)
}

// Server wraps the MCP server with rollover tools.
type Server struct {
	mcp     *server.MCPServer
	svc     *rollover.Service
	history History
}

// New creates a new MCP server with all rollover tools registered.
func New(svc *rollover.Service, history History, version string) *Server {
	s := &Server{svc: svc, history: history}

	s.mcp = server.NewMCPServer(
		"Rollover",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_template_headings",
		mcp.WithDescription("List the headings of the daily note template that todos can be inserted under, plus \"none\"."),
	), s.listTemplateHeadings)

	s.mcp.AddTool(mcp.NewTool("get_template_heading",
		mcp.WithDescription("Return the heading todos are currently inserted under, or \"none\" when they are appended."),
	), s.getTemplateHeading)

	s.mcp.AddTool(mcp.NewTool("set_template_heading",
		mcp.WithDescription("Choose the template heading todos are inserted under. "+
			"Must be one of the values returned by list_template_headings."),
		mcp.WithString("heading", mcp.Required(), mcp.Description("Exact heading line, e.g. \"## Tasks\", or \"none\"")),
	), s.setTemplateHeading)

	s.mcp.AddTool(mcp.NewTool("extract_todos",
		mcp.WithDescription("Return the unfinished todo lines that would be carried over from the given note text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Markdown note content")),
	), s.extractTodos)

	s.mcp.AddTool(mcp.NewTool("preview_rollover",
		mcp.WithDescription("Dry-run a rollover into an existing daily note without writing it."),
		mcp.WithString("note", mcp.Required(), mcp.Description("Vault-relative path, e.g. daily/2024-01-02.md")),
	), s.previewRollover)

	s.mcp.AddTool(mcp.NewTool("list_rollovers",
		mcp.WithDescription("List recent rollovers, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 50)")),
	), s.listRollovers)

	s.mcp.AddResource(
		mcp.NewResource(todoFormatURI, "Todo Format",
			mcp.WithResourceDescription("Which lines are carried over between daily notes and where they are inserted."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTodoFormat,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listTemplateHeadings(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	candidates, err := s.svc.HeadingCandidates(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(candidates, "\n")), nil
}

func (s *Server) getTemplateHeading(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.svc.TemplateHeading()), nil
}

func (s *Server) setTemplateHeading(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	heading, err := req.RequireString("heading")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SetTemplateHeading(ctx, heading); err != nil {
		if errors.Is(err, apperr.ErrInvalidHeading) {
			return mcp.NewToolResultError(fmt.Sprintf("%q is not a template heading; call list_template_headings", heading)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("template heading: %s", heading)), nil
}

func (s *Server) extractTodos(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todos := parser.ExtractTodos(text)
	if len(todos) == 0 {
		return mcp.NewToolResultText("no unfinished todos"), nil
	}
	return mcp.NewToolResultText(strings.Join(todos, "\n")), nil
}

func (s *Server) previewRollover(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, err := req.RequireString("note")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.svc.Preview(ctx, note)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", note)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(p, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRollovers(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.history.ListRollovers(req.GetInt("limit", 50))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no rollovers recorded"), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readTodoFormat(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      todoFormatURI,
			MIMEType: "text/markdown",
			Text:     TodoFormat,
		},
	}, nil
}
