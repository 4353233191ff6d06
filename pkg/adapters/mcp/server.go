package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/grid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const rowsURI = "tabula://rows"

// Grid is the part of the rendering-surface contract the MCP server uses.
type Grid interface {
	Describe() []grid.ColumnInfo
	Records() []map[string]any
	Record(row int) (map[string]any, error)
	Edit(row int, field, input, raw string) ([]domain.CellChange, error)
	Dispatch(row int, field string, raw any) []domain.CellChange
}

// EditArgs are the arguments of the edit_cell tool.
type EditArgs struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Input string `json:"input,omitempty"`
	Raw   string `json:"raw"`
}

// SetArgs are the arguments of the set_value tool.
type SetArgs struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// EditResult is the structured outcome of an edit tool call.
type EditResult struct {
	Changed bool                `json:"changed" jsonschema_description:"False when the edit was dropped or changed nothing"`
	Changes []domain.CellChange `json:"changes" jsonschema_description:"Cells whose value changed"`
	Record  map[string]any      `json:"record" jsonschema_description:"The edited row after the edit"`
}

// Server exposes a Grid as MCP tools.
type Server struct {
	grid      Grid
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(g Grid, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		grid:      g,
		logger:    logger,
		mcpServer: server.NewMCPServer("tabula-mcp", tabula.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_columns",
		mcp.WithDescription("List the grid columns in display order, with their types and editor kinds."),
	), s.handleListColumns)

	s.mcpServer.AddTool(mcp.NewTool("list_rows",
		mcp.WithDescription("List every row of the current dataset. Rows are addressed by their zero-based position."),
	), s.handleListRows)

	editTool := mcp.NewTool("edit_cell",
		mcp.WithDescription("Type raw text into a cell editor, as a user would. Unparseable or ill-typed input is dropped."),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row position")),
		mcp.WithString("field", mcp.Required(), mcp.Description("Column field, e.g. age or bloodPressure")),
		mcp.WithString("input", mcp.Description("Sub-field editor of a composite cell, e.g. systolic")),
		mcp.WithString("raw", mcp.Required(), mcp.Description("Raw editor content")),
		mcp.WithOutputSchema[EditResult](),
	)
	s.mcpServer.AddTool(editTool, mcp.NewStructuredToolHandler(s.handleEditCell))

	setTool := mcp.NewTool("set_value",
		mcp.WithDescription("Replace a whole cell value. The value is JSON and must match the column type."),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Zero-based row position")),
		mcp.WithString("field", mcp.Required(), mcp.Description("Column field")),
		mcp.WithString("value", mcp.Required(), mcp.Description(`JSON value, e.g. 42, "Jane" or {"systolic":120,"diastolic":80,"average":100}`)),
		mcp.WithOutputSchema[EditResult](),
	)
	s.mcpServer.AddTool(setTool, mcp.NewStructuredToolHandler(s.handleSetValue))
}

func (s *Server) handleListColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.grid.Describe())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.grid.Records())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleEditCell(ctx context.Context, request mcp.CallToolRequest, args EditArgs) (EditResult, error) {
	changes, err := s.grid.Edit(args.Row, args.Field, args.Input, args.Raw)
	if err != nil {
		s.logger.Warn("MCP EditCell: Rejected", "row", args.Row, "field", args.Field, "error", err)
		return EditResult{}, fmt.Errorf("edit failed: %w", err)
	}
	return s.result(args.Row, changes)
}

func (s *Server) handleSetValue(ctx context.Context, request mcp.CallToolRequest, args SetArgs) (EditResult, error) {
	if _, err := s.grid.Record(args.Row); err != nil {
		return EditResult{}, fmt.Errorf("set failed: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(args.Value), &value); err != nil {
		return EditResult{}, fmt.Errorf("value is not JSON: %w", err)
	}

	known := false
	for _, col := range s.grid.Describe() {
		if col.Field == args.Field {
			known = true
			break
		}
	}
	if !known {
		return EditResult{}, fmt.Errorf("set failed: %w: %s", domain.ErrUnknownField, args.Field)
	}

	return s.result(args.Row, s.grid.Dispatch(args.Row, args.Field, value))
}

func (s *Server) result(row int, changes []domain.CellChange) (EditResult, error) {
	rec, err := s.grid.Record(row)
	if err != nil {
		return EditResult{}, err
	}
	if changes == nil {
		s.logger.Debug("MCP edit changed nothing", "row", row)
		changes = []domain.CellChange{}
	}
	return EditResult{
		Changed: len(changes) > 0,
		Changes: changes,
		Record:  rec,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(rowsURI, "Current Dataset",
		mcp.WithMIMEType("application/json"),
	), s.readRows)
}

func (s *Server) readRows(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.grid.Records())
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      rowsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

