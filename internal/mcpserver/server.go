// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes dallyeok calendar tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/minjae-im/dallyeok/internal/calendar"
	"github.com/minjae-im/dallyeok/internal/event"
	"github.com/minjae-im/dallyeok/internal/holiday"
	"github.com/minjae-im/dallyeok/internal/store"
)

// Server wraps the MCP server with dallyeok tools.
type Server struct {
	mcp      *server.MCPServer
	db       *store.DB
	holidays *holiday.Source
}

// New creates a new MCP server with all dallyeok tools registered.
func New(db *store.DB, holidays *holiday.Source) *Server {
	s := &Server{db: db, holidays: holidays}

	s.mcp = server.NewMCPServer(
		"Dallyeok",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List all stored calendar events."),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("search_events",
		mcp.WithDescription("Search events by text across title, description, and location, "+
			"bounded to the week or month containing a date."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search term (empty matches all)")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Anchor date, YYYY-MM-DD")),
		mcp.WithString("view", mcp.Description("Window: week, month, or empty for no window")),
	), s.searchEvents)

	s.mcp.AddTool(mcp.NewTool("get_week",
		mcp.WithDescription("Return the week label and the seven dates of the week containing a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Anchor date, YYYY-MM-DD")),
	), s.getWeek)

	s.mcp.AddTool(mcp.NewTool("get_holidays",
		mcp.WithDescription("Return the public holidays of the month containing a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Anchor date, YYYY-MM-DD")),
	), s.getHolidays)

	s.mcp.AddTool(mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event. The event JSON MUST follow the canonical "+
			"format (read it via the get_event_contract tool first). Creation is refused when the "+
			"event overlaps an existing one unless force is true."),
		mcp.WithString("event", mcp.Required(), mcp.Description("Event JSON following the contract")),
		mcp.WithBoolean("force", mcp.Description("Create even when the event overlaps existing ones")),
	), s.createEvent)

	s.mcp.AddTool(mcp.NewTool("delete_event",
		mcp.WithDescription("Delete a calendar event by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Event id")),
	), s.deleteEvent)

	s.mcp.AddTool(mcp.NewTool("get_event_contract",
		mcp.WithDescription("Returns the canonical dallyeok event format contract. "+
			"Call this before creating events to ensure correct structure."),
	), s.getEventContract)

	// Resource: event format contract.
	s.mcp.AddResource(
		mcp.NewResource("dallyeok://event-format", "Event Format Contract",
			mcp.WithResourceDescription("Canonical event JSON format that all created events must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEventFormatResource,
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

func (s *Server) listEvents(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	events, err := s.db.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(events, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dateArg, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	anchor, err := calendar.ParseDate(dateArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %s", dateArg)), nil
	}
	view := event.View(req.GetString("view", ""))

	events, err := s.db.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(event.Filtered(events, query, anchor, view), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getWeek(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateArg, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	anchor, err := calendar.ParseDate(dateArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %s", dateArg)), nil
	}

	week := calendar.WeekDates(anchor)
	dates := make([]string, len(week))
	for i, d := range week {
		dates[i] = calendar.FormatDate(d)
	}
	out, _ := json.MarshalIndent(map[string]any{
		"label": calendar.FormatWeek(anchor),
		"dates": dates,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getHolidays(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateArg, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	anchor, err := calendar.ParseDate(dateArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %s", dateArg)), nil
	}
	out, _ := json.MarshalIndent(s.holidays.ForMonth(anchor), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var ev event.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid event JSON: %v", err)), nil
	}
	if err := ev.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !req.GetBool("force", false) {
		existing, err := s.db.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if overlapping := event.FindOverlapping(ev, existing); len(overlapping) > 0 {
			out, _ := json.Marshal(overlapping)
			return mcp.NewToolResultError(fmt.Sprintf("event overlaps existing events (pass force to create anyway): %s", out)), nil
		}
	}

	created, err := s.db.Create(ctx, ev)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(created, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.db.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted event %s", id)), nil
}

func (s *Server) getEventContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EventFormatContract), nil
}

func (s *Server) readEventFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dallyeok://event-format",
			MIMEType: "text/markdown",
			Text:     EventFormatContract,
		},
	}, nil
}
