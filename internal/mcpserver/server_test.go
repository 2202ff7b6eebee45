package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/minjae-im/dallyeok/internal/holiday"
	"github.com/minjae-im/dallyeok/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.TestDB(t), holiday.NewSource())
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_events":
		result, err = srv.listEvents(ctx, req)
	case "search_events":
		result, err = srv.searchEvents(ctx, req)
	case "get_week":
		result, err = srv.getWeek(ctx, req)
	case "get_holidays":
		result, err = srv.getHolidays(ctx, req)
	case "create_event":
		result, err = srv.createEvent(ctx, req)
	case "delete_event":
		result, err = srv.deleteEvent(ctx, req)
	case "get_event_contract":
		result, err = srv.getEventContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

const meetingJSON = `{
	"title": "주간 회의",
	"date": "2024-07-01",
	"startTime": "10:00",
	"endTime": "11:00",
	"description": "",
	"location": "회의실",
	"category": "업무",
	"repeat": {"type": "none", "interval": 0},
	"notificationTime": 10
}`

func TestCreateAndListEvents(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_event", map[string]interface{}{"event": meetingJSON})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"id": "1"`) {
		t.Errorf("create result = %q, want assigned id 1", resultText(r))
	}

	r = callTool(t, srv, "list_events", map[string]interface{}{})
	if !strings.Contains(resultText(r), "주간 회의") {
		t.Errorf("list result = %q, want created event", resultText(r))
	}
}

func TestCreateEventWithoutRepeat(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_event", map[string]interface{}{
		"event": `{
			"title": "팀 회의",
			"date": "2024-10-15",
			"startTime": "09:00",
			"endTime": "10:00"
		}`,
	})
	if r.IsError {
		t.Fatalf("create without repeat failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"type": "none"`) {
		t.Errorf("stored event = %q, want repeat type none", resultText(r))
	}
}

func TestCreateEventRejectsInvalid(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_event", map[string]interface{}{
		"event": `{"title": "", "date": "2024-07-01"}`,
	})
	if !r.IsError {
		t.Error("expected error for event with missing fields")
	}
}

func TestCreateEventOverlapGate(t *testing.T) {
	srv := testServer(t)

	_ = callTool(t, srv, "create_event", map[string]interface{}{"event": meetingJSON})

	overlapping := strings.Replace(meetingJSON, "주간 회의", "겹치는 회의", 1)
	r := callTool(t, srv, "create_event", map[string]interface{}{"event": overlapping})
	if !r.IsError {
		t.Fatal("expected overlap refusal")
	}
	if !strings.Contains(resultText(r), "overlaps") {
		t.Errorf("overlap message = %q", resultText(r))
	}

	r = callTool(t, srv, "create_event", map[string]interface{}{
		"event": overlapping,
		"force": true,
	})
	if r.IsError {
		t.Errorf("forced create failed: %s", resultText(r))
	}
}

func TestSearchEvents(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_event", map[string]interface{}{"event": meetingJSON})

	r := callTool(t, srv, "search_events", map[string]interface{}{
		"query": "회의",
		"date":  "2024-07-01",
		"view":  "week",
	})
	if !strings.Contains(resultText(r), "주간 회의") {
		t.Errorf("search result = %q, want match", resultText(r))
	}

	r = callTool(t, srv, "search_events", map[string]interface{}{
		"query": "없는검색어",
		"date":  "2024-07-01",
		"view":  "week",
	})
	if strings.Contains(resultText(r), "주간 회의") {
		t.Errorf("search result = %q, want no match", resultText(r))
	}
}

func TestGetWeek(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_week", map[string]interface{}{"date": "2024-07-01"})
	text := resultText(r)
	if !strings.Contains(text, "2024년 7월 1주") {
		t.Errorf("week label missing: %q", text)
	}
	if !strings.Contains(text, "2024-06-30") {
		t.Errorf("week dates missing sunday: %q", text)
	}
}

func TestGetHolidays(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_holidays", map[string]interface{}{"date": "2024-10-03"})
	if !strings.Contains(resultText(r), "개천절") {
		t.Errorf("holidays = %q, want 개천절", resultText(r))
	}
}

func TestDeleteEvent(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_event", map[string]interface{}{"event": meetingJSON})

	r := callTool(t, srv, "delete_event", map[string]interface{}{"id": "1"})
	if r.IsError {
		t.Fatalf("delete failed: %s", resultText(r))
	}

	r = callTool(t, srv, "delete_event", map[string]interface{}{"id": "1"})
	if !r.IsError {
		t.Error("expected error deleting missing event")
	}
}

func TestGetEventContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_event_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "startTime") {
		t.Error("contract does not describe startTime")
	}
}
