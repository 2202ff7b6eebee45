// Package syncer coordinates event CRUD against the remote store and keeps
// the local in-memory list consistent with it.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minjae-im/dallyeok/internal/apperr"
	"github.com/minjae-im/dallyeok/internal/event"
)

// Client speaks the remote store's HTTP contract.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type eventsEnvelope struct {
	Events []event.Event `json:"events"`
}

// FetchEvents retrieves the full event list.
func (c *Client) FetchEvents(ctx context.Context) ([]event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events", nil)
	if err != nil {
		return nil, fmt.Errorf("syncer: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("syncer: fetch events: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("syncer: fetch events: unexpected status %d", resp.StatusCode)
	}
	var env eventsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("syncer: decode events: %w", err)
	}
	return env.Events, nil
}

// CreateEvent POSTs a draft event and returns the stored copy with its
// server-assigned id.
func (c *Client) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	return c.send(ctx, http.MethodPost, c.baseURL+"/api/events", ev, http.StatusCreated)
}

// UpdateEvent PUTs an event addressed by its id and returns the merged copy.
func (c *Client) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	u := c.baseURL + "/api/events/" + url.PathEscape(ev.ID)
	return c.send(ctx, http.MethodPut, u, ev, http.StatusOK)
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	u := c.baseURL + "/api/events/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("syncer: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("syncer: delete event: %w", err)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("syncer: delete event %s: %w", id, apperr.ErrNotFound)
	default:
		return fmt.Errorf("syncer: delete event %s: unexpected status %d", id, resp.StatusCode)
	}
}

func (c *Client) send(ctx context.Context, method, url string, ev event.Event, wantStatus int) (event.Event, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return event.Event{}, fmt.Errorf("syncer: encode event: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return event.Event{}, fmt.Errorf("syncer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return event.Event{}, fmt.Errorf("syncer: %s event: %w", method, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == wantStatus:
		var stored event.Event
		if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
			return event.Event{}, fmt.Errorf("syncer: decode event: %w", err)
		}
		return stored, nil
	case resp.StatusCode == http.StatusNotFound:
		return event.Event{}, fmt.Errorf("syncer: %s event: %w", method, apperr.ErrNotFound)
	default:
		return event.Event{}, fmt.Errorf("syncer: %s event: unexpected status %d", method, resp.StatusCode)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
