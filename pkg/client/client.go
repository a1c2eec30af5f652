package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/bridge-console/internal/models"
)

// Client is a Go SDK for the bridge-console API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new bridge-console client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error envelope returned by the server
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s - %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Status describes the outcome of the scenario load
type Status struct {
	ScenarioID string            `json:"scenario_id"`
	Name       string            `json:"name"`
	Ship       models.Ship       `json:"ship"`
	Systems    int               `json:"systems"`
	Load       models.LoadRecord `json:"load"`
}

// DamageNode is a damage node together with its subtree depth
type DamageNode struct {
	Node  models.DamageNode `json:"node"`
	Depth int               `json:"depth"`
}

// LoadOptions contains options for listing load history
type LoadOptions struct {
	Source models.LoadSource
	Limit  int
	Offset int
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	var result map[string]string
	return c.get(ctx, "/health", &result)
}

// Scenario retrieves the full scenario
func (c *Client) Scenario(ctx context.Context) (*models.Scenario, error) {
	var sc models.Scenario
	if err := c.get(ctx, "/api/v1/scenario", &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Status retrieves the scenario load status
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.get(ctx, "/api/v1/scenario/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Systems lists the top-level ship systems
func (c *Client) Systems(ctx context.Context) ([]models.System, error) {
	var result struct {
		Systems []models.System `json:"systems"`
	}
	if err := c.get(ctx, "/api/v1/scenario/systems", &result); err != nil {
		return nil, err
	}
	return result.Systems, nil
}

// System retrieves one system by ID
func (c *Client) System(ctx context.Context, id string) (*models.System, error) {
	var sys models.System
	if err := c.get(ctx, "/api/v1/scenario/systems/"+url.PathEscape(id), &sys); err != nil {
		return nil, err
	}
	return &sys, nil
}

// DamageNode looks up a damage node anywhere in the damage tree
func (c *Client) DamageNode(ctx context.Context, id string) (*DamageNode, error) {
	var node DamageNode
	if err := c.get(ctx, "/api/v1/scenario/damage/"+url.PathEscape(id), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Stations lists the enabled stations
func (c *Client) Stations(ctx context.Context) ([]models.Station, error) {
	var result struct {
		Stations []models.Station `json:"stations"`
	}
	if err := c.get(ctx, "/api/v1/stations", &result); err != nil {
		return nil, err
	}
	return result.Stations, nil
}

// Station renders the panel of one station
func (c *Client) Station(ctx context.Context, id string) (*models.Panel, error) {
	var panel models.Panel
	if err := c.get(ctx, "/api/v1/stations/"+url.PathEscape(id), &panel); err != nil {
		return nil, err
	}
	return &panel, nil
}

// Loads lists the load history
func (c *Client) Loads(ctx context.Context, opts LoadOptions) ([]models.LoadRecord, error) {
	q := url.Values{}
	if opts.Source != "" {
		q.Set("source", string(opts.Source))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/api/v1/loads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result struct {
		Loads []models.LoadRecord `json:"loads"`
	}
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Loads, nil
}

// StationFeed is a live websocket feed of one station panel
type StationFeed struct {
	conn *websocket.Conn
}

type feedMessage struct {
	Type    string        `json:"type"`
	Station string        `json:"station,omitempty"`
	Panel   *models.Panel `json:"panel,omitempty"`
	Message string        `json:"message,omitempty"`
}

// WatchStation opens the station websocket. The first panel is available from Next.
func (c *Client) WatchStation(ctx context.Context, id string) (*StationFeed, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/v1/stations/" + url.PathEscape(id) + "/ws"

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("Authorization", "Bearer "+c.apiKey)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return nil, decodeError(resp)
		}
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &StationFeed{conn: conn}, nil
}

// Next blocks until the next panel arrives
func (f *StationFeed) Next() (*models.Panel, error) {
	var msg feedMessage
	if err := f.conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("failed to read panel: %w", err)
	}
	if msg.Type == "error" {
		return nil, fmt.Errorf("station feed: %s", msg.Message)
	}
	if msg.Panel == nil {
		return nil, fmt.Errorf("station feed: unexpected message %q", msg.Type)
	}
	return msg.Panel, nil
}

// Refresh asks the server to resend the panel
func (f *StationFeed) Refresh() error {
	return f.conn.WriteJSON(feedMessage{Type: "refresh"})
}

// Close closes the feed
func (f *StationFeed) Close() error {
	return f.conn.Close()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	var result envelope
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		if result.Error != nil {
			return &APIError{Status: resp.StatusCode, Code: result.Error.Code, Message: result.Error.Message}
		}
		return &APIError{Status: resp.StatusCode, Code: "unknown", Message: "request was not successful"}
	}

	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result envelope
	if err := json.Unmarshal(body, &result); err == nil && result.Error != nil {
		return &APIError{Status: resp.StatusCode, Code: result.Error.Code, Message: result.Error.Message}
	}

	return &APIError{Status: resp.StatusCode, Code: "http_error", Message: strings.TrimSpace(string(body))}
}
