// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jeranaias/ragdesk-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeBackend
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsBackendError reports whether err carries a backend-reported error field.
func IsBackendError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeBackend
	}
	return false
}

// IsUnreachable reports whether err indicates the backend could not be reached.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeConnection
	}
	return errors.Is(err, ErrUnreachable)
}

// UserMessage returns the text to surface in a banner or placeholder for err.
// Backend-reported errors pass through verbatim; transport errors keep their
// wrapped description, matching how the web client showed exception text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeBackend {
		return clientErr.Message
	}
	return err.Error()
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (no trailing slash).
	BaseURL string

	// Timeout for plain request/response calls (default: 30s).
	Timeout time.Duration

	// QueryTimeout for /query-with-history, which waits on retrieval plus
	// LLM generation and needs more headroom (default: 120s).
	QueryTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "https://ushapangeni.com.np",
		Timeout:      30 * time.Second,
		QueryTimeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the ragdesk backend.
// It is safe for concurrent use.
type Client struct {
	config      *ClientConfig
	httpClient  *http.Client
	queryClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.QueryTimeout == 0 {
		config.QueryTimeout = 120 * time.Second
	}

	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: config.Timeout},
		queryClient: &http.Client{Timeout: config.QueryTimeout},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON issues a request and decodes the JSON response into out.
// A nil body sends an empty POST; method GET ignores body.
func (c *Client) doJSON(ctx context.Context, httpClient *http.Client, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable", Cause: err}
	}
	defer resp.Body.Close()

	// The backend reports its errors inside 200 bodies; non-2xx means the
	// request never reached the application layer.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return nil
}

// checkEnvelope converts a success=false envelope into a backend error.
func checkEnvelope(env envelope, fallback string) error {
	if env.Success {
		return nil
	}
	msg := env.Error
	if msg == "" {
		msg = fallback
	}
	return &ClientError{Type: ErrTypeBackend, Message: msg}
}

// =============================================================================
// NICHE DIRECTORY
// =============================================================================

// ListNiches fetches the selectable content categories.
func (c *Client) ListNiches(ctx context.Context) ([]model.Niche, error) {
	var resp listNichesResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/get-niches", nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to fetch niches"); err != nil {
		return nil, err
	}
	return resp.Niches, nil
}

// AddNiche registers a new niche and returns its stored value and label.
func (c *Client) AddNiche(ctx context.Context, name string) (model.Niche, error) {
	var resp addNicheResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/add-niche", addNicheRequest{Niche: name}, &resp); err != nil {
		return model.Niche{}, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to add niche"); err != nil {
		return model.Niche{}, err
	}
	return model.Niche{Value: resp.Niche, Label: resp.DisplayNiche}, nil
}

// DeleteNiche removes a niche by value.
func (c *Client) DeleteNiche(ctx context.Context, value string) error {
	var resp envelope
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/delete-niche", addNicheRequest{Niche: value}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp, "Failed to delete niche")
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// ListConversations fetches all conversations.
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	var resp listChatsResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/get-chats", nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to fetch chats"); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

// CreateConversation creates a named conversation and returns it.
func (c *Client) CreateConversation(ctx context.Context, name string) (model.Conversation, error) {
	var resp createChatResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/create-chat", createChatRequest{ChatName: name}, &resp); err != nil {
		return model.Conversation{}, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to create chat"); err != nil {
		return model.Conversation{}, err
	}
	return model.Conversation{ChatID: resp.ChatID, ChatName: resp.ChatName}, nil
}

// DeleteConversation removes a conversation by id.
func (c *Client) DeleteConversation(ctx context.Context, chatID string) error {
	var resp envelope
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/delete-chat", chatIDRequest{ChatID: chatID}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp, "Failed to delete chat")
}

// History fetches the stored message history of a conversation.
func (c *Client) History(ctx context.Context, chatID string) ([]*model.Message, error) {
	var resp historyResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/get-chat-history", chatIDRequest{ChatID: chatID}, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to load chat history"); err != nil {
		return nil, err
	}
	for _, m := range resp.Messages {
		m.State = model.StateResolved
		m.ShowDetails = false
	}
	return resp.Messages, nil
}

// =============================================================================
// QUERY
// =============================================================================

// Query sends a question scoped by the selected niches and conversation.
// A backend error field comes back as an ErrTypeBackend error.
func (c *Client) Query(ctx context.Context, question string, selectedNiches []string, chatID string) (model.Answer, error) {
	if selectedNiches == nil {
		selectedNiches = []string{}
	}
	req := queryRequest{
		Question:       question,
		SelectedNiches: selectedNiches,
		ChatID:         chatID,
	}

	var resp queryResponse
	if err := c.doJSON(ctx, c.queryClient, http.MethodPost, "/query-with-history", req, &resp); err != nil {
		return model.Answer{}, err
	}
	if resp.Error != "" {
		return model.Answer{}, &ClientError{Type: ErrTypeBackend, Message: resp.Error}
	}

	return model.Answer{
		Content:    resp.Answer,
		Sources:    resp.Sources,
		NichesUsed: resp.NichesUsed,
		ChunksUsed: resp.ChunksUsed,
	}, nil
}

// =============================================================================
// INGESTION
// =============================================================================

// SyncDocuments triggers a full document sync and returns its log lines.
func (c *Client) SyncDocuments(ctx context.Context) ([]string, error) {
	var resp syncResponse
	if err := c.doJSON(ctx, c.queryClient, http.MethodPost, "/process-documents", nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "An unknown error occurred during document sync"); err != nil {
		return nil, err
	}
	return resp.Results.Logs, nil
}

// ProcessURLs submits a batch of URLs for ingestion into a niche.
func (c *Client) ProcessURLs(ctx context.Context, niche string, urls []string) ([]IngestResult, error) {
	var resp ingestResponse
	if err := c.doJSON(ctx, c.queryClient, http.MethodPost, "/process-urls", processURLsRequest{Niche: niche, URLs: urls}, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to process URLs"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ExtractPDFs crawls a page for PDFs and ingests them into a niche.
// Returns the per-file results and the extracted count.
func (c *Client) ExtractPDFs(ctx context.Context, niche, url string) ([]IngestResult, int, error) {
	var resp ingestResponse
	if err := c.doJSON(ctx, c.queryClient, http.MethodPost, "/extract-pdfs", singleURLRequest{Niche: niche, URL: url}, &resp); err != nil {
		return nil, 0, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to extract PDFs"); err != nil {
		return nil, 0, err
	}
	return resp.Results, resp.Count, nil
}

// ProcessYouTube ingests a YouTube video's transcript into a niche.
func (c *Client) ProcessYouTube(ctx context.Context, niche, url string) ([]IngestResult, error) {
	var resp ingestResponse
	if err := c.doJSON(ctx, c.queryClient, http.MethodPost, "/process-youtube", singleURLRequest{Niche: niche, URL: url}, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope, "Failed to process YouTube video"); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// =============================================================================
// AUTOMATION
// =============================================================================

// RunTasks submits browser-automation tasks. Progress arrives separately on
// the SSE stream (see StreamTaskUpdates).
func (c *Client) RunTasks(ctx context.Context, tasks []AutomationTask) error {
	var resp statusResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/run-tasks", runTasksRequest{Tasks: tasks}, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		msg := resp.Error
		if msg == "" {
			msg = "failed to start tasks"
		}
		return &ClientError{Type: ErrTypeBackend, Message: msg}
	}
	return nil
}

// CloseBrowser asks the backend to tear down its automation browser.
func (c *Client) CloseBrowser(ctx context.Context) error {
	var resp statusResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/close-browser", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "success" {
		msg := resp.Error
		if msg == "" {
			msg = "failed to close browser"
		}
		return &ClientError{Type: ErrTypeBackend, Message: msg}
	}
	return nil
}
