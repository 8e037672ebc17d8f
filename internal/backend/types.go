// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
package backend

import (
	"github.com/jeranaias/ragdesk-tui/internal/model"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// envelope carries the success/error pair common to most backend responses.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// =============================================================================
// NICHE PAYLOADS
// =============================================================================

// listNichesResponse is the /get-niches response.
type listNichesResponse struct {
	envelope
	Niches []model.Niche `json:"niches"`
}

// addNicheRequest is the /add-niche and /delete-niche request body.
type addNicheRequest struct {
	Niche string `json:"niche"`
}

// addNicheResponse is the /add-niche response.
type addNicheResponse struct {
	envelope
	Niche        string `json:"niche"`
	DisplayNiche string `json:"display_niche"`
}

// =============================================================================
// CONVERSATION PAYLOADS
// =============================================================================

// listChatsResponse is the /get-chats response.
type listChatsResponse struct {
	envelope
	Chats []model.Conversation `json:"chats"`
}

// createChatRequest is the /create-chat request body.
type createChatRequest struct {
	ChatName string `json:"chatName"`
}

// createChatResponse is the /create-chat response.
type createChatResponse struct {
	envelope
	ChatID   string `json:"chatId"`
	ChatName string `json:"chatName"`
}

// chatIDRequest is the body for /delete-chat and /get-chat-history.
type chatIDRequest struct {
	ChatID string `json:"chatId"`
}

// historyResponse is the /get-chat-history response.
type historyResponse struct {
	envelope
	Messages []*model.Message `json:"messages"`
}

// =============================================================================
// QUERY PAYLOADS
// =============================================================================

// queryRequest is the /query-with-history request body.
type queryRequest struct {
	Question       string   `json:"question"`
	SelectedNiches []string `json:"selectedNiches"`
	ChatID         string   `json:"chatId"`
}

// queryResponse is the /query-with-history response. Unlike the other
// endpoints it has no success flag: an error field alone signals failure.
type queryResponse struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	NichesUsed []string `json:"niches_used"`
	ChunksUsed int      `json:"chunks_used"`
	Error      string   `json:"error,omitempty"`
}

// =============================================================================
// INGESTION PAYLOADS
// =============================================================================

// IngestResult is one per-URL row of an ingestion response.
type IngestResult struct {
	URL         string `json:"url"`
	Status      string `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Characters  int    `json:"characters,omitempty"`
	Filename    string `json:"filename,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
	Error       string `json:"error,omitempty"`
}

// syncResponse is the /process-documents response.
type syncResponse struct {
	envelope
	Results struct {
		Logs []string `json:"logs"`
	} `json:"results"`
}

// processURLsRequest is the /process-urls request body.
type processURLsRequest struct {
	Niche string   `json:"niche"`
	URLs  []string `json:"urls"`
}

// singleURLRequest is the /extract-pdfs and /process-youtube request body.
type singleURLRequest struct {
	Niche string `json:"niche"`
	URL   string `json:"url"`
}

// ingestResponse is the response of the three URL-processing endpoints.
type ingestResponse struct {
	envelope
	Results []IngestResult `json:"results"`
	Count   int            `json:"count,omitempty"`
}

// =============================================================================
// AUTOMATION PAYLOADS
// =============================================================================

// AutomationTask is one browser-automation task submitted to /run-tasks.
type AutomationTask struct {
	MainTask     string `json:"main_task"`
	FollowupTask string `json:"followup_task,omitempty"`
}

// runTasksRequest is the /run-tasks request body.
type runTasksRequest struct {
	Tasks []AutomationTask `json:"tasks"`
}

// statusResponse is the response of /run-tasks and /close-browser.
type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// TaskEvent is one event from the /task-updates SSE stream.
type TaskEvent struct {
	Status  string `json:"status"` // progress, completed, all_completed, error, heartbeat
	TaskNum int    `json:"task_num"`
	Type    string `json:"type"`
	Result  string `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// Event status values delivered on the task stream.
const (
	EventProgress     = "progress"
	EventCompleted    = "completed"
	EventAllCompleted = "all_completed"
	EventError        = "error"
	EventHeartbeat    = "heartbeat"
)

// IsTerminal reports whether this event ends the stream.
func (e TaskEvent) IsTerminal() bool {
	return e.Status == EventAllCompleted || e.Status == EventError
}
