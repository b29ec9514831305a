// Package paperless implements the HTTP client for the external document
// server's task-based ingestion API.
package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"paperbridge/internal/config"
	"paperbridge/internal/domain"
	"paperbridge/internal/port"
)

const (
	uploadPath = "/api/documents/post_document/"
	tasksPath  = "/api/tasks/"
)

// Client implements port.DocumentService against a Paperless-style API.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ port.DocumentService = (*Client)(nil)

// NewClient creates a document server client from config.
func NewClient(cfg *config.PaperlessConfig) *Client {
	return NewClientWithEndpoint(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom base URL (for testing).
func NewClientWithEndpoint(cfg *config.PaperlessConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchSource(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building source request: %w: %v", domain.ErrTransport, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching source: %w: %v", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching source (status %d): %w", resp.StatusCode, domain.ErrTransport)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading source body: %w: %v", domain.ErrTransport, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty source payload: %w", domain.ErrTransport)
	}
	return data, nil
}

func (c *Client) UploadDocument(ctx context.Context, token, filename string, data []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w: %v", domain.ErrTransport, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing multipart body: %w: %v", domain.ErrTransport, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w: %v", domain.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading document: %w: %v", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upload response: %w: %v", domain.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload rejected (status %d): %w", resp.StatusCode, domain.ErrTransport)
	}

	// The server replies with the task id as a JSON-encoded string. Older
	// versions returned it bare; accept both.
	var taskID string
	if err := json.Unmarshal(respBody, &taskID); err != nil {
		taskID = strings.Trim(strings.TrimSpace(string(respBody)), `"`)
	}
	if taskID == "" {
		return "", fmt.Errorf("upload response carried no task id: %w", domain.ErrProtocol)
	}
	return taskID, nil
}

// taskPayload models one record of the server's task list response.
type taskPayload struct {
	TaskID          string `json:"task_id"`
	Status          string `json:"status"`
	Result          string `json:"result"`
	RelatedDocument string `json:"related_document"`
}

func (c *Client) GetTask(ctx context.Context, token, taskID string) (*domain.IngestionTask, error) {
	endpoint := c.baseURL + tasksPath + "?task_id=" + url.QueryEscape(taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building task request: %w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying task %s: %w: %v", taskID, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task query (status %d): %w", resp.StatusCode, domain.ErrTransport)
	}

	var tasks []taskPayload
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decoding task list: %w: %v", domain.ErrProtocol, err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("task %s not in task list: %w", taskID, domain.ErrProtocol)
	}

	// Only the first matching record is authoritative.
	return tasks[0].toDomain(), nil
}

func (t *taskPayload) toDomain() *domain.IngestionTask {
	task := &domain.IngestionTask{
		TaskID:        t.TaskID,
		Status:        domain.TaskStatus(t.Status),
		ResultMessage: t.Result,
	}
	if id, err := strconv.Atoi(t.RelatedDocument); err == nil {
		task.DocumentID = &id
	}
	return task
}

func (c *Client) DownloadDocument(ctx context.Context, token string, documentID int, original bool) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/documents/%d/download/", c.baseURL, documentID)
	if original {
		endpoint += "?original=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading document %d: %w: %v", documentID, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download of document %d (status %d): %w", documentID, resp.StatusCode, domain.ErrTransport)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading document %d: %w: %v", documentID, domain.ErrTransport, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("document %d payload empty: %w", documentID, domain.ErrTransport)
	}
	return data, nil
}
