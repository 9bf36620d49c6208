// Package client talks to the form store over its HTTP JSON contract.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SAP-F-2025/form-service/internal/models"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateForm stores a new form and returns it with its assigned ids.
func (c *Client) CreateForm(ctx context.Context, req *models.CreateFormRequest) (*models.Form, error) {
	var form models.Form
	if err := c.do(ctx, "create form", http.MethodPost, "/api/forms", req, &form); err != nil {
		return nil, err
	}
	c.logger.Info("Form saved", "form_id", form.ID, "question_count", len(form.Questions))
	return &form, nil
}

// GetForm loads a form. An unknown id yields ErrFormNotFound.
func (c *Client) GetForm(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := c.do(ctx, "get form", http.MethodGet, "/api/forms/"+url.PathEscape(id), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// SubmitResponse stores one response for formID.
func (c *Client) SubmitResponse(ctx context.Context, formID string, answers []models.Answer) (*models.Response, error) {
	body := &models.SubmitResponseRequest{Answers: models.Inputs(answers)}
	var resp models.Response
	path := "/api/forms/" + url.PathEscape(formID) + "/responses"
	if err := c.do(ctx, "submit response", http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("Response submitted", "form_id", formID, "response_id", resp.ID, "answer_count", len(answers))
	return &resp, nil
}

// ListResponses returns the stored responses of formID.
func (c *Client) ListResponses(ctx context.Context, formID string) (*models.FormResponses, error) {
	var list models.FormResponses
	path := "/api/forms/" + url.PathEscape(formID) + "/responses"
	if err := c.do(ctx, "list responses", http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type errorBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Store request failed", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.statusError(op, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) statusError(op string, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrFormNotFound)
	case http.StatusBadRequest:
		return &ValidationError{Message: eb.Message, Details: eb.Details}
	default:
		c.logger.Warn("Store returned error", "op", op, "status_code", resp.StatusCode, "message", eb.Message)
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Message: eb.Message}
	}
}
