// Package upload sends images to an external hosting service and returns
// their public URL.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("image upload is not configured")

// Error is an image upload failure. Callers treat it as non-fatal and carry
// on without the image.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("image upload failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Uploader stores one image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Config names the hosting account. It is never compiled in.
type Config struct {
	BaseURL   string
	CloudName string
	Preset    string
	Timeout   time.Duration
}

func (c Config) Enabled() bool {
	return c.BaseURL != "" && c.CloudName != "" && c.Preset != ""
}

// CloudinaryUploader posts unsigned multipart uploads to
// {BaseURL}/v1_1/{CloudName}/image/upload.
type CloudinaryUploader struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

func NewCloudinaryUploader(cfg Config, logger *slog.Logger) *CloudinaryUploader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &CloudinaryUploader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type uploadResult struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !u.cfg.Enabled() {
		return "", &Error{Err: ErrNotConfigured}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", &Error{Err: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &Error{Err: fmt.Errorf("failed to read image: %w", err)}
	}
	if err := mw.WriteField("upload_preset", u.cfg.Preset); err != nil {
		return "", &Error{Err: err}
	}
	if err := mw.Close(); err != nil {
		return "", &Error{Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", strings.TrimRight(u.cfg.BaseURL, "/"), u.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", &Error{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		u.logger.Warn("Image upload failed", "filename", filename, "error", err)
		return "", &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		u.logger.Warn("Image upload rejected", "filename", filename, "status_code", resp.StatusCode)
		return "", &Error{StatusCode: resp.StatusCode}
	}

	var result uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &Error{Err: fmt.Errorf("failed to decode upload result: %w", err)}
	}
	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	if url == "" {
		return "", &Error{Err: errors.New("upload result has no url")}
	}

	u.logger.Info("Image uploaded", "filename", filename, "url", url)
	return url, nil
}
