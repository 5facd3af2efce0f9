package webform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adlweddings/wedding-lead-platform/internal/leads"
	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// Client submits lead records to the intake endpoint. Unlike the original
// form's opaque transport, it reads the server's response envelope, so a
// server-side failure is visible to the caller instead of being mistaken for
// success. Each submission carries a generated X-Submission-Id so the server
// can deduplicate retries when its guard is enabled.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a submission client for the given endpoint URL.
func NewClient(endpoint string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Submit POSTs rec and returns the decoded response envelope. A dispatch
// failure or an error envelope both surface as errors.
func (c *Client) Submit(ctx context.Context, rec *leads.Record) (*leads.Response, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("webform: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("webform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(leads.SubmissionIDHeader, uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webform: submit failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope leads.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("webform: decode response: %w", err)
	}

	if envelope.Result != "success" {
		return &envelope, fmt.Errorf("webform: server rejected submission: %s", envelope.Error)
	}

	c.logger.Info("lead submitted", "name", rec.Name, "duplicate", envelope.Duplicate)
	return &envelope, nil
}
