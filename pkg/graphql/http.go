package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxErrorBody = 512

type httpTransport struct {
	endpoint   string
	header     http.Header
	httpClient *http.Client
	logger     *zap.Logger
}

func newHTTPTransport(endpoint string, header http.Header, hc *http.Client, logger *zap.Logger) *httpTransport {
	return &httpTransport{
		endpoint:   endpoint,
		header:     header,
		httpClient: hc,
		logger:     logger,
	}
}

func (t *httpTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}

	for key, values := range t.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)

	t.logger.Debug("sending request",
		zap.String("request_id", requestID),
		zap.String("operation", req.OperationName),
		zap.String("endpoint", t.endpoint))

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug("received response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	var result Response
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && len(result.Errors) > 0 {
			return &result, nil
		}

		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), maxErrorBody)}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", decodeErr)
	}

	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
