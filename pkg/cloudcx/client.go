/*
 * Copyright 2026 Convoyant, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cloudcx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/convoyant/cxdash/pkg/logger"
	"github.com/convoyant/cxdash/pkg/models"
)

const (
	defaultPageSize       = 100
	maxPageSize           = 100
	defaultRequestTimeout = 30 * time.Second

	// The platform rate-limits per token; stay under it even when the
	// dashboard refreshes several panels at once.
	defaultRateLimit = 10 // requests per second
	defaultRateBurst = 20
)

// Config configures the platform client.
type Config struct {
	Session        SessionConfig   `json:"session"`
	PageSize       int             `json:"page_size,omitempty"`
	RequestTimeout models.Duration `json:"request_timeout,omitempty"`
	RateLimit      float64         `json:"rate_limit,omitempty"`
	RateBurst      int             `json:"rate_burst,omitempty"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	return c.Session.Validate()
}

// Client issues one-shot request/response calls against the platform REST
// API and returns normalized records. It holds no entity state between
// calls; the only cross-call state is the session's cached token.
type Client struct {
	apiURL     string
	httpClient HTTPClient
	tokens     TokenSource
	limiter    *rate.Limiter
	log        logger.Logger
	pageSize   int
	timeout    time.Duration
}

// NewClient wires a client from config. httpClient may be nil; a client
// with sane defaults is used. The session gate is constructed here and
// owned by the returned client.
func NewClient(config *Config, httpClient HTTPClient, log logger.Logger) (*Client, error) {
	provider, err := NewSessionProvider(config.Session, httpClient, log)
	if err != nil {
		return nil, err
	}

	return NewClientWithTokenSource(config, httpClient, NewCachedSession(provider), log), nil
}

// NewClientWithTokenSource wires a client around an externally owned token
// source. Validation of the session config is the caller's concern.
func NewClientWithTokenSource(config *Config, httpClient HTTPClient, tokens TokenSource, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	pageSize := config.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	timeout := time.Duration(config.RequestTimeout)
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	limit := rate.Limit(config.RateLimit)
	if limit <= 0 {
		limit = defaultRateLimit
	}

	burst := config.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	return &Client{
		apiURL:     config.Session.apiURL(),
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(limit, burst),
		log:        log.WithComponent("cloudcx"),
		pageSize:   pageSize,
		timeout:    timeout,
	}
}

// apiErrorBody is the platform's error envelope.
type apiErrorBody struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	ContextID string `json:"contextId"`
}

// do issues one bounded, rate-limited request. A nil out skips decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.translateTransportError(err)
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	reqURL := c.apiURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Request-Id", requestID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Msg("Calling platform API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.translateTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.translateAPIError(resp.StatusCode, respBody, requestID)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func (*Client) translateTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return err
}

// translateAPIError maps a platform error response onto the package
// taxonomy, preserving the platform's message and trace id.
func (c *Client) translateAPIError(status int, body []byte, requestID string) error {
	var detail apiErrorBody

	// Best effort; some gateways return plain text.
	_ = json.Unmarshal(body, &detail)

	if detail.Message == "" {
		detail.Message = string(body)
	}

	c.log.Warn().
		Int("status", status).
		Str("code", detail.Code).
		Str("trace_id", detail.ContextID).
		Str("request_id", requestID).
		Msg("Platform API call failed")

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuthentication, detail.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail.Message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail.Message)
	default:
		return &UpstreamError{
			StatusCode: status,
			Code:       detail.Code,
			Message:    detail.Message,
			TraceID:    detail.ContextID,
		}
	}
}
