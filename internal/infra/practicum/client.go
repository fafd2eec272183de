// Package practicum implements the homework status API client.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/homework"
)

// maxBodySize bounds how much of an error body is kept for diagnostics.
const maxBodySize = 4096

// Client fetches homework statuses reviewed since a given timestamp.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout. The client is copied first, so a
// client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func NewClient(endpoint, token string, logger logrus.FieldLogger, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStatus requests statuses changed at or after cursor and returns the
// decoded body without checking its shape.
func (c *Client) FetchStatus(ctx context.Context, cursor int64) (any, error) {
	params := url.Values{"from_date": {strconv.FormatInt(cursor, 10)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"endpoint": c.endpoint,
		"headers":  maskedHeaders(req.Header),
		"params":   params.Encode(),
	}).Info("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &homework.ConnectionError{Endpoint: c.endpoint, Params: params, Err: err}
	}
	defer resp.Body.Close()

	c.logger.WithField("status", resp.StatusCode).Info("Received homework statuses response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		return nil, &homework.InvalidResponseCodeError{
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode response body: %v", homework.ErrType, err)
	}
	return raw, nil
}

// maskedHeaders returns the request headers with the credential hidden.
func maskedHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key := range h {
		value := h.Get(key)
		if key == "Authorization" {
			value = "OAuth ***"
		}
		out[key] = value
	}
	return out
}
