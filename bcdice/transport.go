package bcdice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestOptions carries the per-request parts of a Transport call.
type RequestOptions struct {
	Query  url.Values
	Header http.Header
	// Body is sent verbatim; it is only used by Post.
	Body string
}

// Transport performs requests relative to a base URL and returns the decoded
// JSON body.
//
// A non-2xx response is reported as *HTTPError and a 2xx response that is not
// JSON as *DecodeError. Any other error means no usable response arrived.
type Transport interface {
	Get(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Post(ctx context.Context, path string, opts *RequestOptions) (any, error)
}

// WebClient is the net/http implementation of Transport.
type WebClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewWebClient creates a Transport for the BCDice-API server at baseURL
func NewWebClient(baseURL string, logger zerolog.Logger, opts ...Option) (*WebClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: BCDice-API URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrInvalidConfig, u.Scheme)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &WebClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the server URL every path is resolved against
func (w *WebClient) BaseURL() string {
	return w.baseURL
}

// Get performs a GET request
func (w *WebClient) Get(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return w.do(ctx, http.MethodGet, path, opts)
}

// Post performs a POST request
func (w *WebClient) Post(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return w.do(ctx, http.MethodPost, path, opts)
}

func (w *WebClient) do(ctx context.Context, method, path string, opts *RequestOptions) (any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	requestURL := w.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts.Query) > 0 {
		requestURL += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if method != http.MethodGet && opts.Body != "" {
		body = strings.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	w.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Str("request_id", requestID).
		Msg("Making BCDice-API request")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	w.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Msg("Received BCDice-API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     method,
			URL:        requestURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       raw,
		}
	}

	return decodeJSON(requestURL, raw)
}

// decodeJSON decodes a whole body, keeping numbers as json.Number.
func decodeJSON(requestURL string, raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{URL: requestURL, Body: raw, Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{URL: requestURL, Body: raw, Err: fmt.Errorf("unexpected data after JSON value")}
	}
	return v, nil
}
