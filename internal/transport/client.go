package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transport is the request/response contract the client store consumes.
// Implementations surface failures to their observer; callers receive the
// error unchanged and never retry.
type Transport interface {
	Get(ctx context.Context, resource string, query url.Values) (*Response, error)
	Create(ctx context.Context, resource string, body any) (*Response, error)
	Update(ctx context.Context, resource string, body any) (*Response, error)
	Delete(ctx context.Context, resource string) (*Response, error)
}

// Response is a decoded API response. Data holds the top-level keys of the
// JSON body, e.g. "category" or "templates".
type Response struct {
	Status int
	Data   map[string]json.RawMessage
}

// Decode unmarshals the value stored under key into v.
func (r *Response) Decode(key string, v any) error {
	raw, ok := r.Data[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// Description returns the server supplied description, if any.
func (r *Response) Description() string {
	var s string
	if raw, ok := r.Data["description"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// httpClient implements Transport against the JSON API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Transport that talks to the API at cfg.BaseURL.
func NewHTTPClient(cfg Config, observer Observer) Transport {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Get(ctx context.Context, resource string, query url.Values) (*Response, error) {
	return c.call(ctx, http.MethodGet, resource, query, nil)
}

func (c *httpClient) Create(ctx context.Context, resource string, body any) (*Response, error) {
	return c.call(ctx, http.MethodPost, resource, nil, body)
}

func (c *httpClient) Update(ctx context.Context, resource string, body any) (*Response, error) {
	return c.call(ctx, http.MethodPatch, resource, nil, body)
}

func (c *httpClient) Delete(ctx context.Context, resource string) (*Response, error) {
	return c.call(ctx, http.MethodDelete, resource, nil, nil)
}

func (c *httpClient) call(ctx context.Context, method, resource string, query url.Values, body any) (*Response, error) {
	start := time.Now()
	requestID := uuid.New().String()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}

	// Only reads are retried; writes are never replayed.
	attempts := 1
	if method == http.MethodGet {
		attempts += c.cfg.MaxRetries
	}

	var (
		resp    *Response
		lastErr error
	)
	for i := 0; i < attempts; i++ {
		resp, lastErr = c.doRequest(ctx, method, resource, query, payload, requestID)
		if lastErr == nil || ctx.Err() != nil || !retryable(lastErr) {
			break
		}
	}

	if lastErr != nil && ctx.Err() != nil {
		lastErr = ErrTimeout
	}

	event := CallEvent{
		Method:    method,
		Resource:  resource,
		RequestID: requestID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   lastErr == nil,
		ErrorCode: errorCode(lastErr),
		Err:       lastErr,
	}
	if resp != nil {
		event.Status = resp.Status
	}
	var se *StatusError
	if errors.As(lastErr, &se) {
		event.Status = se.Status
	}
	c.observer.OnCallComplete(event)

	if lastErr != nil {
		return nil, lastErr
	}
	return resp, nil
}

func (c *httpClient) doRequest(ctx context.Context, method, resource string, query url.Values, payload []byte, requestID string) (*Response, error) {
	target := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.Trim(resource, "/") + "/"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	resp := &Response{Status: httpResp.StatusCode, Data: map[string]json.RawMessage{}}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &resp.Data); err != nil && httpResp.StatusCode < 300 {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		desc := resp.Description()
		if desc == "" {
			desc = strings.TrimSpace(string(respBody))
		}
		return nil, &StatusError{Status: httpResp.StatusCode, Description: desc}
	}

	return resp, nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return errors.Is(err, ErrUnavailable)
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
