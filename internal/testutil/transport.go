package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/alexanderramin/ejournal/internal/transport"
)

// Call is one request recorded by FakeTransport.
type Call struct {
	Method   string
	Resource string
	Query    url.Values
	Body     map[string]any
}

// Handler produces the top-level response keys for a call.
type Handler func(ctx context.Context, call Call) (map[string]any, error)

// FakeTransport is an in-memory transport.Transport. Unregistered calls fail
// with a 404 StatusError.
type FakeTransport struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{handlers: make(map[string]Handler)}
}

func routeKey(method, resource string) string {
	return method + " " + resource
}

// On registers h for method ("GET", "POST", "PATCH", "DELETE") and resource.
func (f *FakeTransport) On(method, resource string, h Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[routeKey(method, resource)] = h
}

// Respond registers a handler that always returns value under key.
func (f *FakeTransport) Respond(method, resource, key string, value any) {
	f.On(method, resource, func(context.Context, Call) (map[string]any, error) {
		return map[string]any{key: value}, nil
	})
}

// Fail registers a handler that always returns err.
func (f *FakeTransport) Fail(method, resource string, err error) {
	f.On(method, resource, func(context.Context, Call) (map[string]any, error) {
		return nil, err
	})
}

// Calls returns a copy of the recorded calls.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount counts recorded calls for method and resource.
func (f *FakeTransport) CallCount(method, resource string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Resource == resource {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call for method and resource.
func (f *FakeTransport) LastCall(method, resource string) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method && f.calls[i].Resource == resource {
			return f.calls[i], true
		}
	}
	return Call{}, false
}

func (f *FakeTransport) Get(ctx context.Context, resource string, query url.Values) (*transport.Response, error) {
	return f.do(ctx, "GET", resource, query, nil)
}

func (f *FakeTransport) Create(ctx context.Context, resource string, body any) (*transport.Response, error) {
	return f.do(ctx, "POST", resource, nil, body)
}

func (f *FakeTransport) Update(ctx context.Context, resource string, body any) (*transport.Response, error) {
	return f.do(ctx, "PATCH", resource, nil, body)
}

func (f *FakeTransport) Delete(ctx context.Context, resource string) (*transport.Response, error) {
	return f.do(ctx, "DELETE", resource, nil, nil)
}

func (f *FakeTransport) do(ctx context.Context, method, resource string, query url.Values, body any) (*transport.Response, error) {
	call := Call{Method: method, Resource: resource, Query: query}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		if err := json.Unmarshal(data, &call.Body); err != nil {
			return nil, fmt.Errorf("decoding request: %w", err)
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.handlers[routeKey(method, resource)]
	f.mu.Unlock()

	if !ok {
		return nil, &transport.StatusError{Status: 404, Description: fmt.Sprintf("no handler for %s %s", method, resource)}
	}

	values, err := h(ctx, call)
	if err != nil {
		return nil, err
	}

	resp := &transport.Response{Status: 200, Data: make(map[string]json.RawMessage, len(values))}
	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling response key %q: %w", k, err)
		}
		resp.Data[k] = data
	}
	return resp, nil
}

var _ transport.Transport = (*FakeTransport)(nil)
