package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = endpoint
	cfg.Token = "secret"
	return cfg
}

type recordingObserver struct {
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.events = append(o.events, e)
}

func TestHTTPClient_Get_DecodesKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/categories/", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("assignment_id"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"categories":[{"id":1,"name":"Skill","color":"#ff0000","templates":[]}]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewHTTPClient(testConfig(srv.URL), obs)
	resp, err := client.Get(context.Background(), "categories", url.Values{"assignment_id": {"7"}})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, resp.Decode("categories", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Skill", got[0]["name"])

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
}

func TestHTTPClient_Create_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(7), body["assignment_id"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"category":{"id":42}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), nil)
	resp, err := client.Create(context.Background(), "categories", map[string]any{"assignment_id": 7})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestHTTPClient_Update_UsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/templates/3/", r.URL.Path)
		_, _ = w.Write([]byte(`{"template":{"id":3}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), nil)
	_, err := client.Update(context.Background(), "templates/3", map[string]any{"name": "x"})
	require.NoError(t, err)
}

func TestHTTPClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description":"You are not allowed to view this assignment."}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewHTTPClient(testConfig(srv.URL), obs)
	_, err := client.Delete(context.Background(), "categories/1")
	require.Error(t, err)

	assert.True(t, IsStatus(err, http.StatusForbidden))
	assert.Contains(t, err.Error(), "not allowed")
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "HTTP_403", obs.events[0].ErrorCode)
}

func TestHTTPClient_Get_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"templates":[]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), nil)
	_, err := client.Get(context.Background(), "templates", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestHTTPClient_Create_NeverRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3
	client := NewHTTPClient(cfg, nil)
	_, err := client.Create(context.Background(), "templates", map[string]any{})
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestHTTPClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	client := NewHTTPClient(cfg, nil)
	_, err := client.Get(context.Background(), "templates", nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0
	client := NewHTTPClient(cfg, nil)
	_, err := client.Get(context.Background(), "templates", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResponse_DecodeMissingKey(t *testing.T) {
	resp := &Response{Data: map[string]json.RawMessage{}}
	var v any
	assert.ErrorIs(t, resp.Decode("category", &v), ErrMissingKey)
}

func TestToastObserver_OnlyFailures(t *testing.T) {
	var b strings.Builder
	obs := NewToastObserver(&b)
	obs.OnCallComplete(CallEvent{Method: "GET", Resource: "templates", Success: true})
	obs.OnCallComplete(CallEvent{Method: "PATCH", Resource: "preferences/1", ErrorCode: "HTTP_500"})

	assert.Equal(t, "! PATCH preferences/1 failed: HTTP_500\n", b.String())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("EJOURNAL_API_URL", "https://example.org/api")
	t.Setenv("EJOURNAL_API_TOKEN", "tok")
	t.Setenv("EJOURNAL_MAX_RETRIES", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/api", cfg.BaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 10000, cfg.TimeoutMs)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("EJOURNAL_TIMEOUT_MS", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
