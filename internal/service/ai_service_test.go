package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteReturnsModelText(t *testing.T) {
	var gotAuth string
	var gotReq ChatCompletionRequest

	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello there"}},
			},
		})
	})

	s := NewAIService(config.AIConfig{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
		Model:   "gpt-4o",
	})

	out, err := s.Complete(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "say hello", gotReq.Messages[0].Content)
}

func TestCompleteMapsUpstreamStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, util.ErrUpstreamAuth},
		{"forbidden", http.StatusForbidden, util.ErrUpstreamAuth},
		{"rate limited", http.StatusTooManyRequests, util.ErrUpstreamRateLimited},
		{"server error", http.StatusInternalServerError, util.ErrUpstreamUnavailable},
		{"model not found", http.StatusNotFound, util.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream detail", tt.status)
			})

			s := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})
			_, err := s.Complete(context.Background(), "hi")

			require.ErrorIs(t, err, tt.want)
			// 上游细节不进入错误信息之外的对外文案路径，这里只校验分类
		})
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	s := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})
	_, err := s.Complete(context.Background(), "hi")
	require.ErrorIs(t, err, util.ErrUpstreamUnavailable)
}

func TestCompleteTransportFailure(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {})
	base := srv.URL
	srv.Close()

	s := NewAIService(config.AIConfig{BaseURL: base, APIKey: "k", Model: "m"})
	_, err := s.Complete(context.Background(), "hi")
	require.ErrorIs(t, err, util.ErrUpstreamUnavailable)
}

func TestCompleteHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	s := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Complete(ctx, "hi")
	require.Error(t, err)
}

func TestUpdateConfigSwapsTarget(t *testing.T) {
	srvA := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "from A"}}},
		})
	})
	srvB := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "from B"}}},
		})
	})

	s := NewAIService(config.AIConfig{BaseURL: srvA.URL, APIKey: "k", Model: "m"})

	out, err := s.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from A", out)

	s.UpdateConfig(config.AIConfig{BaseURL: srvB.URL, APIKey: "k", Model: "m2"})

	out, err = s.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from B", out)
}
