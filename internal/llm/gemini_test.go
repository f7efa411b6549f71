package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"socialpost/internal/config"
	"socialpost/internal/store"
	"socialpost/internal/usage"
)

type capturedRequest struct {
	Path   string
	APIKey string
	Body   map[string]any
}

func geminiStub(t *testing.T, status int, reply string) (*httptest.Server, func() capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		last capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		mu.Lock()
		last = capturedRequest{Path: r.URL.Path, APIKey: r.Header.Get("x-goog-api-key"), Body: body}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"code":400,"message":"boom","status":"INVALID_ARGUMENT"}}`)
			return
		}
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": reply}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 4,
				"totalTokenCount":      16,
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newStubClient(t *testing.T, baseURL string) *GeminiClient {
	t.Helper()
	c, err := NewGeminiClient(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestGeminiClient_RequestContextDeadline(t *testing.T) {
	c, err := NewGeminiClient(context.Background(), DefaultGeminiConfig("test-key"))
	require.NoError(t, err)

	ctx, cancel := c.requestContext(context.Background())
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline, "no timeout is configured by default")

	c.timeout = 5 * time.Second
	ctx, cancel = c.requestContext(context.Background())
	defer cancel()
	_, hasDeadline = ctx.Deadline()
	assert.True(t, hasDeadline)

	parent, stop := context.WithTimeout(context.Background(), time.Minute)
	defer stop()
	want, _ := parent.Deadline()
	ctx, cancel = c.requestContext(parent)
	defer cancel()
	got, _ := ctx.Deadline()
	assert.Equal(t, want, got, "caller deadline is kept")
}

func TestGeminiClient_PlainText(t *testing.T) {
	srv, last := geminiStub(t, http.StatusOK, "Hello there")
	c := newStubClient(t, srv.URL)

	text, err := c.Generate(context.Background(), Request{Prompt: "Say hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)

	req := last()
	assert.True(t, strings.HasSuffix(req.Path, "models/gemini-2.5-flash:generateContent"), req.Path)
	assert.Equal(t, "test-key", req.APIKey)

	raw, _ := json.Marshal(req.Body)
	assert.Contains(t, string(raw), "Say hello")
	assert.NotContains(t, string(raw), "responseSchema")
}

func TestGeminiClient_TracksUsage(t *testing.T) {
	srv, _ := geminiStub(t, http.StatusOK, "ok")
	c := newStubClient(t, srv.URL)

	tracker := usage.NewTracker(store.NewMemoryBackend())
	ctx := usage.WithOperation(usage.NewContext(context.Background(), tracker), "hashtags")
	_, err := c.Generate(ctx, Request{Prompt: "x"})
	require.NoError(t, err)

	stats := tracker.Stats()
	assert.Equal(t, usage.TokenCounts{Requests: 1, Input: 12, Output: 4, Total: 16}, stats.ByOperation["hashtags"])
	assert.Equal(t, int64(16), stats.ByModel["gemini-2.5-flash"].Total)
}

func TestGeminiClient_SchemaAndBudget(t *testing.T) {
	srv, last := geminiStub(t, http.StatusOK, `{"ideas":["a"]}`)
	c := newStubClient(t, srv.URL)

	text, err := c.Generate(context.Background(), Request{
		Prompt: "ideas",
		Schema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{"ideas": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}},
			Required:   []string{"ideas"},
		},
		MaxOutputTokens: 20,
		DisableThinking: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ideas":["a"]}`, text)

	raw, _ := json.Marshal(last().Body)
	body := string(raw)
	assert.Contains(t, body, `"responseMimeType":"application/json"`)
	assert.Contains(t, body, "responseSchema")
	assert.Contains(t, body, `"maxOutputTokens":20`)
	assert.Contains(t, body, `"thinkingBudget":0`)
}

func TestGeminiClient_ServerError(t *testing.T) {
	srv, _ := geminiStub(t, http.StatusBadRequest, "")
	c := newStubClient(t, srv.URL)

	_, err := c.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini request failed")
}

func TestGenerationConfig(t *testing.T) {
	cfg := generationConfig(Request{})
	assert.Empty(t, cfg.ResponseMIMEType)
	assert.Nil(t, cfg.ResponseSchema)
	assert.Nil(t, cfg.ThinkingConfig)
	assert.Zero(t, cfg.MaxOutputTokens)

	cfg = generationConfig(Request{DisableThinking: true, MaxOutputTokens: 20})
	require.NotNil(t, cfg.ThinkingConfig)
	require.NotNil(t, cfg.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(0), *cfg.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(20), cfg.MaxOutputTokens)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = ""
	_, err := NewClientFromConfig(context.Background(), cfg)
	assert.Error(t, err)

	cfg.LLM.APIKey = "k"
	cfg.LLM.Provider = "openai"
	_, err = NewClientFromConfig(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported provider")

	cfg.LLM.Provider = "gemini"
	c, err := NewClientFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, c.Model())
}

// TestGeminiLive hits the real service.
// Run with: GEMINI_API_KEY=... go test -v -run TestGeminiLive ./internal/llm/
func TestGeminiLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping live test")
	}

	c, err := NewGeminiClient(context.Background(), DefaultGeminiConfig(apiKey))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, err := c.Generate(ctx, Request{Prompt: "Reply with the single word: pong", MaxOutputTokens: 20, DisableThinking: true})
	require.NoError(t, err)
	t.Logf("live response: %s", text)
	assert.NotEmpty(t, text)
}
